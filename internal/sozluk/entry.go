package sozluk

import (
	"fmt"
	"time"
)

// EntryID is a strictly positive entry identifier. Identifiers are assigned
// by storage backends at insertion time and never reused.
type EntryID int64

// NewEntryID validates v and returns it as an EntryID.
func NewEntryID(v int64) (EntryID, error) {
	if v <= 0 {
		return 0, ValidationError(fmt.Sprintf("entry identifier should be greater than zero but %d is given", v))
	}
	return EntryID(v), nil
}

func (id EntryID) Int64() int64 { return int64(id) }

func (id EntryID) String() string { return fmt.Sprintf("%d", int64(id)) }

// EntrySketch is an unpersisted entry draft, produced by the boundary layer
// from validated input and consumed by a storage backend.
type EntrySketch struct {
	Topic  TopicName
	Author AuthorName
	Text   EntryText
}

// Entry is a persisted record. Only storage backends create Entry values, at
// the moment of successful insertion; callers receive read-only copies.
type Entry struct {
	Topic   TopicName  `json:"topic"`
	Author  AuthorName `json:"author"`
	Text    EntryText  `json:"text"`
	ID      EntryID    `json:"identifier"`
	UTCTime time.Time  `json:"utc_time"`
}

// EntryFromSketch materializes a sketch with its assigned identifier and
// insertion timestamp.
func EntryFromSketch(sketch EntrySketch, id EntryID, utcTime time.Time) Entry {
	return Entry{
		Topic:   sketch.Topic,
		Author:  sketch.Author,
		Text:    sketch.Text,
		ID:      id,
		UTCTime: utcTime,
	}
}

// Time shifts the stored UTC timestamp by delta for display.
func (e Entry) Time(delta time.Duration) time.Time {
	return e.UTCTime.Add(delta)
}
