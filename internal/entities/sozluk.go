// Package entities holds the gorm models of the relational backend.
package entities

import (
	"time"

	"github.com/eren/sozluk/internal/sozluk"
)

// Entry is a persisted entry row. Topic and author are denormalized name
// references into the dimension tables.
type Entry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TopicName  string    `gorm:"index;size:50;not null"`
	AuthorName string    `gorm:"index;size:40;not null"`
	UTCTime    time.Time `gorm:"not null"`
	Text       string    `gorm:"type:text;not null"`
}

// Topic is a dimension row. A topic with zero remaining entries is deleted
// by the orphan sweep, so presence implies at least one entry.
type Topic struct {
	Name    string  `gorm:"primaryKey;size:50"`
	Entries []Entry `gorm:"foreignKey:TopicName;references:Name"`
}

// Author is a dimension row, subject to the same orphan sweep as Topic.
type Author struct {
	Name    string  `gorm:"primaryKey;size:40"`
	Entries []Entry `gorm:"foreignKey:AuthorName;references:Name"`
}

// ToDomain rebuilds the domain entry from a row. Stored values went through
// the domain constructors on the way in, so a failure here means the table
// was modified out-of-band.
func (e Entry) ToDomain() (sozluk.Entry, error) {
	topic, err := sozluk.NewTopicName(e.TopicName)
	if err != nil {
		return sozluk.Entry{}, err
	}
	author, err := sozluk.NewAuthorName(e.AuthorName)
	if err != nil {
		return sozluk.Entry{}, err
	}
	id, err := sozluk.NewEntryID(e.ID)
	if err != nil {
		return sozluk.Entry{}, err
	}

	return sozluk.Entry{
		Topic:   topic,
		Author:  author,
		Text:    sozluk.NewEntryText(e.Text),
		ID:      id,
		UTCTime: e.UTCTime,
	}, nil
}
