// Package storage defines the persistence contract of the entry board.
//
// Every backend implements the Sozluk interface. Business-level results
// (duplicate definition, entry not found) are communicated through outcome
// values, never through errors; errors are reserved for infrastructural
// failures such as an unreachable database or a corrupt snapshot.
package storage

import (
	"github.com/eren/sozluk/internal/sozluk"
)

// AddOutcome is the business result of an AddEntry call.
type AddOutcome int

const (
	// AddSuccess means the entry was persisted and got a fresh identifier.
	AddSuccess AddOutcome = iota + 1
	// AddDefinitionExists means an entry with the same topic and text is
	// already present. The author is irrelevant to duplicate detection.
	AddDefinitionExists
)

func (o AddOutcome) String() string {
	switch o {
	case AddSuccess:
		return "success"
	case AddDefinitionExists:
		return "definition exists"
	default:
		return "unknown add outcome"
	}
}

// DeleteOutcome is the business result of a DelEntry call.
type DeleteOutcome int

const (
	// DeleteSuccess means the entry existed and is gone now.
	DeleteSuccess DeleteOutcome = iota + 1
	// DeleteEntryNotFound means no entry carried the given identifier.
	DeleteEntryNotFound
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteSuccess:
		return "success"
	case DeleteEntryNotFound:
		return "entry not found"
	default:
		return "unknown delete outcome"
	}
}

// Sozluk is the capability set every storage backend provides. The backend
// is selected once at process start via configuration.
//
// For listing operations a limit <= 0 means "no limit" and an offset <= 0
// means "from the start". "Latest" is defined as reverse identifier order,
// de-duplicated so only the most recent occurrence of each distinct
// topic/author survives.
type Sozluk interface {
	// AddEntry persists a sketch. On AddSuccess the returned identifier is
	// the freshly assigned one; on AddDefinitionExists it is zero.
	AddEntry(sketch sozluk.EntrySketch) (AddOutcome, sozluk.EntryID, error)

	// GetEntry returns the entry with the given identifier, or nil when it
	// does not exist.
	GetEntry(id sozluk.EntryID) (*sozluk.Entry, error)

	// GetTopic returns all entries filed under a topic, oldest first.
	GetTopic(name sozluk.TopicName) ([]sozluk.Entry, error)

	// GetAuthor returns all entries written by an author, oldest first.
	GetAuthor(name sozluk.AuthorName) ([]sozluk.Entry, error)

	// SearchTopics returns topics whose folded name contains the folded
	// query as a substring.
	SearchTopics(query string, limit int) ([]sozluk.TopicName, error)

	// DelEntry removes the entry with the given identifier.
	DelEntry(id sozluk.EntryID) (DeleteOutcome, error)

	// LatestTopics lists distinct topics, most recently written first.
	LatestTopics(limit, offset int) ([]sozluk.TopicName, error)

	// LatestAuthors lists distinct authors, most recently active first.
	LatestAuthors(limit, offset int) ([]sozluk.AuthorName, error)

	EntryCount() (int64, error)
	TopicCount() (int64, error)
	AuthorCount() (int64, error)

	// RandomEntries draws a uniform sample without replacement of size
	// min(limit, entry count).
	RandomEntries(limit int) ([]sozluk.Entry, error)
}
