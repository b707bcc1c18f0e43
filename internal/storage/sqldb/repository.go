// Package sqldb implements the storage contract on top of a relational
// database via gorm, with entries plus topic/author dimension tables.
package sqldb

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eren/sozluk/internal/entities"
	"github.com/eren/sozluk/internal/sozluk"
	"github.com/eren/sozluk/internal/storage"
)

// Repository is the relational backend. Sessions are scoped per operation:
// no gorm session is held across calls.
type Repository struct {
	db *gorm.DB
}

var _ storage.Sozluk = (*Repository)(nil)

// NewRepository migrates the three tables and wraps db.
func NewRepository(db *gorm.DB) (*Repository, error) {
	err := db.AutoMigrate(
		&entities.Topic{},
		&entities.Author{},
		&entities.Entry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate sozluk tables: %w", err)
	}
	return &Repository{db: db}, nil
}

// Open connects to the SQLite database at path and migrates it.
func Open(path string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewRepository(db)
}

// DB exposes the underlying gorm handle for process wiring (session store,
// connection shutdown).
func (r *Repository) DB() *gorm.DB { return r.db }

// AddEntry checks for an existing (topic, text) pair, creates the missing
// dimension rows and inserts the entry, all in one transaction. The
// check-then-insert is not race-free across concurrent connections; this is
// a known, accepted gap rather than a defect to patch silently.
func (r *Repository) AddEntry(sketch sozluk.EntrySketch) (storage.AddOutcome, sozluk.EntryID, error) {
	outcome := storage.AddSuccess
	var row entities.Entry

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&entities.Entry{}).
			Where("topic_name = ? AND text = ?", sketch.Topic.String(), sketch.Text.String()).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			outcome = storage.AddDefinitionExists
			return nil
		}

		if err := getOrCreateTopic(tx, sketch.Topic.String()); err != nil {
			return err
		}
		if err := getOrCreateAuthor(tx, sketch.Author.String()); err != nil {
			return err
		}

		row = entities.Entry{
			TopicName:  sketch.Topic.String(),
			AuthorName: sketch.Author.String(),
			UTCTime:    nowUTC(),
			Text:       sketch.Text.String(),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to add entry: %w", err)
	}
	if outcome == storage.AddDefinitionExists {
		return outcome, 0, nil
	}

	id, err := sozluk.NewEntryID(row.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("database assigned an invalid identifier: %w", err)
	}
	return storage.AddSuccess, id, nil
}

func nowUTC() time.Time { return time.Now().UTC() }

func getOrCreateTopic(tx *gorm.DB, name string) error {
	var topic entities.Topic
	err := tx.Where("name = ?", name).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&entities.Topic{Name: name}).Error
	}
	return err
}

func getOrCreateAuthor(tx *gorm.DB, name string) error {
	var author entities.Author
	err := tx.Where("name = ?", name).First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&entities.Author{Name: name}).Error
	}
	return err
}

func (r *Repository) GetEntry(id sozluk.EntryID) (*sozluk.Entry, error) {
	var row entities.Entry
	err := r.db.First(&row, id.Int64()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry %s: %w", id, err)
	}

	entry, err := row.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("corrupt entry row %d: %w", row.ID, err)
	}
	return &entry, nil
}

func (r *Repository) GetTopic(name sozluk.TopicName) ([]sozluk.Entry, error) {
	return r.entriesWhere("topic_name = ?", name.String())
}

func (r *Repository) GetAuthor(name sozluk.AuthorName) ([]sozluk.Entry, error) {
	return r.entriesWhere("author_name = ?", name.String())
}

func (r *Repository) entriesWhere(cond string, arg string) ([]sozluk.Entry, error) {
	var rows []entities.Entry
	err := r.db.Where(cond, arg).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	return rowsToDomain(rows)
}

func (r *Repository) SearchTopics(query string, limit int) ([]sozluk.TopicName, error) {
	pattern := "%" + sozluk.Fold(query) + "%"

	q := r.db.Model(&entities.Topic{}).
		Where("name LIKE ?", pattern).
		Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var names []string
	if err := q.Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to search topics: %w", err)
	}
	return namesToTopics(names)
}

// DelEntry removes the entry row and sweeps orphaned dimension rows in the
// same transaction. The sweep is an explicit step of the delete operation,
// not a session hook, so both backends derive their behavior from the same
// written contract.
func (r *Repository) DelEntry(id sozluk.EntryID) (storage.DeleteOutcome, error) {
	outcome := storage.DeleteSuccess

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entities.Entry{}, id.Int64())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			outcome = storage.DeleteEntryNotFound
			return nil
		}
		return deleteOrphanRows(tx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	return outcome, nil
}

func deleteOrphanRows(tx *gorm.DB) error {
	err := tx.Exec(`DELETE FROM topics WHERE name NOT IN (SELECT DISTINCT topic_name FROM entries)`).Error
	if err != nil {
		return err
	}
	return tx.Exec(`DELETE FROM authors WHERE name NOT IN (SELECT DISTINCT author_name FROM entries)`).Error
}

func (r *Repository) EntryCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Entry{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (r *Repository) TopicCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Topic{}).
		Where("name IN (SELECT DISTINCT topic_name FROM entries)").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count topics: %w", err)
	}
	return count, nil
}

func (r *Repository) AuthorCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).
		Where("name IN (SELECT DISTINCT author_name FROM entries)").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

func (r *Repository) LatestTopics(limit, offset int) ([]sozluk.TopicName, error) {
	names, err := r.latestNames("topic_name", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest topics: %w", err)
	}
	return namesToTopics(names)
}

func (r *Repository) LatestAuthors(limit, offset int) ([]sozluk.AuthorName, error) {
	names, err := r.latestNames("author_name", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest authors: %w", err)
	}

	authors := make([]sozluk.AuthorName, 0, len(names))
	for _, name := range names {
		author, err := sozluk.NewAuthorName(name)
		if err != nil {
			return nil, fmt.Errorf("corrupt author row %q: %w", name, err)
		}
		authors = append(authors, author)
	}
	return authors, nil
}

// latestNames keeps the most recent occurrence of each distinct name by
// grouping on the name and ordering groups by their highest entry id.
func (r *Repository) latestNames(column string, limit, offset int) ([]string, error) {
	q := r.db.Model(&entities.Entry{}).
		Group(column).
		Order("MAX(id) DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var names []string
	if err := q.Pluck(column, &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *Repository) RandomEntries(limit int) ([]sozluk.Entry, error) {
	q := r.db.Order("RANDOM()")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []entities.Entry
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch random entries: %w", err)
	}
	return rowsToDomain(rows)
}

// ImportEntry inserts an already-materialized entry with its original
// identifier and timestamp, creating dimension rows as needed. Used by the
// snapshot-to-database migration.
func (r *Repository) ImportEntry(entry sozluk.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := getOrCreateTopic(tx, entry.Topic.String()); err != nil {
			return err
		}
		if err := getOrCreateAuthor(tx, entry.Author.String()); err != nil {
			return err
		}
		row := entities.Entry{
			ID:         entry.ID.Int64(),
			TopicName:  entry.Topic.String(),
			AuthorName: entry.Author.String(),
			UTCTime:    entry.UTCTime,
			Text:       entry.Text.String(),
		}
		return tx.Create(&row).Error
	})
}

// FixCRLF is a one-shot data-hygiene pass converting CRLF line endings to LF
// across all stored entry texts. It is not part of steady-state behavior.
func (r *Repository) FixCRLF() (int64, error) {
	res := r.db.Model(&entities.Entry{}).
		Where("text LIKE ?", "%\r\n%").
		Update("text", gorm.Expr("replace(text, ?, ?)", "\r\n", "\n"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to normalize line endings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func rowsToDomain(rows []entities.Entry) ([]sozluk.Entry, error) {
	result := make([]sozluk.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("corrupt entry row %d: %w", row.ID, err)
		}
		result = append(result, entry)
	}
	return result, nil
}

func namesToTopics(names []string) ([]sozluk.TopicName, error) {
	topics := make([]sozluk.TopicName, 0, len(names))
	for _, name := range names {
		topic, err := sozluk.NewTopicName(name)
		if err != nil {
			return nil, fmt.Errorf("corrupt topic row %q: %w", name, err)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
