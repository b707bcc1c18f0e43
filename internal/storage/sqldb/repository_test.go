package sqldb

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eren/sozluk/internal/entities"
	"github.com/eren/sozluk/internal/sozluk"
	"github.com/eren/sozluk/internal/storage"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()
	path := fmt.Sprintf("./test_sozluk_%s.db", t.Name())

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := NewRepository(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
		os.Remove(path)
	}
	return repo, cleanup
}

func mustSketch(t *testing.T, topic, author, text string) sozluk.EntrySketch {
	t.Helper()
	topicName, err := sozluk.NewTopicName(topic)
	require.NoError(t, err)
	authorName, err := sozluk.NewAuthorName(author)
	require.NoError(t, err)
	return sozluk.EntrySketch{
		Topic:  topicName,
		Author: authorName,
		Text:   sozluk.NewEntryText(text),
	}
}

func mustAdd(t *testing.T, repo *Repository, topic, author, text string) sozluk.EntryID {
	t.Helper()
	outcome, id, err := repo.AddEntry(mustSketch(t, topic, author, text))
	require.NoError(t, err)
	require.Equal(t, storage.AddSuccess, outcome)
	return id
}

func TestAddEntry(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	id := mustAdd(t, repo, "konu", "eren", "ilk girdi")
	assert.Equal(t, int64(1), id.Int64())

	entry, err := repo.GetEntry(id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "konu", entry.Topic.String())
	assert.Equal(t, "eren", entry.Author.String())
	assert.Equal(t, "ilk girdi", entry.Text.String())
	assert.False(t, entry.UTCTime.IsZero())
}

func TestAddEntry_DuplicateDefinition(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	mustAdd(t, repo, "konu", "eren", "ayni metin")

	outcome, id, err := repo.AddEntry(mustSketch(t, "konu", "ahmet", "ayni metin"))
	require.NoError(t, err)
	assert.Equal(t, storage.AddDefinitionExists, outcome)
	assert.Zero(t, id)

	count, err := repo.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetEntry_Missing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	entry, err := repo.GetEntry(sozluk.EntryID(999))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetTopicAndGetAuthor(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	mustAdd(t, repo, "konu", "eren", "bir")
	mustAdd(t, repo, "konu", "ahmet", "iki")
	mustAdd(t, repo, "baska konu", "eren", "uc")

	topicName, err := sozluk.NewTopicName("konu")
	require.NoError(t, err)
	entries, err := repo.GetTopic(topicName)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bir", entries[0].Text.String())
	assert.Equal(t, "iki", entries[1].Text.String())

	authorName, err := sozluk.NewAuthorName("eren")
	require.NoError(t, err)
	entries, err = repo.GetAuthor(authorName)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bir", entries[0].Text.String())
	assert.Equal(t, "uc", entries[1].Text.String())
}

func TestDelEntry(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	id := mustAdd(t, repo, "konu", "eren", "silinecek")

	outcome, err := repo.DelEntry(id)
	require.NoError(t, err)
	assert.Equal(t, storage.DeleteSuccess, outcome)

	outcome, err = repo.DelEntry(id)
	require.NoError(t, err)
	assert.Equal(t, storage.DeleteEntryNotFound, outcome)
}

func TestDelEntry_SweepsOrphanedDimensions(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	keep := mustAdd(t, repo, "kalan konu", "kalan", "birinci")
	gone := mustAdd(t, repo, "giden konu", "giden", "ikinci")

	outcome, err := repo.DelEntry(gone)
	require.NoError(t, err)
	require.Equal(t, storage.DeleteSuccess, outcome)

	var topicRows, authorRows int64
	require.NoError(t, repo.DB().Model(&entities.Topic{}).Count(&topicRows).Error)
	require.NoError(t, repo.DB().Model(&entities.Author{}).Count(&authorRows).Error)
	assert.Equal(t, int64(1), topicRows, "orphaned topic row stays deleted")
	assert.Equal(t, int64(1), authorRows, "orphaned author row stays deleted")

	entry, err := repo.GetEntry(keep)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "kalan konu", entry.Topic.String())
}

func TestLatestTopics(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	mustAdd(t, repo, "a", "eren", "bir")
	mustAdd(t, repo, "b", "eren", "iki")
	mustAdd(t, repo, "a", "eren", "uc")
	mustAdd(t, repo, "c", "eren", "dort")

	topics, err := repo.LatestTopics(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, topicNames(topics))

	topics, err = repo.LatestTopics(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, topicNames(topics))
}

func TestLatestAuthors(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	mustAdd(t, repo, "konu", "ali", "bir")
	mustAdd(t, repo, "konu", "veli", "iki")
	mustAdd(t, repo, "konu", "ali", "uc")

	authors, err := repo.LatestAuthors(0, 0)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "ali", authors[0].String())
	assert.Equal(t, "veli", authors[1].String())
}

func TestCounts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	mustAdd(t, repo, "a", "ali", "bir")
	mustAdd(t, repo, "a", "veli", "iki")
	mustAdd(t, repo, "b", "ali", "uc")

	entryCount, err := repo.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), entryCount)

	topicCount, err := repo.TopicCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), topicCount)

	authorCount, err := repo.AuthorCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), authorCount)
}

func TestSearchTopics(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	mustAdd(t, repo, "istanbul", "eren", "bir")
	mustAdd(t, repo, "ankara", "eren", "iki")
	mustAdd(t, repo, "tanpinar", "eren", "uc")

	topics, err := repo.SearchTopics("tan", 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"istanbul", "tanpinar"}, topicNames(topics))

	topics, err = repo.SearchTopics("tan", 1)
	require.NoError(t, err)
	assert.Len(t, topics, 1)

	topics, err = repo.SearchTopics("yok boyle konu", 0)
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestRandomEntries(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, text := range []string{"bir", "iki", "uc", "dort", "bes"} {
		mustAdd(t, repo, "konu", "eren", text)
	}

	entries, err := repo.RandomEntries(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = repo.RandomEntries(10)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestImportEntry_PreservesIdentifier(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	topic, err := sozluk.NewTopicName("tasinan konu")
	require.NoError(t, err)
	author, err := sozluk.NewAuthorName("eren")
	require.NoError(t, err)
	id, err := sozluk.NewEntryID(42)
	require.NoError(t, err)

	entry := sozluk.Entry{
		Topic:   topic,
		Author:  author,
		Text:    sozluk.NewEntryText("eski girdi"),
		ID:      id,
		UTCTime: time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.ImportEntry(entry))

	got, err := repo.GetEntry(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "eski girdi", got.Text.String())
	assert.True(t, entry.UTCTime.Equal(got.UTCTime))
}

func TestFixCRLF(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	id := mustAdd(t, repo, "konu", "eren", "satir bir\r\nsatir iki")
	mustAdd(t, repo, "konu", "eren", "tek satir")

	fixed, err := repo.FixCRLF()
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	entry, err := repo.GetEntry(id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "satir bir\nsatir iki", entry.Text.String())
}

func topicNames(topics []sozluk.TopicName) []string {
	names := make([]string, 0, len(topics))
	for _, topic := range topics {
		names = append(names, topic.String())
	}
	return names
}
