// Package memdb implements the storage contract with an in-process map that
// is rewritten to a single JSON snapshot file after every mutation.
//
// Durability is whole-snapshot rewrite, not incremental logging: every id
// allocation and every structural change serializes the full map plus the
// next-id counter and atomically replaces the backing file.
package memdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/eren/sozluk/internal/sozluk"
	"github.com/eren/sozluk/internal/storage"
)

// DB is the snapshot-committed store. One RWMutex orders all mutations;
// lookups take the read lock, since Go map semantics forbid unsynchronized
// reads alongside writes.
type DB struct {
	path string

	mu      sync.RWMutex
	nextID  int64
	entries map[sozluk.EntryID]sozluk.Entry
}

type snapshot struct {
	NextID  int64                           `json:"next_id"`
	Entries map[sozluk.EntryID]sozluk.Entry `json:"entries"`
}

var _ storage.Sozluk = (*DB)(nil)

// Open loads the snapshot at path, or starts empty with the counter at 1
// when no snapshot exists yet. A present but unreadable snapshot is an
// infrastructural failure.
func Open(path string) (*DB, error) {
	db := &DB{
		path:    path,
		nextID:  1,
		entries: make(map[sozluk.EntryID]sozluk.Entry),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}

	db.nextID = snap.NextID
	if snap.Entries != nil {
		db.entries = snap.Entries
	}

	return db, nil
}

// commit serializes the whole state and atomically replaces the backing
// file. The state is copied under the lock; the write happens outside it.
func (db *DB) commit() error {
	db.mu.RLock()
	snap := snapshot{
		NextID:  db.nextID,
		Entries: maps.Clone(db.entries),
	}
	db.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := atomic.WriteFile(db.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", db.path, err)
	}
	return nil
}

// makeNextID atomically claims the next identifier and commits the advanced
// counter, so a crash cannot hand the same id out twice.
func (db *DB) makeNextID() (sozluk.EntryID, error) {
	db.mu.Lock()
	candidate := db.nextID
	db.nextID++
	db.mu.Unlock()

	if err := db.commit(); err != nil {
		return 0, err
	}
	return sozluk.NewEntryID(candidate)
}

func (db *DB) AddEntry(sketch sozluk.EntrySketch) (storage.AddOutcome, sozluk.EntryID, error) {
	id, err := db.makeNextID()
	if err != nil {
		return 0, 0, err
	}
	entry := sozluk.EntryFromSketch(sketch, id, time.Now().UTC())

	// Duplicate check and insert share one critical section, so two adds of
	// the same (topic, text) pair cannot both pass the check.
	db.mu.Lock()
	for _, existing := range db.entries {
		if existing.Topic == sketch.Topic && existing.Text == sketch.Text {
			db.mu.Unlock()
			return storage.AddDefinitionExists, 0, nil
		}
	}
	db.entries[id] = entry
	db.mu.Unlock()

	if err := db.commit(); err != nil {
		return 0, 0, err
	}
	return storage.AddSuccess, id, nil
}

func (db *DB) GetEntry(id sozluk.EntryID) (*sozluk.Entry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	entry, ok := db.entries[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (db *DB) GetTopic(name sozluk.TopicName) ([]sozluk.Entry, error) {
	return db.filterEntries(func(e sozluk.Entry) bool { return e.Topic == name }), nil
}

func (db *DB) GetAuthor(name sozluk.AuthorName) ([]sozluk.Entry, error) {
	return db.filterEntries(func(e sozluk.Entry) bool { return e.Author == name }), nil
}

func (db *DB) filterEntries(keep func(sozluk.Entry) bool) []sozluk.Entry {
	db.mu.RLock()
	var result []sozluk.Entry
	for _, entry := range db.entries {
		if keep(entry) {
			result = append(result, entry)
		}
	}
	db.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (db *DB) SearchTopics(query string, limit int) ([]sozluk.TopicName, error) {
	needle := sozluk.Fold(query)

	topics, err := db.LatestTopics(0, 0)
	if err != nil {
		return nil, err
	}

	var matches []sozluk.TopicName
	for _, topic := range topics {
		if !strings.Contains(string(topic), needle) {
			continue
		}
		matches = append(matches, topic)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

func (db *DB) DelEntry(id sozluk.EntryID) (storage.DeleteOutcome, error) {
	db.mu.Lock()
	if _, ok := db.entries[id]; !ok {
		db.mu.Unlock()
		return storage.DeleteEntryNotFound, nil
	}
	delete(db.entries, id)
	db.mu.Unlock()

	if err := db.commit(); err != nil {
		return 0, err
	}
	return storage.DeleteSuccess, nil
}

func (db *DB) EntryCount() (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return int64(len(db.entries)), nil
}

func (db *DB) TopicCount() (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	topics := make(map[sozluk.TopicName]struct{})
	for _, entry := range db.entries {
		topics[entry.Topic] = struct{}{}
	}
	return int64(len(topics)), nil
}

func (db *DB) AuthorCount() (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	authors := make(map[sozluk.AuthorName]struct{})
	for _, entry := range db.entries {
		authors[entry.Author] = struct{}{}
	}
	return int64(len(authors)), nil
}

func (db *DB) LatestTopics(limit, offset int) ([]sozluk.TopicName, error) {
	entries := db.entriesNewestFirst()

	seen := make(map[sozluk.TopicName]struct{})
	var topics []sozluk.TopicName
	for _, entry := range entries {
		if _, ok := seen[entry.Topic]; ok {
			continue
		}
		seen[entry.Topic] = struct{}{}
		topics = append(topics, entry.Topic)
	}
	return paginate(topics, limit, offset), nil
}

func (db *DB) LatestAuthors(limit, offset int) ([]sozluk.AuthorName, error) {
	entries := db.entriesNewestFirst()

	seen := make(map[sozluk.AuthorName]struct{})
	var authors []sozluk.AuthorName
	for _, entry := range entries {
		if _, ok := seen[entry.Author]; ok {
			continue
		}
		seen[entry.Author] = struct{}{}
		authors = append(authors, entry.Author)
	}
	return paginate(authors, limit, offset), nil
}

func (db *DB) RandomEntries(limit int) ([]sozluk.Entry, error) {
	db.mu.RLock()
	ids := make([]sozluk.EntryID, 0, len(db.entries))
	for id := range db.entries {
		ids = append(ids, id)
	}
	db.mu.RUnlock()

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	result := make([]sozluk.Entry, 0, limit)
	for _, id := range ids[:limit] {
		if entry, err := db.GetEntry(id); err == nil && entry != nil {
			result = append(result, *entry)
		}
	}
	return result, nil
}

// Entries returns every stored entry in identifier order. It is not part of
// the storage contract; the migration command uses it to replay a snapshot
// into another backend.
func (db *DB) Entries() []sozluk.Entry {
	return db.filterEntries(func(sozluk.Entry) bool { return true })
}

func (db *DB) entriesNewestFirst() []sozluk.Entry {
	db.mu.RLock()
	entries := make([]sozluk.Entry, 0, len(db.entries))
	for _, entry := range db.entries {
		entries = append(entries, entry)
	}
	db.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	return entries
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
