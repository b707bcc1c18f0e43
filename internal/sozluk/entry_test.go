package sozluk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntryID(t *testing.T) {
	id, err := NewEntryID(5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id.Int64())

	_, err = NewEntryID(0)
	assert.Error(t, err)
	_, err = NewEntryID(-3)
	assert.Error(t, err)
}

func TestEntryID_Equality(t *testing.T) {
	a, err := NewEntryID(5)
	require.NoError(t, err)
	b, err := NewEntryID(5)
	require.NoError(t, err)
	c, err := NewEntryID(6)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// comparable, so usable as a map key
	seen := map[EntryID]bool{a: true}
	assert.True(t, seen[b])
	assert.False(t, seen[c])
}

func TestEntryFromSketch(t *testing.T) {
	topic, err := NewTopicName("can sikintisi")
	require.NoError(t, err)
	author, err := NewAuthorName("eren")
	require.NoError(t, err)

	sketch := EntrySketch{
		Topic:  topic,
		Author: author,
		Text:   NewEntryText("yasadigim."),
	}

	id, err := NewEntryID(1)
	require.NoError(t, err)
	now := time.Now().UTC()

	entry := EntryFromSketch(sketch, id, now)
	assert.Equal(t, sketch.Topic, entry.Topic)
	assert.Equal(t, sketch.Author, entry.Author)
	assert.Equal(t, sketch.Text, entry.Text)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, now, entry.UTCTime)

	assert.Equal(t, now.Add(3*time.Hour), entry.Time(3*time.Hour))
}
