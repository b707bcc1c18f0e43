package sozluk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopicName_Normal(t *testing.T) {
	topic, err := NewTopicName("my awesome topic")
	require.NoError(t, err)
	assert.Equal(t, "my awesome topic", topic.String())
}

func TestNewTopicName_LongName(t *testing.T) {
	for _, length := range []int{40, 45, 50} {
		_, err := NewTopicName(strings.Repeat("l", length))
		assert.NoError(t, err, "length %d", length)
	}

	_, err := NewTopicName(strings.Repeat("m", 51))
	assert.Error(t, err)
}

func TestNewTopicName_Empty(t *testing.T) {
	_, err := NewTopicName("")
	assert.Error(t, err)
}

func TestNewTopicName_WeirdSpaces(t *testing.T) {
	for _, input := range []string{
		" hello world",
		"many  spaces",
		"spaces end ",
	} {
		_, err := NewTopicName(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNewTopicName_AlphanumericCheck(t *testing.T) {
	for _, input := range []string{
		"nonalphanum!",
		"slash/.,!",
	} {
		_, err := NewTopicName(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNewTopicName_FoldsCase(t *testing.T) {
	topic, err := NewTopicName("CAN SIKINTISI")
	require.NoError(t, err)
	assert.Equal(t, "can sıkıntısı", topic.String())
}
