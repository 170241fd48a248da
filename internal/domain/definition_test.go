package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionEntryAccessors(t *testing.T) {
	raw := `{
		"word": "yeet",
		"definition": "To throw something with force.",
		"example": "He [yeeted] the can.",
		"permalink": "http://yeet.urbanup.com/1",
		"author": "someone",
		"thumbs_up": 120,
		"thumbs_down": 7,
		"defid": 1
	}`

	var entry DefinitionEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))

	assert.Equal(t, "yeet", entry.Word())
	assert.Equal(t, "To throw something with force.", entry.Definition())
	assert.Equal(t, "He [yeeted] the can.", entry.Example())
	assert.Equal(t, "http://yeet.urbanup.com/1", entry.Permalink())
	assert.Equal(t, "someone", entry.Author())
	assert.EqualValues(t, 120, entry.ThumbsUp())
	assert.EqualValues(t, 7, entry.ThumbsDown())
	assert.EqualValues(t, 1, entry.DefID())
}

func TestDefinitionEntryMissingOrMistypedKeys(t *testing.T) {
	entry := DefinitionEntry{
		"word":      42,
		"thumbs_up": "many",
		"defid":     json.Number("77"),
		"score":     1.5,
	}

	assert.Empty(t, entry.Word())
	assert.Empty(t, entry.Example())
	assert.Zero(t, entry.ThumbsUp())
	assert.Zero(t, entry.ThumbsDown())
	assert.EqualValues(t, 77, entry.DefID())
	assert.Zero(t, entry.Int("score"))
}

func TestDefinitionEntryIntRejectsOutOfRangeFloats(t *testing.T) {
	entry := DefinitionEntry{
		"huge":     1e300,
		"tiny":     -1e300,
		"edge":     9223372036854775808.0,
		"min":      -9223372036854775808.0,
		"negative": -12.0,
	}

	assert.Zero(t, entry.Int("huge"))
	assert.Zero(t, entry.Int("tiny"))
	assert.Zero(t, entry.Int("edge"))
	assert.Equal(t, int64(math.MinInt64), entry.Int("min"))
	assert.Equal(t, int64(-12), entry.Int("negative"))
}
