package main

import (
	"flag"
	"io"
	"testing"

	"github.com/Adda-Baaj/shabd-relay/pkg/urban"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() (*flag.FlagSet, *int, *bool) {
	fs := flag.NewFlagSet("define", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	index := fs.Int("index", 0, "")
	all := fs.Bool("all", false, "")
	return fs, index, all
}

func TestParseInterspersedFlagsAfterTerm(t *testing.T) {
	fs, index, all := newTestFlagSet()

	words, err := parseInterspersed(fs, []string{"big", "yikes", "-index", "2", "-all"})
	require.NoError(t, err)
	assert.Equal(t, []string{"big", "yikes"}, words)
	assert.Equal(t, 2, *index)
	assert.True(t, *all)
}

func TestParseInterspersedFlagsBetweenWords(t *testing.T) {
	fs, index, _ := newTestFlagSet()

	words, err := parseInterspersed(fs, []string{"-index=1", "no", "-all", "cap"})
	require.NoError(t, err)
	assert.Equal(t, []string{"no", "cap"}, words)
	assert.Equal(t, 1, *index)
}

func TestParseInterspersedDoubleDashEndsFlags(t *testing.T) {
	fs, index, all := newTestFlagSet()

	words, err := parseInterspersed(fs, []string{"-index", "3", "--", "-all", "-index"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-all", "-index"}, words)
	assert.Equal(t, 3, *index)
	assert.False(t, *all)
}

func TestParseInterspersedRejectsUnknownFlag(t *testing.T) {
	fs, _, _ := newTestFlagSet()

	_, err := parseInterspersed(fs, []string{"word", "-bogus"})
	assert.Error(t, err)
}

func TestRunRejectsBlankTerm(t *testing.T) {
	err := run([]string{"-all", "  "})
	assert.ErrorIs(t, err, urban.ErrEmptyTerm)
}
