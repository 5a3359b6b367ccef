package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePicksFrequentTopicSentences(t *testing.T) {
	text := "The premium plan covers support. The premium plan covers hardware. Lunch is at noon. The premium plan covers travel."
	s := NewFrequencySummarizer()

	out, err := s.Summarize(text, 2)

	require.NoError(t, err)
	assert.Contains(t, out, "premium plan")
	assert.LessOrEqual(t, len(strings.Split(out, ".")), 4)
}

func TestSummarizeKeepsOriginalSentenceOrder(t *testing.T) {
	text := "Alpha topic appears first. Beta filler sentence here. Alpha topic appears again."
	s := NewFrequencySummarizer()

	out, err := s.Summarize(text, 2)

	require.NoError(t, err)
	first := strings.Index(out, "first")
	again := strings.Index(out, "again")
	if first >= 0 && again >= 0 {
		assert.Less(t, first, again)
	}
}

func TestSummarizeTextWithoutSentences(t *testing.T) {
	s := NewFrequencySummarizer()

	out, err := s.Summarize("  just a fragment without punctuation  ", 3)

	require.NoError(t, err)
	assert.Equal(t, "just a fragment without punctuation", out)
}
