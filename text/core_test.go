package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCounter(t *testing.T, config CounterConfig) *Counter {
	t.Helper()
	c, err := NewCounter(config, zap.NewNop())
	require.NoError(t, err)
	return c
}

func countsByWord(counts []WordCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, wc := range counts {
		m[wc.Word] = wc.Count
	}
	return m
}

func TestCounter_CaseInsensitiveCounts(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	counts := c.Count("Hello hello world")

	require.Len(t, counts, 2)
	assert.Equal(t, WordCount{Word: "hello", Display: "Hello", Count: 2}, counts[0])
	assert.Equal(t, WordCount{Word: "world", Display: "world", Count: 1}, counts[1])
}

func TestCounter_DisplayUsesMostFrequentForm(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	counts := c.Count("go Go Go GO")

	require.Len(t, counts, 1)
	assert.Equal(t, "Go", counts[0].Display)
	assert.Equal(t, 4, counts[0].Count)
}

func TestCounter_DropsStopwordsNumbersAndPossessives(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	counts := countsByWord(c.Count("The cat and THE dog's bowl, 2024 and 42 times; it's the end."))

	assert.Equal(t, map[string]int{"cat": 1, "dog": 1, "bowl": 1, "times": 1, "end": 1}, counts)
}

func TestCounter_DropsSingleCharacterTokens(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	assert.Equal(t, map[string]int{"hello": 1}, countsByWord(c.Count("x x y hello q")))
	assert.Equal(t, map[string]int{"go": 2, "ok": 1}, countsByWord(c.Count("e go Go ok 7 é")))
	assert.Empty(t, c.Count("a b c d e f"))
}

func TestCounter_NoCollocations(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	counts := c.Count("machine learning machine learning machine learning")

	for _, wc := range counts {
		assert.NotContains(t, wc.Word, " ")
	}
	assert.Equal(t, map[string]int{"machine": 3, "learning": 3}, countsByWord(counts))
}

func TestCounter_PluralFolding(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]int
	}{
		{"FoldsWhenSingularSeen", "cat cats Cats", map[string]int{"cat": 3}},
		{"KeepsLonePlural", "dogs dogs", map[string]int{"dogs": 2}},
		{"KeepsDoubleS", "glass glas", map[string]int{"glass": 1, "glas": 1}},
	}

	c := newTestCounter(t, DefaultCounterConfig())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, countsByWord(c.Count(tc.input)))
		})
	}
}

func TestCounter_PluralFoldingDisabled(t *testing.T) {
	config := DefaultCounterConfig()
	config.NormalizePlurals = false
	c := newTestCounter(t, config)

	assert.Equal(t, map[string]int{"cat": 1, "cats": 1}, countsByWord(c.Count("cat cats")))
}

func TestCounter_SortedByCountThenFirstSeen(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	counts := c.Count("zebra apple mango apple mango apple")

	words := make([]string, 0, len(counts))
	for _, wc := range counts {
		words = append(words, wc.Word)
	}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, words)
}

func TestCounter_ExtraStopwords(t *testing.T) {
	config := DefaultCounterConfig()
	config.ExtraStopwords = []string{" Lorem ", "ipsum", ""}
	c := newTestCounter(t, config)

	assert.Equal(t, map[string]int{"dolor": 1}, countsByWord(c.Count("lorem ipsum dolor")))
	assert.True(t, c.IsStopword("LOREM"))
}

func TestCounter_Stemming(t *testing.T) {
	config := DefaultCounterConfig()
	config.Stem = true
	c := newTestCounter(t, config)

	counts := c.Count("running runs run")

	require.Len(t, counts, 1)
	assert.Equal(t, "run", counts[0].Word)
	assert.Equal(t, 3, counts[0].Count)
}

func TestNewCounter_RejectsUnknownStemLanguage(t *testing.T) {
	config := DefaultCounterConfig()
	config.Stem = true
	config.StemLanguage = "klingon"

	_, err := NewCounter(config, zap.NewNop())
	assert.Error(t, err)
}

func TestCounter_OnlyStopwords(t *testing.T) {
	c := newTestCounter(t, DefaultCounterConfig())

	assert.Empty(t, c.Count("the and of to"))
	assert.Empty(t, c.Count("   \n\t"))
}

func TestDefaultStopwords(t *testing.T) {
	stop := DefaultStopwords()

	for _, w := range []string{"the", "and", "of", "can't", "www"} {
		assert.True(t, stop[w], w)
	}
	assert.False(t, stop["hello"])

	stop["hello"] = true
	assert.False(t, DefaultStopwords()["hello"], "copies must be independent")
}
