package text

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"go.uber.org/zap"
)

// WordCount is one distinct word and how often it occurs.
// Word is the lower-case counting key; Display is the surface form seen most often.
type WordCount struct {
	Word    string
	Display string
	Count   int
}

type CounterConfig struct {
	ExtraStopwords   []string // Added to the built-in set
	NormalizePlurals bool     // Fold "words" into "word" when both occur
	Stem             bool     // Count snowball stems instead of plural folding
	StemLanguage     string   // Snowball language, e.g. "english"
}

// DefaultCounterConfig returns the word-cloud defaults: built-in stopwords,
// plural folding on, stemming off.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		NormalizePlurals: true,
		StemLanguage:     "english",
	}
}

// Counter turns free text into single-word frequencies. Collocations are never formed.
type Counter struct {
	stopWords    map[string]bool
	tokenPattern *regexp.Regexp
	config       CounterConfig
	logger       *zap.Logger
}

func NewCounter(config CounterConfig, logger *zap.Logger) (*Counter, error) {
	if config.Stem {
		if _, err := snowball.Stem("testing", config.StemLanguage, true); err != nil {
			return nil, fmt.Errorf("unsupported stem language %q: %w", config.StemLanguage, err)
		}
	}

	stopWords := DefaultStopwords()
	for _, w := range config.ExtraStopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stopWords[w] = true
		}
	}

	return &Counter{
		stopWords:    stopWords,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{M}\p{N}_']+`),
		config:       config,
		logger:       logger,
	}, nil
}

// IsStopword reports whether w is dropped before counting.
func (c *Counter) IsStopword(w string) bool {
	return c.stopWords[strings.ToLower(w)]
}

// Count returns word frequencies sorted by count, highest first.
// Ties keep first-occurrence order.
func (c *Counter) Count(text string) []WordCount {
	tokens := c.tokens(text)

	forms := newFormTable()
	for _, tok := range tokens {
		forms.add(c.key(tok), tok)
	}

	if c.config.NormalizePlurals && !c.config.Stem {
		forms.foldPlurals()
	}

	counts := forms.counts()
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	c.logger.Debug("word_frequencies",
		zap.Int("tokens", len(tokens)),
		zap.Int("distinct_words", len(counts)))

	return counts
}

// tokens splits text into candidate words of two or more characters, dropping
// possessive 's, pure numbers and stopwords.
func (c *Counter) tokens(text string) []string {
	raw := c.tokenPattern.FindAllString(text, -1)

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if strings.HasSuffix(strings.ToLower(w), "'s") {
			w = w[:len(w)-2]
		}
		if w == "" || isNumber(w) {
			continue
		}
		if c.IsStopword(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

func (c *Counter) key(word string) string {
	lower := strings.ToLower(word)
	if !c.config.Stem {
		return lower
	}
	stemmed, err := snowball.Stem(lower, c.config.StemLanguage, true)
	if err != nil || stemmed == "" {
		return lower
	}
	return stemmed
}

func isNumber(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// formTable tracks, per counting key, every surface form and its count,
// all in first-occurrence order.
type formTable struct {
	keys  []string
	forms map[string]*caseForms
}

type caseForms struct {
	order  []string
	counts map[string]int
}

func newFormTable() *formTable {
	return &formTable{forms: make(map[string]*caseForms)}
}

func (t *formTable) add(key, form string) {
	t.addCount(key, form, 1)
}

func (t *formTable) addCount(key, form string, n int) {
	cf, ok := t.forms[key]
	if !ok {
		cf = &caseForms{counts: make(map[string]int)}
		t.forms[key] = cf
		t.keys = append(t.keys, key)
	}
	if _, seen := cf.counts[form]; !seen {
		cf.order = append(cf.order, form)
	}
	cf.counts[form] += n
}

// foldPlurals merges "xs" into "x" when "x" was also seen. "ss" endings are left alone.
func (t *formTable) foldPlurals() {
	kept := t.keys[:0:0]
	for _, key := range t.keys {
		singular := strings.TrimSuffix(key, "s")
		if singular == key || strings.HasSuffix(key, "ss") {
			kept = append(kept, key)
			continue
		}
		if _, ok := t.forms[singular]; !ok {
			kept = append(kept, key)
			continue
		}

		plural := t.forms[key]
		for _, form := range plural.order {
			t.addCount(singular, form[:len(form)-1], plural.counts[form])
		}
		delete(t.forms, key)
	}
	t.keys = kept
}

func (t *formTable) counts() []WordCount {
	result := make([]WordCount, 0, len(t.keys))
	for _, key := range t.keys {
		cf := t.forms[key]
		display, best, total := "", 0, 0
		for _, form := range cf.order {
			n := cf.counts[form]
			total += n
			if n > best {
				display, best = form, n
			}
		}
		result = append(result, WordCount{Word: key, Display: display, Count: total})
	}
	return result
}
