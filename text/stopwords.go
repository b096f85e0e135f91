package text

import (
	_ "embed"
	"strings"
)

//go:embed stopwords.txt
var stopwordList string

// DefaultStopwords returns a fresh copy of the built-in English stopword set.
func DefaultStopwords() map[string]bool {
	words := strings.Fields(stopwordList)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
