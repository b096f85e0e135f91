package file

import (
	"testing"

	"doccloud/file/filetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPDFExtractor_ConcatenatesPagesInOrder(t *testing.T) {
	testCases := []struct {
		name     string
		pages    []string
		expected string
	}{
		{"SinglePage", []string{"Hello hello world"}, "Hello hello world"},
		{"MultiplePages", []string{"Alpha", "Beta", "Gamma"}, "AlphaBetaGamma"},
		{"EmptyMiddlePage", []string{"First", "", "Last"}, "FirstLast"},
		{"AllPagesEmpty", []string{"", ""}, ""},
	}

	extractor := NewPDFExtractor(zap.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := extractor.ExtractText(filetest.PDF(t, tc.pages...))

			require.True(t, result.Success, "unexpected failure: %s", result.Error)
			assert.Equal(t, tc.expected, result.Text)
			assert.Equal(t, len(tc.pages), result.Pages)
			assert.Empty(t, result.Error)
		})
	}
}

func TestPDFExtractor_Idempotent(t *testing.T) {
	data := filetest.PDF(t, "Repeat me", "twice")
	extractor := NewPDFExtractor(zap.NewNop())

	first := extractor.ExtractText(data)
	second := extractor.ExtractText(data)

	require.True(t, first.Success)
	assert.Equal(t, first.Text, second.Text)
}

func TestPDFExtractor_CorruptInput(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"NotAPDF", []byte("this is plainly not a pdf document")},
		{"Empty", []byte{}},
		{"TruncatedHeader", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog")},
	}

	extractor := NewPDFExtractor(zap.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := extractor.ExtractText(tc.data)

			assert.False(t, result.Success)
			assert.Empty(t, result.Text)
			assert.Contains(t, result.Error, "Error reading PDF file:")
		})
	}
}
