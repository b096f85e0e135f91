package file

import "strings"

// ExtractionResult is the outcome of running one extractor over one document.
// A failed result never carries text.
type ExtractionResult struct {
	Text       string
	Pages      int // For PDFs
	Paragraphs int // For DOCX
	Success    bool
	Error      string
}

// Succeeded builds a successful result. The text may be blank.
func Succeeded(text string) *ExtractionResult {
	return &ExtractionResult{Text: text, Success: true}
}

// Failed builds a failed result carrying a human-readable diagnostic.
func Failed(diagnostic string) *ExtractionResult {
	return &ExtractionResult{Success: false, Error: diagnostic}
}

// IsEmpty reports whether the extracted text has no readable content.
func (r *ExtractionResult) IsEmpty() bool {
	return strings.TrimSpace(r.Text) == ""
}

type TextExtractor interface {
	ExtractText(data []byte) *ExtractionResult
}
