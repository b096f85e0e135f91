package file

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor implements TextExtractor using github.com/ledongthuc/pdf
type PDFExtractor struct {
	logger *zap.Logger
}

func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{
		logger: logger,
	}
}

// ExtractText concatenates the plain text of every page in document order.
// Pages that yield no text contribute nothing; only an unreadable document fails.
func (p *PDFExtractor) ExtractText(data []byte) (result *ExtractionResult) {
	// ledongthuc/pdf reports many malformed structures by panicking.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("pdf parser panicked", zap.Any("panic", r))
			result = Failed(fmt.Sprintf("Error reading PDF file: %v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		p.logger.Error("Failed to open PDF", zap.Int("size", len(data)), zap.Error(err))
		return Failed(fmt.Sprintf("Error reading PDF file: %v", err))
	}

	var text strings.Builder
	numPages := r.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("Failed to extract page text",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		text.WriteString(pageText)
	}

	p.logger.Debug("pdf_extraction_result",
		zap.Int("pages", numPages),
		zap.Int("text_length", text.Len()))

	res := Succeeded(text.String())
	res.Pages = numPages
	return res
}
