package file

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var errNoBody = errors.New("document body not found")

// DOCXExtractor implements TextExtractor for OOXML word-processing documents
type DOCXExtractor struct {
	logger *zap.Logger
}

func NewDOCXExtractor(logger *zap.Logger) *DOCXExtractor {
	return &DOCXExtractor{
		logger: logger,
	}
}

// ExtractText joins every body paragraph followed by a newline, empty paragraphs included.
func (d *DOCXExtractor) ExtractText(data []byte) *ExtractionResult {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		d.logger.Error("Failed to open DOCX", zap.Int("size", len(data)), zap.Error(err))
		return Failed(fmt.Sprintf("Error reading DOCX file: %v", err))
	}
	defer r.Close()

	paragraphs, err := bodyParagraphs(r.Editable().GetContent())
	if err != nil {
		d.logger.Error("Failed to parse DOCX body", zap.Error(err))
		return Failed(fmt.Sprintf("Error reading DOCX file: %v", err))
	}

	var text strings.Builder
	for _, p := range paragraphs {
		text.WriteString(p)
		text.WriteString("\n")
	}

	d.logger.Debug("docx_extraction_result",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("text_length", text.Len()))

	res := Succeeded(text.String())
	res.Paragraphs = len(paragraphs)
	return res
}

// bodyParagraphs walks word/document.xml and returns the text of each direct
// w:p child of w:body. Text boxes, deleted runs and field codes are skipped.
func bodyParagraphs(documentXML string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		paraDepth  = -1
		sawBody    bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := elementName(t.Name)
			if name == "body" {
				sawBody = true
			}
			if name == "p" && paraDepth < 0 && top(stack) == "body" {
				paraDepth = len(stack)
				current.Reset()
			}
			if paraDepth >= 0 && top(stack) == "r" && visible(stack[paraDepth:]) {
				switch name {
				case "tab":
					current.WriteString("\t")
				case "br":
					if isLineBreak(t) {
						current.WriteString("\n")
					}
				case "cr":
					current.WriteString("\n")
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if paraDepth >= 0 && len(stack) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				paraDepth = -1
			}

		case xml.CharData:
			if paraDepth >= 0 && top(stack) == "t" && visible(stack[paraDepth:]) {
				current.Write(t)
			}
		}
	}

	if !sawBody {
		return nil, errNoBody
	}
	return paragraphs, nil
}

// elementName keeps WordprocessingML local names and marks foreign elements.
func elementName(n xml.Name) string {
	if n.Space == wordprocessingNS {
		return n.Local
	}
	return "~" + n.Local
}

// isLineBreak reports whether a w:br is a text-wrapping break. Page and column
// breaks carry no text.
func isLineBreak(br xml.StartElement) bool {
	for _, a := range br.Attr {
		if a.Name.Space == wordprocessingNS && a.Name.Local == "type" {
			return a.Value == "textWrapping"
		}
	}
	return true
}

// visible reports whether text under this paragraph-relative path belongs to the paragraph itself.
func visible(path []string) bool {
	for _, name := range path {
		switch name {
		case "txbxContent", "delText", "instrText", "del":
			return false
		}
	}
	return true
}

func top(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}
