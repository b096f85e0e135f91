package file

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DocumentType is the closed set of formats the extractors understand.
type DocumentType int

const (
	TypeUnknown DocumentType = iota
	TypePDF
	TypeDOCX
)

func (t DocumentType) String() string {
	switch t {
	case TypePDF:
		return "pdf"
	case TypeDOCX:
		return "docx"
	case TypeUnknown:
		return "unknown"
	}
	return "unknown"
}

// ParseDocumentType maps a declared MIME type to a DocumentType.
// Media type parameters and letter case are ignored; the content is never inspected.
func ParseDocumentType(declared string) DocumentType {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(declared))
	}

	switch mediaType {
	case MimePDF:
		return TypePDF
	case MimeDOCX:
		return TypeDOCX
	default:
		return TypeUnknown
	}
}

// MimeTypeForName returns the declared type registered for the file extension,
// or "" when the extension is not one the upload filter accepts.
func MimeTypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	default:
		return ""
	}
}

// AcceptedName reports whether the upload filter lets a file with this name through.
func AcceptedName(name string) bool {
	return MimeTypeForName(name) != ""
}

// Document is a single uploaded file. It lives for one pipeline run.
type Document struct {
	Name         string
	DeclaredType string
	Data         []byte
}

func (d Document) Type() DocumentType {
	return ParseDocumentType(d.DeclaredType)
}

// Core routes documents to the extractor registered for their type.
type Core struct {
	pdfExtractor  TextExtractor
	docxExtractor TextExtractor
}

func NewCore(pdfExtractor, docxExtractor TextExtractor) *Core {
	return &Core{
		pdfExtractor:  pdfExtractor,
		docxExtractor: docxExtractor,
	}
}

// ExtractorFor returns the extractor for t, or false for TypeUnknown.
func (c *Core) ExtractorFor(t DocumentType) (TextExtractor, bool) {
	switch t {
	case TypePDF:
		return c.pdfExtractor, c.pdfExtractor != nil
	case TypeDOCX:
		return c.docxExtractor, c.docxExtractor != nil
	case TypeUnknown:
		return nil, false
	}
	return nil, false
}
