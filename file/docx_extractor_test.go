package file

import (
	"testing"

	"doccloud/file/filetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDOCXExtractor_ParagraphsFollowedByNewline(t *testing.T) {
	testCases := []struct {
		name       string
		paragraphs []string
		expected   string
	}{
		{"WithEmptyParagraph", []string{"Alpha", "", "Beta"}, "Alpha\n\nBeta\n"},
		{"Single", []string{"Only one"}, "Only one\n"},
		{"OnlyEmpty", []string{"", ""}, "\n\n"},
		{"NoParagraphs", nil, ""},
	}

	extractor := NewDOCXExtractor(zap.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := make([]string, 0, len(tc.paragraphs))
			for _, p := range tc.paragraphs {
				body = append(body, filetest.Paragraph(p))
			}

			result := extractor.ExtractText(filetest.DOCX(t, body...))

			require.True(t, result.Success, "unexpected failure: %s", result.Error)
			assert.Equal(t, tc.expected, result.Text)
			assert.Equal(t, len(tc.paragraphs), result.Paragraphs)
		})
	}
}

func TestDOCXExtractor_RunContent(t *testing.T) {
	body := []string{
		`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
			`<w:r><w:t>Split</w:t></w:r><w:r><w:t xml:space="preserve"> across runs</w:t></w:r></w:p>`,
		`<w:p><w:r><w:t>Name</w:t><w:tab/><w:t>Value</w:t><w:br/><w:t>Next</w:t></w:r></w:p>`,
		`<w:p><w:del><w:r><w:delText>removed</w:delText></w:r></w:del><w:r><w:t>kept</w:t></w:r></w:p>`,
		`<w:p><w:r><wps:txbx><w:txbxContent><w:p><w:r><w:t>boxed</w:t></w:r></w:p></w:txbxContent></wps:txbx></w:r>` +
			`<w:r><w:t>outside</w:t></w:r></w:p>`,
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
		filetest.Paragraph("tail"),
	}

	result := NewDOCXExtractor(zap.NewNop()).ExtractText(filetest.DOCX(t, body...))

	require.True(t, result.Success, "unexpected failure: %s", result.Error)
	assert.Equal(t, "Split across runs\nName\tValue\nNext\nkept\noutside\ntail\n", result.Text)
	assert.Equal(t, 5, result.Paragraphs)
}

func TestDOCXExtractor_BreakTypes(t *testing.T) {
	testCases := []struct {
		name     string
		br       string
		expected string
	}{
		{"Default", `<w:br/>`, "one\ntwo\n"},
		{"TextWrapping", `<w:br w:type="textWrapping"/>`, "one\ntwo\n"},
		{"Page", `<w:br w:type="page"/>`, "onetwo\n"},
		{"Column", `<w:br w:type="column"/>`, "onetwo\n"},
		{"CarriageReturn", `<w:cr/>`, "one\ntwo\n"},
	}

	extractor := NewDOCXExtractor(zap.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := `<w:p><w:r><w:t>one</w:t>` + tc.br + `<w:t>two</w:t></w:r></w:p>`

			result := extractor.ExtractText(filetest.DOCX(t, body))

			require.True(t, result.Success, "unexpected failure: %s", result.Error)
			assert.Equal(t, tc.expected, result.Text)
		})
	}
}

func TestDOCXExtractor_Idempotent(t *testing.T) {
	data := filetest.DOCX(t, filetest.Paragraph("same"), filetest.Paragraph("text"))
	extractor := NewDOCXExtractor(zap.NewNop())

	first := extractor.ExtractText(data)
	second := extractor.ExtractText(data)

	require.True(t, first.Success)
	assert.Equal(t, first.Text, second.Text)
}

func TestDOCXExtractor_CorruptInput(t *testing.T) {
	testCases := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"NotAZip", func(t *testing.T) []byte { return []byte("definitely not a zip archive") }},
		{"MissingMainPart", func(t *testing.T) []byte {
			return filetest.Zip(t, map[string]string{"word/styles.xml": "<styles/>"})
		}},
		{"MalformedXML", func(t *testing.T) []byte {
			return filetest.Zip(t, map[string]string{
				"word/document.xml":            "<w:document><w:body><w:p>",
				"word/_rels/document.xml.rels": "<Relationships/>",
			})
		}},
	}

	extractor := NewDOCXExtractor(zap.NewNop())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := extractor.ExtractText(tc.data(t))

			assert.False(t, result.Success)
			assert.Empty(t, result.Text)
			assert.Contains(t, result.Error, "Error reading DOCX file:")
		})
	}
}

func TestBodyParagraphs_RequiresBody(t *testing.T) {
	_, err := bodyParagraphs(`<w:document xmlns:w="` + wordprocessingNS + `"></w:document>`)
	assert.ErrorIs(t, err, errNoBody)
}
