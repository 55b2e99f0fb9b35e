package extract

import (
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const NoDocumentText = "No text found in the PDF."

// Document is the text of a PDF. Pages counts all pages, including the ones
// that contributed nothing.
type Document struct {
	Pages int
	Text  string
}

func (d Document) String() string {
	if d.Text == "" {
		return NoDocumentText
	}
	return d.Text
}

type PDF struct{}

func NewPDF() *PDF { return &PDF{} }

// Extract concatenates the plain text of every page in order. Pages that fail
// or have no text layer are skipped; only a document that cannot be opened is
// an error.
func (x *PDF) Extract(r io.ReaderAt, size int64) (Document, error) {
	reader, pages, err := openPDF(r, size)
	if err != nil {
		return Document{}, fail(KindParse, "open pdf", err)
	}

	doc := Document{Pages: pages}
	var sb strings.Builder
	for i := 1; i <= doc.Pages; i++ {
		sb.WriteString(pageText(reader, i))
	}
	doc.Text = sb.String()
	return doc, nil
}

func openPDF(r io.ReaderAt, size int64) (reader *pdf.Reader, pages int, err error) {
	defer func() {
		if v := recover(); v != nil {
			reader, pages, err = nil, 0, recovered(v)
		}
	}()
	reader, err = pdf.NewReader(r, size)
	if err != nil {
		return nil, 0, err
	}
	return reader, reader.NumPage(), nil
}

func pageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
