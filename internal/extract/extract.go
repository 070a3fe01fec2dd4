package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePlain = "text/plain"
)

// DocumentFormatError reports a document that could not be opened or parsed
// as the format it claims to be.
type DocumentFormatError struct {
	Format string
	Err    error
}

func (e *DocumentFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("document format error: %s", e.Format)
	}
	return fmt.Sprintf("document format error: %s: %v", e.Format, e.Err)
}

func (e *DocumentFormatError) Unwrap() error { return e.Err }

// Document is a paginated document. Pages are numbered from 1.
type Document interface {
	NumPage() int
	PageText(i int) (string, error)
}

// Extract joins the text of every page in page order. No separator is
// inserted between pages, so the last word of a page can run into the first
// word of the next.
func Extract(doc Document) (string, error) {
	var textBuilder strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", &DocumentFormatError{Format: "page", Err: fmt.Errorf("page %d: %w", i, err)}
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

// ResumeText extracts plain text from an uploaded resume.
func ResumeText(mime string, data []byte) (string, error) {
	switch normalizeMime(mime) {
	case MimePlain:
		return string(data), nil

	case MimePDF:
		doc, err := OpenPDF(data)
		if err != nil {
			return "", err
		}
		return Extract(doc)

	case MimeDOCX:
		return extractDocxText(data)

	default:
		return "", &DocumentFormatError{Format: mime, Err: fmt.Errorf("unsupported file type")}
	}
}

func normalizeMime(mime string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mime, ";")[0]))
}

type pdfDocument struct {
	reader *pdf.Reader
	pages  int
}

// OpenPDF parses a PDF held in memory. The parser panics on some malformed
// files; those panics are reported as a DocumentFormatError.
func OpenPDF(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, &DocumentFormatError{Format: MimePDF, Err: fmt.Errorf("%v", r)}
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentFormatError{Format: MimePDF, Err: err}
	}
	return &pdfDocument{reader: reader, pages: reader.NumPage()}, nil
}

func (d *pdfDocument) NumPage() int {
	return d.pages
}

func (d *pdfDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%v", r)
		}
	}()
	page := d.reader.Page(i)
	if page.V.IsNull() || page.V.Key("Contents").IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentFormatError{Format: MimeDOCX, Err: err}
	}
	defer doc.Close()

	text, err := stripDocxXML(doc.Editable().GetContent())
	if err != nil {
		return "", &DocumentFormatError{Format: MimeDOCX, Err: err}
	}
	return text, nil
}

// stripDocxXML keeps the character data of document.xml, ending each
// paragraph and line break with a newline.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
