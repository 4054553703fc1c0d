package analysis

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/sirupsen/logrus"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")

	reXMLTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaceRuns = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	reLineRuns  = regexp.MustCompile(`\n\s*\n+`)
)

// Extract sniffs the document format from its leading bytes and returns its text.
func Extract(data []byte) (string, error) {
	return ExtractText(DetectMime(data), data)
}

// DetectMime recognises PDF and DOCX (zip) buffers. Anything else yields "".
func DetectMime(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return MimePDF
	case bytes.HasPrefix(data, zipMagic):
		return MimeDOCX
	default:
		return ""
	}
}

// ExtractText converts a document buffer of the given mime type to plain text.
// An empty or octet-stream mime type falls back to sniffing. Every failure wraps
// ErrExtraction. A document that parses but holds no text is not an error here.
func ExtractText(mime string, data []byte) (string, error) {
	mime = strings.ToLower(strings.TrimSpace(strings.Split(mime, ";")[0]))
	if mime == "" || mime == "application/octet-stream" {
		mime = DetectMime(data)
	}

	var (
		text string
		err  error
	)
	switch mime {
	case MimeText:
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return normalizeWhitespace(text), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf package panics on some truncated xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	return joinPages(pdfReader.NumPage(), func(i int) (string, error) {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			return "", nil
		}
		return pageText(page)
	})
}

func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return page.GetPlainText(nil)
}

// joinPages concatenates the text of pages 1..numPages. Unreadable pages are skipped;
// the document only fails when no page could be read.
func joinPages(numPages int, read func(i int) (string, error)) (string, error) {
	var textBuilder strings.Builder
	var firstErr error
	failed := 0
	for i := 1; i <= numPages; i++ {
		text, err := read(i)
		if err != nil {
			logrus.WithError(err).WithField("page", i).Warn("skipping unreadable pdf page")
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", i, err)
			}
			failed++
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	if numPages > 0 && failed == numPages {
		return "", fmt.Errorf("failed to read any pdf page: %w", firstErr)
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText turns WordprocessingML into text, one paragraph per line.
func docxXMLToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	return html.UnescapeString(reXMLTags.ReplaceAllString(xml, ""))
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = reLineRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return strings.TrimSpace(s)
}
