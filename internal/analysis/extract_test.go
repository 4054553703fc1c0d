package analysis

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMime(t *testing.T) {
	assert.Equal(t, MimePDF, DetectMime([]byte("%PDF-1.7\n...")))
	assert.Equal(t, MimeDOCX, DetectMime([]byte("PK\x03\x04rest")))
	assert.Equal(t, "", DetectMime([]byte("hello")))
	assert.Equal(t, "", DetectMime(nil))
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText("text/plain; charset=utf-8", []byte("Jane Doe\r\n\r\n\r\n  Go   developer \n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractTextWhitespaceOnlyIsNotAnError(t *testing.T) {
	text, err := ExtractText(MimeText, []byte(" \n\t \n"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractUnreadableDocument(t *testing.T) {
	tests := map[string]struct {
		mime string
		data []byte
	}{
		"unknown bytes":   {data: []byte{0x00, 0x01, 0x02, 0xff}},
		"broken pdf":      {data: []byte("%PDF-1.4\nthis is not really a pdf")},
		"broken docx":     {data: []byte("PK\x03\x04garbage")},
		"unsupported mime": {mime: "image/png", data: []byte("\x89PNG")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractText(tt.mime, tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExtraction)
		})
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract([]byte("plain words"))
	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>R&amp;D</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "Jane Doe\nGo R&D", normalizeWhitespace(docxXMLToText(xml)))
}

func TestExtractPDF(t *testing.T) {
	data, err := os.ReadFile("testdata/resume.pdf")
	require.NoError(t, err)

	text, err := Extract(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Senior Go Developer")
}

func TestExtractDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Senior Go Developer</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	text, err := Extract(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Go Developer", text)
}

func TestJoinPagesSkipsUnreadablePages(t *testing.T) {
	pages := map[int]string{1: "Jane Doe", 3: "Go Developer"}
	text, err := joinPages(3, func(i int) (string, error) {
		if i == 2 {
			return "", errors.New("broken content stream")
		}
		return pages[i], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo Developer", normalizeWhitespace(text))
}

func TestJoinPagesFailsWhenNoPageIsReadable(t *testing.T) {
	_, err := joinPages(2, func(int) (string, error) {
		return "", errors.New("broken content stream")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")

	text, err := joinPages(0, nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}
