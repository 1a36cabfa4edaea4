// Package pdftext extracts plain text from PDF files.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor returns the text of the document at path. Documents without a text
// layer yield an empty string and no error.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// Reader implements Extractor on top of github.com/ledongthuc/pdf.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) ExtractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer file.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read text of %q: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy text of %q: %w", path, err)
	}

	return NormalizeWhitespace(buf.String()), nil
}

var (
	spacesRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlinesRe = regexp.MustCompile(`\n+`)
)

// NormalizeWhitespace collapses runs of blanks and blank lines.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spacesRe.ReplaceAllString(s, " ")
	s = newlinesRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// Static serves fixed texts keyed by path. It is used when the text has
// already been extracted, and in tests.
type Static struct {
	Texts map[string]string
	Err   error
}

func (s *Static) ExtractText(path string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	text, ok := s.Texts[path]
	if !ok {
		return "", fmt.Errorf("no text for %q", path)
	}
	return text, nil
}
