package pdftext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "collapses blanks", input: "Jane\t\t Doe  Go", expect: "Jane Doe Go"},
		{name: "collapses newlines", input: "\n\nJane\n\n\nDoe\n", expect: "Jane\nDoe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeWhitespace(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestReaderRejectsNonPDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := NewReader().ExtractText(path); err == nil {
		t.Fatalf("expected error for invalid pdf")
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	s := &Static{Texts: map[string]string{"a.pdf": "hello"}}
	if got, err := s.ExtractText("a.pdf"); err != nil || got != "hello" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	if _, err := s.ExtractText("b.pdf"); err == nil {
		t.Fatalf("expected error for unknown path")
	}

	boom := errors.New("boom")
	s.Err = boom
	if _, err := s.ExtractText("a.pdf"); !errors.Is(err, boom) {
		t.Fatalf("expected configured error, got %v", err)
	}
}
