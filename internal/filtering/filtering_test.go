package filtering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skill-matrix/internal/resume"
)

func scanDir(t *testing.T, names ...string) *resume.Documents {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	docs, err := resume.Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return docs
}

func TestPDFOnly(t *testing.T) {
	docs := scanDir(t, "a.pdf", "b.PDF", "c.docx", "d")
	step := NewPDFOnly()
	if err := step.Validate(&Config{}); err != nil {
		t.Fatalf("validate: %v", err)
	}

	out, info, err := step.Apply(context.Background(), Deps{Logger: zap.NewNop()}, docs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if diff := cmp.Diff([]string{"a.pdf", "b.PDF"}, out.Names()); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Step{Initial: 4, Dropped: 2, Left: 2}, info); diff != "" {
		t.Fatalf("unexpected step (-want +got):\n%s", diff)
	}
}

func TestPDFOnlyCustomExtensions(t *testing.T) {
	docs := scanDir(t, "a.pdf", "b.txt")
	step := NewPDFOnly()
	if err := step.Validate(&Config{Extensions: []string{"TXT"}}); err != nil {
		t.Fatalf("validate: %v", err)
	}

	out, _, err := step.Apply(context.Background(), Deps{Logger: zap.NewNop()}, docs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diff := cmp.Diff([]string{"b.txt"}, out.Names()); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}

	if err := step.Validate(&Config{Extensions: []string{" "}}); err == nil {
		t.Fatalf("expected error for blank extensions")
	}
}

func TestSafePathDropsEscapingSymlink(t *testing.T) {
	outside := filepath.Join(t.TempDir(), "secret.pdf")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	docs := scanDir(t, "a.pdf")
	if err := os.Symlink(outside, filepath.Join(docs.Dir, "link.pdf")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	docs, err := resume.Scan(docs.Dir)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	step := NewSafePath()
	out, info, err := step.Apply(context.Background(), Deps{Logger: zap.New(core)}, docs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if diff := cmp.Diff([]string{"a.pdf"}, out.Names()); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
	if info.Dropped != 1 {
		t.Fatalf("expected one dropped document, got %d", info.Dropped)
	}
	if logs.FilterMessage("skipping unsafe file path").Len() != 1 {
		t.Fatalf("expected unsafe path warning, got %v", logs.All())
	}
}

func TestExcludeFile(t *testing.T) {
	docs := scanDir(t, "a.pdf", "b.pdf", "c.pdf")
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded := &resume.ExcludedDocuments{Items: []*resume.ExcludedDocument{{Name: "b.pdf"}}}
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	step := NewExcludeFile()
	if err := step.Validate(&Config{ExcludeFile: path}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	out, info, err := step.Apply(context.Background(), Deps{Logger: zap.NewNop()}, docs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if diff := cmp.Diff([]string{"a.pdf", "c.pdf"}, out.Names()); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Step{Initial: 3, Dropped: 1, Left: 2}, info); diff != "" {
		t.Fatalf("unexpected step (-want +got):\n%s", diff)
	}
}

func TestExcludeFileMissingIsEmpty(t *testing.T) {
	docs := scanDir(t, "a.pdf")
	step := NewExcludeFile()
	if err := step.Validate(&Config{ExcludeFile: filepath.Join(t.TempDir(), "none.json")}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	out, _, err := step.Apply(context.Background(), Deps{Logger: zap.NewNop()}, docs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected document to be kept, got %d", out.Len())
	}
}

func TestChainLogsStepsAndSkipsDisabled(t *testing.T) {
	docs := scanDir(t, "a.pdf", "b.txt")

	core, logs := observer.New(zapcore.InfoLevel)
	chain := New(&Config{}, zap.New(core))
	chain.Disable("safe_path", "testing")

	out, err := chain.Run(context.Background(), docs)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff([]string{"a.pdf"}, out.Names()); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
	if got := logs.FilterMessage("filter step").Len(); got != 2 {
		t.Fatalf("expected 2 step logs, got %d", got)
	}
	if got := logs.FilterMessage("filter disabled").Len(); got != 1 {
		t.Fatalf("expected 1 disabled log, got %d", got)
	}

	want := map[string]Step{
		"pdf_only":     {Initial: 2, Dropped: 1, Left: 1},
		"exclude_file": {Initial: 1, Dropped: 0, Left: 1},
	}
	if diff := cmp.Diff(want, chain.Steps()); diff != "" {
		t.Fatalf("unexpected steps (-want +got):\n%s", diff)
	}

	statuses := chain.Describe()
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[1].Enabled || statuses[1].Reason != "testing" {
		t.Fatalf("unexpected safe_path status: %+v", statuses[1])
	}
}

func TestChainValidatesBeforeApplying(t *testing.T) {
	docs := scanDir(t, "a.pdf")

	_, err := New(&Config{Extensions: []string{" "}}, nil).Run(context.Background(), docs)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if docs.Len() != 1 {
		t.Fatalf("documents must be untouched on validation error, got %d", docs.Len())
	}
}

func TestChainStopsOnCancelledContext(t *testing.T) {
	docs := scanDir(t, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil).Run(ctx, docs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
