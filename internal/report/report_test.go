package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skill-matrix/internal/skills"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sampleCandidates() []skills.Candidate {
	return []skills.Candidate{
		{ID: "c1.pdf", Name: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567", Skills: []string{"Azure", "Python"}},
		{ID: "c2.pdf", Skills: []string{"Azure"}},
	}
}

func sampleReport(t *testing.T) *skills.Report {
	t.Helper()
	report, err := skills.Aggregate(sampleCandidates())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	return report
}

func TestWriteCandidatesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCandidatesCSV(&buf, sampleCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	want := [][]string{
		{"Candidate", "Name", "Email", "Phone", "Skills"},
		{"c1.pdf", "Jane Doe", "jane@example.com", "555-123-4567", "Azure, Python"},
		{"c2.pdf", "", "", "", "Azure"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("unexpected csv (-want +got):\n%s", diff)
	}
}

func TestSaveMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), MatrixFile)
	if err := SaveMatrix(path, sampleReport(t).Matrix); err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(MatrixSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := [][]string{
		{"Candidate", "Azure", "Python", "TOTAL"},
		{"c1.pdf", "1", "1", "2"},
		{"c2.pdf", "1", "0", "1"},
		{"TOTAL", "2", "1", "3"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("unexpected sheet (-want +got):\n%s", diff)
	}
}

func TestSaveMatrixEmptyBatch(t *testing.T) {
	report, err := skills.Aggregate(nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteMatrix(&buf, report.Matrix); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(MatrixSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := [][]string{
		{"Candidate", "TOTAL"},
		{"TOTAL", "0"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("unexpected sheet (-want +got):\n%s", diff)
	}
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, sampleReport(t).Ranking, ChartTitle(2)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
		t.Fatalf("expected png output")
	}
}

func TestChartBarsFollowRanking(t *testing.T) {
	bars, maxValue := chartBars(sampleReport(t).Ranking)

	labels := make([]string, 0, len(bars))
	values := make([]float64, 0, len(bars))
	for _, bar := range bars {
		labels = append(labels, bar.Label)
		values = append(values, bar.Value)
	}
	if diff := cmp.Diff([]string{"Azure", "Python"}, labels); diff != "" {
		t.Fatalf("unexpected labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 1}, values); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
	if maxValue != 2 {
		t.Fatalf("expected max 2, got %v", maxValue)
	}
}

func TestRenderChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, nil, ChartTitle(20)); !errors.Is(err, ErrEmptyRanking) {
		t.Fatalf("expected ErrEmptyRanking, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written")
	}
}

func TestWriteDistribution(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDistribution(&buf, sampleReport(t).Ranking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Technology Skill Distribution:\nAzure: 2\nPython: 1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestWriterWritesAllOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	core, logs := observer.New(zapcore.InfoLevel)
	var text bytes.Buffer

	w := &Writer{Dir: dir, TopK: 1, Logger: zap.New(core), Out: &text}
	outputs, err := w.Write(sampleCandidates(), sampleReport(t))
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, path := range []string{outputs.Candidates, outputs.Matrix, outputs.Chart} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
	if got := text.String(); !strings.HasSuffix(got, "Azure: 2\n") || strings.Contains(got, "Python") {
		t.Fatalf("expected top-1 distribution, got %q", got)
	}
	if logs.FilterMessage("chart saved").Len() != 1 {
		t.Fatalf("expected chart log, got %v", logs.All())
	}
}

func TestWriterSkipsChartWithoutSkills(t *testing.T) {
	dir := t.TempDir()
	candidates := []skills.Candidate{{ID: "blank.pdf"}}
	report, err := skills.Aggregate(candidates)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	outputs, err := (&Writer{Dir: dir}).Write(candidates, report)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if outputs.Chart != "" {
		t.Fatalf("expected no chart, got %q", outputs.Chart)
	}
	if _, err := os.Stat(filepath.Join(dir, ChartFile)); !os.IsNotExist(err) {
		t.Fatalf("expected chart file to be absent, got %v", err)
	}
}
