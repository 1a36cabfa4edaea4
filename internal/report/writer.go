package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/skill-matrix/internal/skills"
)

const (
	CandidatesFile = "candidate_skills.csv"
	MatrixFile     = "candidate_skill_matrix.xlsx"
	ChartFile      = "skill_distribution.png"
)

// Writer persists every report of a run into Dir.
type Writer struct {
	Dir    string
	TopK   int
	Logger *zap.Logger
	// Out receives the text distribution. Nil disables it.
	Out io.Writer
}

// Outputs lists the files produced by Write.
type Outputs struct {
	Candidates string
	Matrix     string
	Chart      string
}

func (w *Writer) path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Write produces the CSV, the matrix workbook, the chart and the text
// distribution. The chart is skipped when no skill was detected.
func (w *Writer) Write(candidates []skills.Candidate, report *skills.Report) (*Outputs, error) {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	out := &Outputs{}

	out.Candidates = w.path(CandidatesFile)
	if err := writeFile(out.Candidates, func(f io.Writer) error {
		return WriteCandidatesCSV(f, candidates)
	}); err != nil {
		return nil, fmt.Errorf("writing candidates csv: %w", err)
	}
	log.Info("candidates saved", zap.String("path", out.Candidates))

	out.Matrix = w.path(MatrixFile)
	if err := SaveMatrix(out.Matrix, report.Matrix); err != nil {
		return nil, fmt.Errorf("writing skill matrix: %w", err)
	}
	log.Info("skill matrix saved", zap.String("path", out.Matrix))

	k := w.TopK
	if k <= 0 {
		k = skills.DefaultTopK
	}
	top := report.Ranking.Top(k)

	chartPath := w.path(ChartFile)
	err := writeFile(chartPath, func(f io.Writer) error {
		return RenderChart(f, top, ChartTitle(k))
	})
	switch {
	case errors.Is(err, ErrEmptyRanking):
		os.Remove(chartPath)
		log.Warn("no skills detected, chart skipped")
	case err != nil:
		return nil, fmt.Errorf("writing chart: %w", err)
	default:
		out.Chart = chartPath
		log.Info("chart saved", zap.String("path", out.Chart))
	}

	if w.Out != nil {
		if err := WriteDistribution(w.Out, top); err != nil {
			return nil, fmt.Errorf("writing distribution: %w", err)
		}
	}

	return out, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
