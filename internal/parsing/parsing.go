// Package parsing turns resume documents into candidate records.
package parsing

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skill-matrix/internal/ai"
	"github.com/spigell/skill-matrix/internal/contact"
	"github.com/spigell/skill-matrix/internal/keywords"
	"github.com/spigell/skill-matrix/internal/logger"
	"github.com/spigell/skill-matrix/internal/pdftext"
	"github.com/spigell/skill-matrix/internal/resume"
	"github.com/spigell/skill-matrix/internal/skills"
)

const DefaultConcurrency = 4

type Parser struct {
	Extractor  pdftext.Extractor
	Recognizer ai.Recognizer
	Detector   *keywords.Detector
	Logger     *zap.Logger
}

// Failure records a document that could not be parsed.
type Failure struct {
	Document *resume.Document
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Document.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Parse extracts a single candidate. A document without text still yields a
// candidate with empty fields.
func (p *Parser) Parse(ctx context.Context, doc *resume.Document) (skills.Candidate, error) {
	log := logger.WithCandidateFields(p.Logger, doc.Name, doc.Path)
	candidate := skills.Candidate{ID: doc.Name}

	text, err := p.Extractor.ExtractText(doc.Path)
	if err != nil {
		return candidate, fmt.Errorf("extracting text: %w", err)
	}
	if text == "" {
		log.Warn("no text extracted from resume")
		return candidate, nil
	}

	info := contact.Extract(text)
	candidate.Email = info.Email
	candidate.Phone = info.Phone

	if p.Recognizer != nil {
		entities, err := p.Recognizer.Recognize(ctx, text)
		if err != nil {
			return candidate, fmt.Errorf("recognizing entities: %w", err)
		}
		candidate.Name = ai.FirstPerson(entities)
	}

	if p.Detector != nil {
		candidate.Skills = p.Detector.Detect(text)
	}

	log.Debug("resume parsed",
		zap.String("name", candidate.Name),
		zap.Int("skills", len(candidate.Skills)),
	)

	return candidate, nil
}

// ParseAll parses documents with at most concurrency workers. Failed documents
// are logged and skipped; the result keeps document order.
func (p *Parser) ParseAll(ctx context.Context, docs *resume.Documents, concurrency int) (*resume.Candidates, []Failure, error) {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*skills.Candidate, docs.Len())
	errs := make([]error, docs.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidate, err := p.Parse(gctx, doc)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = &candidate
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	candidates := &resume.Candidates{}
	var failures []Failure
	for i, doc := range docs.Items {
		if errs[i] != nil {
			p.Logger.Error("skipping resume", append(logger.CandidateFields(doc.Name, doc.Path), zap.Error(errs[i]))...)
			failures = append(failures, Failure{Document: doc, Err: errs[i]})
			continue
		}
		candidates.Items = append(candidates.Items, *results[i])
	}

	p.Logger.Info("resumes parsed",
		zap.Int("parsed", candidates.Len()),
		zap.Int("failed", len(failures)),
	)

	return candidates, failures, nil
}
