package ai

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// LabelPerson marks entities that name a person.
const LabelPerson = "PERSON"

type Entity struct {
	Label string `mapstructure:"label" json:"label"`
	Text  string `mapstructure:"text" json:"text"`
}

// Recognizer finds labeled entities in resume text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// FirstPerson returns the text of the first PERSON entity, or "".
func FirstPerson(entities []Entity) string {
	for _, entity := range entities {
		if !strings.EqualFold(strings.TrimSpace(entity.Label), LabelPerson) {
			continue
		}
		if name := strings.TrimSpace(entity.Text); name != "" {
			return name
		}
	}
	return ""
}

type fallbackRecognizer struct {
	primary  Recognizer
	fallback Recognizer
	logger   *zap.Logger
}

// WithFallback asks primary first and switches to fallback when primary fails
// or finds no person.
func WithFallback(primary, fallback Recognizer, logger *zap.Logger) Recognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fallbackRecognizer{primary: primary, fallback: fallback, logger: logger}
}

func (r *fallbackRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	entities, err := r.primary.Recognize(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("entity recognition failed, using fallback", zap.Error(err))
		return r.fallback.Recognize(ctx, text)
	}

	if FirstPerson(entities) == "" {
		r.logger.Debug("no person found by primary recognizer, using fallback")
		return r.fallback.Recognize(ctx, text)
	}

	return entities, nil
}

const headingLines = 5

type headingRecognizer struct{}

// NewHeadingRecognizer returns an offline recognizer that treats the first
// line made of two to four capitalized words near the top of the text as the
// candidate name.
func NewHeadingRecognizer() Recognizer {
	return headingRecognizer{}
}

func (headingRecognizer) Recognize(_ context.Context, text string) ([]Entity, error) {
	lines := strings.Split(text, "\n")
	if len(lines) > headingLines {
		lines = lines[:headingLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if looksLikeName(line) {
			return []Entity{{Label: LabelPerson, Text: line}}, nil
		}
	}

	return nil, nil
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}

	for _, word := range words {
		runes := []rune(word)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '.' {
				return false
			}
		}
	}

	return true
}
