package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/skill-matrix/internal/ai"
	"github.com/spigell/skill-matrix/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Recognizer asks Gemini for the named entities of a resume.
type Recognizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	maxInput  int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	// Names sit at the top of a resume, the rest only costs tokens.
	defaultMaxInputRunes = 4000
)

func NewRecognizer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Recognizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Recognizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		maxInput:  defaultMaxInputRunes,
	}
}

func (r *Recognizer) Recognize(ctx context.Context, text string) ([]ai.Entity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if runes := []rune(text); len(runes) > r.maxInput {
		text = string(runes[:r.maxInput])
	}

	prompt := buildPrompt(text)

	r.logger.Debug("gemini entity request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.LogPreview(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini entity response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.LogPreview(raw, r.maxLogLen)),
	)

	return parseEntities(raw)
}

func buildPrompt(text string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", text)
}

func parseEntities(raw string) ([]ai.Entity, error) {
	cleaned := extractJSON(raw)

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if obj, ok := data.(map[string]any); ok {
		data = obj["entities"]
	}
	if data == nil {
		return nil, nil
	}

	var entities []ai.Entity
	if err := mapstructure.Decode(data, &entities); err != nil {
		return nil, fmt.Errorf("decode gemini entities: %w", err)
	}

	result := make([]ai.Entity, 0, len(entities))
	for _, entity := range entities {
		entity.Label = strings.ToUpper(strings.TrimSpace(entity.Label))
		entity.Text = strings.TrimSpace(entity.Text)
		if entity.Label == "" || entity.Text == "" {
			continue
		}
		result = append(result, entity)
	}

	return result, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
