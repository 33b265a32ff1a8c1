package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/profilematch/profile-match/internal/util"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt_candidate.md
var candidatePromptTemplate string

//go:embed prompt_team.md
var teamPromptTemplate string

const defaultMaxLogLength = 200

// Extractor implements ai.Extractor on top of a Gemini content generator.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ExtractCandidate extracts a single untrusted candidate record from profile text.
func (e *Extractor) ExtractCandidate(ctx context.Context, source, text string) (map[string]any, error) {
	raw, err := e.generate(ctx, candidatePromptTemplate, source, text)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &record); err != nil {
		return nil, fmt.Errorf("parse candidate extraction for %q: %w", source, err)
	}

	return record, nil
}

// ExtractTeams extracts every untrusted team record described by a job-description text.
func (e *Extractor) ExtractTeams(ctx context.Context, source, text string) ([]map[string]any, error) {
	raw, err := e.generate(ctx, teamPromptTemplate, source, text)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSON(raw)

	var records []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &records); err == nil {
		return records, nil
	}

	// Some responses come back as a bare object when the document holds a
	// single position.
	var single map[string]any
	if err := json.Unmarshal([]byte(cleaned), &single); err != nil {
		return nil, fmt.Errorf("parse team extraction for %q: %w", source, err)
	}

	return []map[string]any{single}, nil
}

func (e *Extractor) generate(ctx context.Context, template, source, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document %q has no text to extract from", source)
	}

	prompt := strings.ReplaceAll(template, "{{DOCUMENT_TEXT}}", text)

	e.logger.Debug("gemini extraction request",
		zap.String("source", source),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	e.logger.Debug("gemini extraction response",
		zap.String("source", source),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
	)

	return raw, nil
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
