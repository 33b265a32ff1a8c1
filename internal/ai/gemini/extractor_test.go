package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestExtractCandidate(t *testing.T) {
	stub := &stubGenerator{response: `{"name": "Jane Doe", "skills": ["Go", "Python"], "experience_years": 6}`}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	record, err := extractor.ExtractCandidate(context.Background(), "jane_doe", "Jane Doe resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record["name"] != "Jane Doe" {
		t.Fatalf("unexpected name: %v", record["name"])
	}

	if stub.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}

	if !strings.Contains(stub.lastPrompt, "Jane Doe resume text") {
		t.Fatalf("expected document text to be substituted into the prompt")
	}

	if strings.Contains(stub.lastPrompt, "{{DOCUMENT_TEXT}}") {
		t.Fatalf("placeholder must be replaced in the prompt")
	}
}

func TestExtractCandidateHandlesCodeBlock(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"name\": \"Sam\"}\n```"}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	record, err := extractor.ExtractCandidate(context.Background(), "sam", "Sam resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record["name"] != "Sam" {
		t.Fatalf("unexpected name: %v", record["name"])
	}
}

func TestExtractCandidateRejectsEmptyText(t *testing.T) {
	extractor := NewExtractor(&stubGenerator{}, 0, zap.NewNop())

	if _, err := extractor.ExtractCandidate(context.Background(), "blank", "  "); err == nil {
		t.Fatalf("expected an error for empty document text")
	}
}

func TestExtractCandidatePropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	extractor := NewExtractor(&stubGenerator{err: wantErr}, 0, zap.NewNop())

	if _, err := extractor.ExtractCandidate(context.Background(), "jane", "text"); !errors.Is(err, wantErr) {
		t.Fatalf("expected the generator error, got %v", err)
	}
}

func TestExtractCandidateInvalidJSON(t *testing.T) {
	extractor := NewExtractor(&stubGenerator{response: "I could not parse this resume."}, 0, zap.NewNop())

	if _, err := extractor.ExtractCandidate(context.Background(), "jane", "text"); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestExtractTeamsArray(t *testing.T) {
	stub := &stubGenerator{response: `[
		{"required_skills": ["Go"], "min_experience_years": 3},
		{"required_skills": ["Python"], "min_experience_years": 5}
	]`}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	records, err := extractor.ExtractTeams(context.Background(), "teams_doc", "two teams described here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 team records, got %d", len(records))
	}
}

func TestExtractTeamsBareObject(t *testing.T) {
	stub := &stubGenerator{response: `{"required_skills": ["Go"]}`}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	records, err := extractor.ExtractTeams(context.Background(), "single_team", "one team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected a single team record, got %d", len(records))
	}
}

func TestExtractJSONStripping(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no language", "```\n[1, 2]\n```", `[1, 2]`},
		{"stray backticks", "`{\"a\": 1}`", `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.raw); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
