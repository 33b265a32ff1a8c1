package ai

import "context"

// Extractor turns raw document text into untrusted structured records. The
// returned mappings come straight from a language model and must be
// validated by the matching normalizer before any scoring happens.
type Extractor interface {
	// ExtractCandidate extracts a single candidate record from a profile
	// document.
	ExtractCandidate(ctx context.Context, source, text string) (map[string]any, error)
	// ExtractTeams extracts every team described by a job-description
	// document. A single document may describe several teams.
	ExtractTeams(ctx context.Context, source, text string) ([]map[string]any, error)
}
