package matching

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// UnknownName is the sentinel used when a candidate's name cannot be extracted.
const UnknownName = "Unknown"

// ValidationError reports raw extracted fields that are structurally invalid.
// Callers exclude the offending record from the run and continue.
type ValidationError struct {
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid record: %s", e.Reason)
	}
	return fmt.Sprintf("invalid record from %q: %s", e.Source, e.Reason)
}

// CandidateRecord is a validated, immutable candidate profile. Optional
// fields are empty strings when absent; Skills is a canonical lowercase set.
type CandidateRecord struct {
	Name            string   `json:"name"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	LinkedIn        string   `json:"linkedin,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years,omitempty"`
	ExperienceKnown bool     `json:"-"`
	Education       string   `json:"education,omitempty"`
}

// TeamRecord is a validated, immutable hiring requirement. Name comes from
// the source document's identity, never from document content.
type TeamRecord struct {
	Name               string   `json:"team_name"`
	RequiredSkills     []string `json:"required_skills"`
	MinExperienceYears float64  `json:"min_experience_years"`
	RequiredEducation  string   `json:"required_education,omitempty"`
}

// rawCandidate is the loosely typed shape extraction produces. Scalar fields
// decode weakly; skills and experience need stricter rules than weak typing
// gives and are coerced by hand.
type rawCandidate struct {
	Name            string `mapstructure:"name"`
	Email           string `mapstructure:"email"`
	Phone           string `mapstructure:"phone"`
	LinkedIn        string `mapstructure:"linkedin"`
	Education       string `mapstructure:"education"`
	Skills          any    `mapstructure:"skills"`
	ExperienceYears any    `mapstructure:"experience_years"`
}

type rawTeam struct {
	RequiredEducation  string `mapstructure:"required_education"`
	RequiredSkills     any    `mapstructure:"required_skills"`
	MinExperienceYears any    `mapstructure:"min_experience_years"`
}

func decodeRaw(input map[string]any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// NormalizeCandidate canonicalizes raw extracted candidate fields into a
// strict record. It fails when raw is not a mapping or a scalar field holds a
// structurally unusable value; everything else is coerced best-effort with
// sentinel defaults.
func NormalizeCandidate(raw map[string]any, source string) (*CandidateRecord, error) {
	if raw == nil {
		return nil, &ValidationError{Source: source, Reason: "extraction did not produce a mapping"}
	}

	var fields rawCandidate
	if err := decodeRaw(raw, &fields); err != nil {
		return nil, &ValidationError{Source: source, Reason: err.Error()}
	}

	name := strings.TrimSpace(fields.Name)
	if name == "" {
		name = UnknownName
	}

	years, known := coerceYears(fields.ExperienceYears)

	return &CandidateRecord{
		Name:            name,
		Email:           strings.TrimSpace(fields.Email),
		Phone:           strings.TrimSpace(fields.Phone),
		LinkedIn:        strings.TrimSpace(fields.LinkedIn),
		Skills:          normalizeSkillSet(coerceStringSlice(fields.Skills)),
		ExperienceYears: years,
		ExperienceKnown: known,
		Education:       strings.TrimSpace(fields.Education),
	}, nil
}

// NormalizeTeam canonicalizes raw extracted requirement fields. The team name
// is always the source identity so naming stays deterministic and driven by
// the filesystem layer, whatever the document content suggests.
func NormalizeTeam(raw map[string]any, sourceIdentity string) (*TeamRecord, error) {
	sourceIdentity = strings.TrimSpace(sourceIdentity)
	if sourceIdentity == "" {
		return nil, &ValidationError{Reason: "team source identity must not be empty"}
	}
	if raw == nil {
		return nil, &ValidationError{Source: sourceIdentity, Reason: "extraction did not produce a mapping"}
	}

	var fields rawTeam
	if err := decodeRaw(raw, &fields); err != nil {
		return nil, &ValidationError{Source: sourceIdentity, Reason: err.Error()}
	}

	years, known := coerceYears(fields.MinExperienceYears)
	if !known || years < 0 {
		years = 0
	}

	return &TeamRecord{
		Name:               sourceIdentity,
		RequiredSkills:     normalizeSkillSet(coerceStringSlice(fields.RequiredSkills)),
		MinExperienceYears: years,
		RequiredEducation:  strings.TrimSpace(fields.RequiredEducation),
	}, nil
}

// normalizeSkillSet lowercases and trims skills, dropping empty entries and
// case-insensitive duplicates. The result is sorted so equal sets compare equal.
func normalizeSkillSet(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	result := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		result = append(result, skill)
	}

	sort.Strings(result)
	return result
}

func valueAsString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// coerceStringSlice accepts a list of strings, a list of arbitrary values, or
// a single string. Anything else yields an empty slice.
func coerceStringSlice(v any) []string {
	switch typed := v.(type) {
	case []string:
		return typed
	case []any:
		result := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := valueAsString(item); s != "" {
				result = append(result, s)
			}
		}
		return result
	case string:
		if s := strings.TrimSpace(typed); s != "" {
			return []string{s}
		}
		return nil
	default:
		return nil
	}
}

var firstNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// coerceYears parses an experience-year count from a number or from the
// first numeric substring of a string such as "5+ years".
func coerceYears(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		match := firstNumber.FindString(typed)
		if match == "" {
			return 0, false
		}
		years, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return years, true
	default:
		return 0, false
	}
}
