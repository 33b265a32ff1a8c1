package matching

import "strings"

// Synonyms folds skill or degree aliases onto canonical terms. Keys and
// values are compared case-insensitively; a nil map is the identity fold.
type Synonyms map[string]string

// NewSynonyms builds a normalized synonym fold from a configuration mapping.
func NewSynonyms(mapping map[string]string) Synonyms {
	if len(mapping) == 0 {
		return nil
	}

	result := make(Synonyms, len(mapping))
	for alias, canonical := range mapping {
		alias = strings.ToLower(strings.TrimSpace(alias))
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if alias == "" || canonical == "" {
			continue
		}
		result[alias] = canonical
	}

	return result
}

// Canonical returns the canonical form of the given term.
func (s Synonyms) Canonical(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if canonical, ok := s[term]; ok {
		return canonical
	}
	return term
}

// SkillScore measures how much of the required skill set the candidate
// covers, from 0 to 100. An empty requirement yields full credit: no skill
// requirement means every candidate satisfies it. Extra candidate skills
// beyond the requirement do not raise the score.
func SkillScore(candidateSkills, requiredSkills []string, synonyms Synonyms) float64 {
	required := make(map[string]bool, len(requiredSkills))
	for _, skill := range requiredSkills {
		if skill = synonyms.Canonical(skill); skill != "" {
			required[skill] = true
		}
	}

	if len(required) == 0 {
		return 100
	}

	covered := 0
	seen := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		skill = synonyms.Canonical(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		if required[skill] {
			covered++
		}
	}

	score := 100 * float64(covered) / float64(len(required))
	if score > 100 {
		score = 100
	}
	return score
}
