package matching

import (
	"math"
	"strings"
	"unicode"
)

// MatchScore is the result of comparing one candidate against one team.
type MatchScore struct {
	TeamName  string    `json:"team_name"`
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown carries the unweighted sub-scores, each in [0, 100].
type Breakdown struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	OverallFit float64 `json:"overall_fit"`
}

// Engine computes deterministic match scores. It is a pure component: no
// I/O, no network, no randomness. A single Engine is safe for concurrent use.
type Engine struct {
	config    Config
	skillSyn  Synonyms
	degreeSyn Synonyms
}

// NewEngine validates the configuration and builds a scoring engine.
// Configuration errors are fatal to the run: no score computed with an
// invalid weighting is meaningful.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	degree := make(map[string]string, len(defaultDegreeSynonyms)+len(config.DegreeSynonyms))
	for alias, canonical := range defaultDegreeSynonyms {
		degree[alias] = canonical
	}
	for alias, canonical := range config.DegreeSynonyms {
		degree[alias] = canonical
	}

	return &Engine{
		config:    config,
		skillSyn:  NewSynonyms(config.SkillSynonyms),
		degreeSyn: NewSynonyms(degree),
	}, nil
}

// Threshold returns the minimum qualifying score.
func (e *Engine) Threshold() int {
	return e.config.Threshold
}

// Score compares a candidate against a team and produces a weighted 0-100
// match score.
func (e *Engine) Score(candidate *CandidateRecord, team *TeamRecord) MatchScore {
	breakdown := Breakdown{
		Skills:     SkillScore(candidate.Skills, team.RequiredSkills, e.skillSyn),
		Experience: experienceScore(candidate, team),
		Education:  e.educationScore(candidate, team),
		OverallFit: overallFitScore(candidate),
	}

	weighted := e.config.Weights.Skills*breakdown.Skills +
		e.config.Weights.Experience*breakdown.Experience +
		e.config.Weights.Education*breakdown.Education +
		e.config.Weights.OverallFit*breakdown.OverallFit

	score := int(math.Round(weighted))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return MatchScore{
		TeamName:  team.Name,
		Score:     score,
		Breakdown: breakdown,
	}
}

// experienceScore gives proportional credit up to the team's minimum.
// Meeting or exceeding the requirement yields full credit; a negative
// minimum is treated as no requirement.
func experienceScore(candidate *CandidateRecord, team *TeamRecord) float64 {
	if team.MinExperienceYears <= 0 {
		return 100
	}

	if !candidate.ExperienceKnown || candidate.ExperienceYears <= 0 {
		return 0
	}

	ratio := candidate.ExperienceYears / team.MinExperienceYears
	if ratio > 1 {
		ratio = 1
	}
	return 100 * ratio
}

// defaultDegreeSynonyms folds common degree spellings onto their level.
// Config-supplied degree synonyms extend and override these.
var defaultDegreeSynonyms = map[string]string{
	"bs":            "bachelor",
	"bsc":           "bachelor",
	"ba":            "bachelor",
	"beng":          "bachelor",
	"btech":         "bachelor",
	"bachelors":     "bachelor",
	"undergraduate": "bachelor",
	"ms":            "master",
	"msc":           "master",
	"ma":            "master",
	"meng":          "master",
	"mba":           "master",
	"mtech":         "master",
	"masters":       "master",
	"dphil":         "phd",
	"doctorate":     "phd",
	"doctoral":      "phd",
}

func (e *Engine) educationScore(candidate *CandidateRecord, team *TeamRecord) float64 {
	if strings.TrimSpace(team.RequiredEducation) == "" {
		return 100
	}

	if strings.TrimSpace(candidate.Education) == "" {
		return 0
	}

	requiredLevels := e.degreeLevels(team.RequiredEducation)
	if len(requiredLevels) == 0 {
		// Requirement names no recognizable degree level; fall back to a
		// direct phrase match.
		if strings.Contains(
			strings.ToLower(candidate.Education),
			strings.ToLower(strings.TrimSpace(team.RequiredEducation)),
		) {
			return 100
		}
		return 50
	}

	for level := range e.degreeLevels(candidate.Education) {
		if requiredLevels[level] {
			return 100
		}
	}

	// Partial credit for having some stated education.
	return 50
}

// degreeLevels extracts the set of degree levels a free-text education
// string mentions. Dots are stripped before tokenizing so "B.S." and "BS"
// fold to the same token.
func (e *Engine) degreeLevels(text string) map[string]bool {
	text = strings.ToLower(strings.ReplaceAll(text, ".", ""))

	levels := make(map[string]bool)
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		switch canonical := e.degreeSyn.Canonical(token); canonical {
		case "bachelor", "master", "phd":
			levels[canonical] = true
		}
	}

	return levels
}

// overallFitScore is the proportion of optional profile fields the candidate
// actually populated. It is a deterministic completeness heuristic with no
// external inputs.
func overallFitScore(candidate *CandidateRecord) float64 {
	checks := []bool{
		candidate.Email != "",
		candidate.Phone != "",
		candidate.LinkedIn != "",
		candidate.Education != "",
		candidate.ExperienceKnown,
		len(candidate.Skills) > 0,
	}

	populated := 0
	for _, present := range checks {
		if present {
			populated++
		}
	}

	return 100 * float64(populated) / float64(len(checks))
}
