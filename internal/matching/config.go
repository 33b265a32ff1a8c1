package matching

import (
	"errors"
	"fmt"
	"math"
)

// DefaultThreshold is the minimum score for a team to qualify as a match.
const DefaultThreshold = 60

// ErrInvalidConfig marks configuration problems that invalidate every
// downstream score. Runs must not start with an invalid configuration.
var ErrInvalidConfig = errors.New("invalid matching configuration")

// Weights are the sub-score weights. They must sum to 1.0.
type Weights struct {
	Skills     float64 `mapstructure:"skills" json:"skills"`
	Experience float64 `mapstructure:"experience" json:"experience"`
	Education  float64 `mapstructure:"education" json:"education"`
	OverallFit float64 `mapstructure:"overall-fit" json:"overall_fit"`
}

// Config controls the scoring engine.
type Config struct {
	Threshold      int               `mapstructure:"threshold"`
	Weights        Weights           `mapstructure:"weights"`
	SkillSynonyms  map[string]string `mapstructure:"skill-synonyms"`
	DegreeSynonyms map[string]string `mapstructure:"degree-synonyms"`
}

// DefaultConfig returns the stock 40/30/15/15 weighting with a threshold of 60.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Weights: Weights{
			Skills:     0.40,
			Experience: 0.30,
			Education:  0.15,
			OverallFit: 0.15,
		},
	}
}

const weightsSumEpsilon = 1e-9

// Validate checks the configuration before a run starts.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("%w: threshold %d is outside [0, 100]", ErrInvalidConfig, c.Threshold)
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"skills", c.Weights.Skills},
		{"experience", c.Weights.Experience},
		{"education", c.Weights.Education},
		{"overall-fit", c.Weights.OverallFit},
	}

	sum := 0.0
	for _, weight := range weights {
		if weight.value < 0 {
			return fmt.Errorf("%w: weight %s is negative", ErrInvalidConfig, weight.name)
		}
		sum += weight.value
	}

	if math.Abs(sum-1.0) > weightsSumEpsilon {
		return fmt.Errorf("%w: weights sum to %.4f, want 1.0", ErrInvalidConfig, sum)
	}

	return nil
}
