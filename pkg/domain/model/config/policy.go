package config

import "github.com/m-mizutani/goerr/v2"

const (
	// DefaultBaselineSeverity is used when a factor has no answers at all. It is a
	// minimal but nonzero score so that missing data never reads as "no risk".
	DefaultBaselineSeverity = 1.0
	// DefaultCriticalProbability is the external probability score that turns a
	// HIGH/HIGH matrix cell into CRITICAL.
	DefaultCriticalProbability = 4.0
)

// ScoringPolicy holds the tunable constants of the scoring engine
type ScoringPolicy struct {
	BaselineSeverity    float64 `json:"baseline_severity"`
	CriticalProbability float64 `json:"critical_probability"`
}

// DefaultScoringPolicy returns the policy used when no configuration overrides it
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		BaselineSeverity:    DefaultBaselineSeverity,
		CriticalProbability: DefaultCriticalProbability,
	}
}

// Validate checks if the policy constants are on the survey scale
func (p ScoringPolicy) Validate() error {
	if p.BaselineSeverity < 0 || p.BaselineSeverity > 4 {
		return goerr.Wrap(ErrInvalidPolicy, "baseline severity must be between 0 and 4",
			goerr.V("baseline_severity", p.BaselineSeverity))
	}
	if p.CriticalProbability < 1 || p.CriticalProbability > 4 {
		return goerr.Wrap(ErrInvalidPolicy, "critical probability must be between 1 and 4",
			goerr.V("critical_probability", p.CriticalProbability))
	}
	return nil
}
