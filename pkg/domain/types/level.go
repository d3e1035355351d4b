package types

import "fmt"

// Band thresholds shared by severity and probability. Bands are closed above:
// a score equal to a threshold belongs to the higher band.
const (
	MediumThreshold = 2.0
	HighThreshold   = 3.0
)

// SeverityLevel is the discrete severity band of a factor
type SeverityLevel string

const (
	SeverityLow    SeverityLevel = "LOW"
	SeverityMedium SeverityLevel = "MEDIUM"
	SeverityHigh   SeverityLevel = "HIGH"
)

// AllSeverityLevels returns all valid severity levels in ascending order
func AllSeverityLevels() []SeverityLevel {
	return []SeverityLevel{
		SeverityLow,
		SeverityMedium,
		SeverityHigh,
	}
}

// IsValid checks if the severity level is valid
func (l SeverityLevel) IsValid() bool {
	switch l {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the level (0 for LOW). It returns -1 for
// an invalid level.
func (l SeverityLevel) Rank() int {
	switch l {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}

// String returns the string representation of the severity level
func (l SeverityLevel) String() string {
	return string(l)
}

// ParseSeverityLevel parses a string into a SeverityLevel
func ParseSeverityLevel(s string) (SeverityLevel, error) {
	level := SeverityLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid severity level: %s", s)
	}
	return level, nil
}

// ProbabilityLevel is the discrete probability band of a factor
type ProbabilityLevel string

const (
	ProbabilityLow    ProbabilityLevel = "LOW"
	ProbabilityMedium ProbabilityLevel = "MEDIUM"
	ProbabilityHigh   ProbabilityLevel = "HIGH"
)

// AllProbabilityLevels returns all valid probability levels in ascending order
func AllProbabilityLevels() []ProbabilityLevel {
	return []ProbabilityLevel{
		ProbabilityLow,
		ProbabilityMedium,
		ProbabilityHigh,
	}
}

// IsValid checks if the probability level is valid
func (l ProbabilityLevel) IsValid() bool {
	switch l {
	case ProbabilityLow, ProbabilityMedium, ProbabilityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the level (0 for LOW). It returns -1 for
// an invalid level.
func (l ProbabilityLevel) Rank() int {
	switch l {
	case ProbabilityLow:
		return 0
	case ProbabilityMedium:
		return 1
	case ProbabilityHigh:
		return 2
	default:
		return -1
	}
}

// String returns the string representation of the probability level
func (l ProbabilityLevel) String() string {
	return string(l)
}

// ParseProbabilityLevel parses a string into a ProbabilityLevel
func ParseProbabilityLevel(s string) (ProbabilityLevel, error) {
	level := ProbabilityLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid probability level: %s", s)
	}
	return level, nil
}

// RiskLevel is the composite classification of a factor
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// AllRiskLevels returns all valid risk levels in ascending order
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLow,
		RiskMedium,
		RiskHigh,
		RiskCritical,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the level (0 for LOW). It returns -1 for
// an invalid level.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}

// ProbabilitySource tells where a probability score came from
type ProbabilitySource string

const (
	// ProbabilityExternal is a score entered by the psychologist
	ProbabilityExternal ProbabilitySource = "EXTERNAL"
	// ProbabilityAutomatic is a score derived from the factor's severity
	ProbabilityAutomatic ProbabilitySource = "AUTOMATIC"
)

// IsValid checks if the probability source is valid
func (s ProbabilitySource) IsValid() bool {
	switch s {
	case ProbabilityExternal, ProbabilityAutomatic:
		return true
	default:
		return false
	}
}

// String returns the string representation of the probability source
func (s ProbabilitySource) String() string {
	return string(s)
}
