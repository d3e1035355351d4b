package model

import (
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// FactorAnalysis is the classified result of one factor in one sector
type FactorAnalysis struct {
	Factor            config.RiskFactor       `json:"factor"`
	SeverityScore     float64                 `json:"severity_score"`
	SeverityLevel     types.SeverityLevel     `json:"severity_level"`
	ProbabilityScore  float64                 `json:"probability_score"`
	ProbabilityLevel  types.ProbabilityLevel  `json:"probability_level"`
	ProbabilitySource types.ProbabilitySource `json:"probability_source"`
	RiskLevel         types.RiskLevel         `json:"risk_level"`
	AnswerCount       int                     `json:"answer_count"`
}

// SeverityStats counts factors per severity level
type SeverityStats struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Total returns the number of factors counted
func (s SeverityStats) Total() int {
	return s.Low + s.Medium + s.High
}

// Count returns the number of factors at level
func (s SeverityStats) Count(level types.SeverityLevel) int {
	switch level {
	case types.SeverityLow:
		return s.Low
	case types.SeverityMedium:
		return s.Medium
	case types.SeverityHigh:
		return s.High
	default:
		return 0
	}
}

// Add returns the element-wise sum of two stats
func (s SeverityStats) Add(o SeverityStats) SeverityStats {
	return SeverityStats{
		Low:    s.Low + o.Low,
		Medium: s.Medium + o.Medium,
		High:   s.High + o.High,
	}
}

// RiskStats counts factors per composite risk level
type RiskStats struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Total returns the number of factors counted
func (s RiskStats) Total() int {
	return s.Low + s.Medium + s.High + s.Critical
}

// Count returns the number of factors at level
func (s RiskStats) Count(level types.RiskLevel) int {
	switch level {
	case types.RiskLow:
		return s.Low
	case types.RiskMedium:
		return s.Medium
	case types.RiskHigh:
		return s.High
	case types.RiskCritical:
		return s.Critical
	default:
		return 0
	}
}

// Add returns the element-wise sum of two stats
func (s RiskStats) Add(o RiskStats) RiskStats {
	return RiskStats{
		Low:      s.Low + o.Low,
		Medium:   s.Medium + o.Medium,
		High:     s.High + o.High,
		Critical: s.Critical + o.Critical,
	}
}

// AnswerAnomaly records a raw value that was excluded from scoring
type AnswerAnomaly struct {
	ResponseID string         `json:"response_id,omitempty"`
	FactorID   types.FactorID `json:"factor_id"`
	Question   int            `json:"question,omitempty"`
	Value      float64        `json:"value"`
	Reason     string         `json:"reason"`
}

// SectorAnalysis is the engine output for one sector
type SectorAnalysis struct {
	SectorID         string           `json:"sector_id"`
	SectorName       string           `json:"sector_name"`
	TotalRespondents int              `json:"total_respondents"`
	JobFunctions     []string         `json:"job_functions"`
	Factors          []FactorAnalysis `json:"factors"`
	SeverityStats    SeverityStats    `json:"severity_stats"`
	RiskStats        RiskStats        `json:"risk_stats"`
	Anomalies        []AnswerAnomaly  `json:"anomalies,omitempty"`
	// LowConfidence is set when the sector had no respondents and every severity is
	// the configured baseline.
	LowConfidence bool `json:"low_confidence"`
}

// Factor returns the analysis of the given factor
func (a *SectorAnalysis) Factor(id types.FactorID) (FactorAnalysis, bool) {
	for _, f := range a.Factors {
		if f.Factor.ID == id {
			return f, true
		}
	}
	return FactorAnalysis{}, false
}

// CompanyAnalysis groups the analyses of every sector of a company
type CompanyAnalysis struct {
	CompanyID        string            `json:"company_id"`
	CompanyName      string            `json:"company_name"`
	TotalRespondents int               `json:"total_respondents"`
	Sectors          []*SectorAnalysis `json:"sectors"`
	SeverityStats    SeverityStats     `json:"severity_stats"`
	RiskStats        RiskStats         `json:"risk_stats"`
}
