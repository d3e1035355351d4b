// Package scoring turns raw survey answers into classified psychosocial risk.
//
// The engine is a pure function of its inputs: it keeps no state between calls,
// performs no I/O and reads no clock, so the same snapshot always produces the
// same SectorAnalysis.
package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// Engine scores sectors against a fixed factor catalog and policy
type Engine struct {
	catalog *config.FactorCatalog
	policy  config.ScoringPolicy
}

// NewEngine creates an Engine. The catalog is already validated by
// config.NewFactorCatalog; the policy is validated here.
func NewEngine(catalog *config.FactorCatalog, policy config.ScoringPolicy) (*Engine, error) {
	if catalog == nil {
		return nil, goerr.Wrap(ErrNilCatalog, "failed to create scoring engine")
	}
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "failed to create scoring engine")
	}
	return &Engine{
		catalog: catalog,
		policy:  policy,
	}, nil
}

// Catalog returns the engine's factor catalog
func (e *Engine) Catalog() *config.FactorCatalog {
	return e.catalog
}

// Policy returns the engine's scoring policy
func (e *Engine) Policy() config.ScoringPolicy {
	return e.policy
}

// SectorInput is an immutable snapshot of everything needed to score a sector
type SectorInput struct {
	SectorID   string
	SectorName string
	Responses  []*model.SurveyResponse
	// Assessment is optional. When nil every factor uses automatic probability.
	Assessment *model.ProbabilityAssessment
}

// AnalyzeFactor scores one factor over the given responses
func (e *Engine) AnalyzeFactor(factor config.RiskFactor, responses []*model.SurveyResponse, assessment *model.ProbabilityAssessment) (model.FactorAnalysis, []model.AnswerAnomaly) {
	sev, anomalies := AggregateSeverity(e.catalog, factor, responses, e.policy.BaselineSeverity)

	prob, probAnomaly := ResolveProbability(sev.Score, assessment, factor.ID)
	if probAnomaly != nil {
		anomalies = append(anomalies, *probAnomaly)
	}

	// external scores are reported as entered so the displayed value matches the
	// one classified against the critical threshold
	probScore := prob.Score
	if prob.Source == types.ProbabilityAutomatic {
		probScore = Round2(prob.Score)
	}

	return model.FactorAnalysis{
		Factor:            factor,
		SeverityScore:     Round2(sev.Score),
		SeverityLevel:     sev.Level,
		ProbabilityScore:  probScore,
		ProbabilityLevel:  prob.Level,
		ProbabilitySource: prob.Source,
		RiskLevel:         ClassifyRisk(sev.Level, prob, e.policy.CriticalProbability),
		AnswerCount:       sev.Count,
	}, anomalies
}

// AnalyzeSector scores every catalog factor for one sector. Responses that belong
// to another sector are ignored, as is an assessment for another sector.
func (e *Engine) AnalyzeSector(input SectorInput) (*model.SectorAnalysis, error) {
	responses := make([]*model.SurveyResponse, 0, len(input.Responses))
	for _, r := range input.Responses {
		if r != nil && r.SectorID == input.SectorID {
			responses = append(responses, r)
		}
	}

	assessment := input.Assessment
	if assessment != nil && assessment.SectorID != "" && assessment.SectorID != input.SectorID {
		assessment = nil
	}

	result := &model.SectorAnalysis{
		SectorID:         input.SectorID,
		SectorName:       input.SectorName,
		TotalRespondents: len(responses),
		JobFunctions:     jobFunctions(responses),
		Factors:          make([]model.FactorAnalysis, 0, e.catalog.Len()),
		LowConfidence:    len(responses) == 0,
	}

	for _, factor := range e.catalog.Factors() {
		fa, anomalies := e.AnalyzeFactor(factor, responses, assessment)
		result.Factors = append(result.Factors, fa)
		result.Anomalies = append(result.Anomalies, anomalies...)
	}

	sev, risk, err := Aggregate(result.Factors)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate sector", goerr.V("sector_id", input.SectorID))
	}
	result.SeverityStats = sev
	result.RiskStats = risk

	return result, nil
}

// jobFunctions returns the distinct job functions in first-seen order
func jobFunctions(responses []*model.SurveyResponse) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range responses {
		if r.JobFunction == "" || seen[r.JobFunction] {
			continue
		}
		seen[r.JobFunction] = true
		out = append(out, r.JobFunction)
	}
	return out
}
