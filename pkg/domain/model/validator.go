package model

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

const (
	// MinProbability and MaxProbability bound a psychologist's probability score
	MinProbability = 1.0
	MaxProbability = 4.0
)

// SurveyValidator validates survey inputs against the factor catalog before they
// are stored
type SurveyValidator struct {
	catalog *config.FactorCatalog
}

// NewSurveyValidator creates a new SurveyValidator with the given catalog
func NewSurveyValidator(catalog *config.FactorCatalog) *SurveyValidator {
	return &SurveyValidator{
		catalog: catalog,
	}
}

// ValidateResponse checks that a response can be stored. Every answer must belong
// to a catalog question and be on the 0..4 scale. Partially answered surveys are
// accepted.
func (v *SurveyValidator) ValidateResponse(r *SurveyResponse) error {
	if r.CompanyID == "" {
		return goerr.Wrap(ErrMissingRequired, "company ID is required", goerr.V(FieldKey, "company_id"))
	}
	if r.SectorID == "" {
		return goerr.Wrap(ErrMissingRequired, "sector ID is required", goerr.V(FieldKey, "sector_id"))
	}
	if r.JobFunction == "" {
		return goerr.Wrap(ErrMissingRequired, "job function is required", goerr.V(FieldKey, "job_function"))
	}

	// Iterate in question order so the first reported error is deterministic
	questions := make([]int, 0, len(r.Answers))
	for q := range r.Answers {
		questions = append(questions, q)
	}
	sort.Ints(questions)

	for _, q := range questions {
		if _, ok := v.catalog.FactorForQuestion(q); !ok {
			return goerr.Wrap(ErrUnknownQuestion, "answer for unknown question",
				goerr.V(QuestionKey, q))
		}
		if a := r.Answers[q]; a < MinAnswer || a > MaxAnswer {
			return goerr.Wrap(ErrInvalidAnswer, "answer must be between 0 and 4",
				goerr.V(QuestionKey, q),
				goerr.V(AnswerKey, a))
		}
	}

	return nil
}

// ValidateAssessment checks that every score refers to a catalog factor and is on
// the 1..4 scale
func (v *SurveyValidator) ValidateAssessment(p *ProbabilityAssessment) error {
	if p.CompanyID == "" {
		return goerr.Wrap(ErrMissingRequired, "company ID is required", goerr.V(FieldKey, "company_id"))
	}
	if p.SectorID == "" {
		return goerr.Wrap(ErrMissingRequired, "sector ID is required", goerr.V(FieldKey, "sector_id"))
	}

	for _, id := range FactorIDs(p.Scores) {
		score := p.Scores[id]
		if _, ok := v.catalog.Factor(id); !ok {
			return goerr.Wrap(ErrUnknownFactor, "probability for unknown factor",
				goerr.V(FactorIDKey, id))
		}
		if !ValidProbability(score) {
			return goerr.Wrap(ErrInvalidProbability, "probability must be between 1 and 4",
				goerr.V(FactorIDKey, id),
				goerr.V(ProbabilityKey, score))
		}
	}

	return nil
}

// ValidateReport checks that report text refers to catalog factors only
func (v *SurveyValidator) ValidateReport(r *DiagnosticReport) error {
	if r.CompanyID == "" {
		return goerr.Wrap(ErrMissingRequired, "company ID is required", goerr.V(FieldKey, "company_id"))
	}
	if r.SectorID == "" {
		return goerr.Wrap(ErrMissingRequired, "sector ID is required", goerr.V(FieldKey, "sector_id"))
	}
	for _, id := range FactorIDs(r.Sources) {
		if _, ok := v.catalog.Factor(id); !ok {
			return goerr.Wrap(ErrUnknownFactor, "report source for unknown factor",
				goerr.V(FactorIDKey, id))
		}
	}
	return nil
}

// ValidProbability reports whether score is on the psychologist's 1..4 scale
func ValidProbability(score float64) bool {
	return score >= MinProbability && score <= MaxProbability
}

// FactorIDs returns the keys of a score map in ascending order
func FactorIDs[V any](m map[types.FactorID]V) []types.FactorID {
	ids := make([]types.FactorID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
