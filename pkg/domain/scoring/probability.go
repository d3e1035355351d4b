package scoring

import (
	"math"

	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// Probability is the resolved probability of one factor
type Probability struct {
	Score  float64
	Level  types.ProbabilityLevel
	Source types.ProbabilitySource
}

// ClassifyProbability maps a probability score to its band using the same closed
// above thresholds as severity
func ClassifyProbability(score float64) types.ProbabilityLevel {
	switch {
	case score >= types.HighThreshold:
		return types.ProbabilityHigh
	case score >= types.MediumThreshold:
		return types.ProbabilityMedium
	default:
		return types.ProbabilityLow
	}
}

// AutomaticProbability derives a probability score from severity when no human
// assessment exists:
//
//	severity < 1        -> 1
//	1 <= severity < 3   -> severity
//	severity >= 3       -> 4
//
// The result always falls in the same band as the severity it came from.
func AutomaticProbability(severity float64) float64 {
	switch {
	case severity >= types.HighThreshold:
		return 4
	case severity >= 1:
		return severity
	default:
		return 1
	}
}

// ResolveProbability picks the psychologist's score for factor when the assessment
// has a valid one, and derives it from severity otherwise. An out-of-range
// external score is ignored and reported as an anomaly.
func ResolveProbability(severity float64, assessment *model.ProbabilityAssessment, factor types.FactorID) (Probability, *model.AnswerAnomaly) {
	var anomaly *model.AnswerAnomaly

	if assessment != nil {
		if score, ok := assessment.Scores[factor]; ok {
			if model.ValidProbability(score) {
				return Probability{
					Score:  score,
					Level:  ClassifyProbability(score),
					Source: types.ProbabilityExternal,
				}, nil
			}
			anomaly = &model.AnswerAnomaly{
				FactorID: factor,
				Value:    score,
				Reason:   ReasonProbabilityOutOfRange,
			}
			// NaN and infinities cannot be encoded as JSON numbers
			if math.IsNaN(score) || math.IsInf(score, 0) {
				anomaly.Value = 0
				anomaly.Reason = ReasonProbabilityNotFinite
			}
		}
	}

	score := AutomaticProbability(severity)
	return Probability{
		Score:  score,
		Level:  ClassifyProbability(score),
		Source: types.ProbabilityAutomatic,
	}, anomaly
}
