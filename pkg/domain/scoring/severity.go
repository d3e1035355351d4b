package scoring

import (
	"errors"
	"math"

	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// Severity is the sector-wide severity of one factor
type Severity struct {
	// Score is the unrounded mean used for classification
	Score float64
	Level types.SeverityLevel
	// Count is the number of answers that contributed to Score
	Count int
}

// ClassifySeverity maps a severity score to its band. Bands are closed above, so
// exactly 2.0 is MEDIUM and exactly 3.0 is HIGH.
func ClassifySeverity(score float64) types.SeverityLevel {
	switch {
	case score >= types.HighThreshold:
		return types.SeverityHigh
	case score >= types.MediumThreshold:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}

// AggregateSeverity averages the normalized answers of factor across all
// responses. With no usable answer the score falls back to baseline. Out-of-range
// answers are skipped and returned as anomalies, in response then question order.
func AggregateSeverity(catalog *config.FactorCatalog, factor config.RiskFactor, responses []*model.SurveyResponse, baseline float64) (Severity, []model.AnswerAnomaly) {
	var (
		sum       int
		count     int
		anomalies []model.AnswerAnomaly
	)

	for _, r := range responses {
		for q := factor.StartQuestion; q <= factor.EndQuestion; q++ {
			v, ok, err := Normalize(catalog, r, q)
			if err != nil {
				if errors.Is(err, ErrAnswerOutOfRange) {
					anomalies = append(anomalies, model.AnswerAnomaly{
						ResponseID: r.ID,
						FactorID:   factor.ID,
						Question:   q,
						Value:      float64(r.Answers[q]),
						Reason:     ReasonAnswerOutOfRange,
					})
				}
				continue
			}
			if !ok {
				continue
			}
			sum += v
			count++
		}
	}

	score := baseline
	if count > 0 {
		score = float64(sum) / float64(count)
	}

	return Severity{
		Score: score,
		Level: ClassifySeverity(score),
		Count: count,
	}, anomalies
}

// Round2 rounds a score to two decimal places for display
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
