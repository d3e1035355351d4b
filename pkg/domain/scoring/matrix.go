package scoring

import (
	"fmt"

	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// riskMatrix is indexed by [severity rank][probability rank]
var riskMatrix = [3][3]types.RiskLevel{
	//               prob LOW        prob MEDIUM       prob HIGH
	/* sev LOW    */ {types.RiskLow, types.RiskMedium, types.RiskMedium},
	/* sev MEDIUM */ {types.RiskMedium, types.RiskMedium, types.RiskHigh},
	/* sev HIGH   */ {types.RiskMedium, types.RiskHigh, types.RiskHigh},
}

// Matrix looks up the composite risk of a severity and probability band. Both
// levels must be valid; an invalid level is a programming error and panics.
func Matrix(severity types.SeverityLevel, probability types.ProbabilityLevel) types.RiskLevel {
	s, p := severity.Rank(), probability.Rank()
	if s < 0 || p < 0 {
		panic(fmt.Sprintf("risk matrix has no cell for severity %q and probability %q", severity, probability))
	}
	return riskMatrix[s][p]
}

// ClassifyRisk applies the matrix and the CRITICAL rule: a HIGH severity combined
// with a psychologist-entered probability of at least criticalProbability is
// CRITICAL. Automatically derived probabilities never produce CRITICAL.
func ClassifyRisk(severity types.SeverityLevel, probability Probability, criticalProbability float64) types.RiskLevel {
	if severity == types.SeverityHigh &&
		probability.Source == types.ProbabilityExternal &&
		probability.Score >= criticalProbability {
		return types.RiskCritical
	}
	return Matrix(severity, probability.Level)
}
