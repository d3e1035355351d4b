package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// Aggregate counts factors per severity level and per risk level
func Aggregate(factors []model.FactorAnalysis) (model.SeverityStats, model.RiskStats, error) {
	var (
		sev  model.SeverityStats
		risk model.RiskStats
	)

	if len(factors) == 0 {
		return sev, risk, goerr.Wrap(ErrNoFactors, "cannot aggregate empty sector")
	}

	for _, f := range factors {
		switch f.SeverityLevel {
		case types.SeverityLow:
			sev.Low++
		case types.SeverityMedium:
			sev.Medium++
		case types.SeverityHigh:
			sev.High++
		default:
			return sev, risk, goerr.Wrap(ErrInvalidLevel, "unknown severity level",
				goerr.V("factor_id", f.Factor.ID), goerr.V("level", f.SeverityLevel))
		}

		switch f.RiskLevel {
		case types.RiskLow:
			risk.Low++
		case types.RiskMedium:
			risk.Medium++
		case types.RiskHigh:
			risk.High++
		case types.RiskCritical:
			risk.Critical++
		default:
			return sev, risk, goerr.Wrap(ErrInvalidLevel, "unknown risk level",
				goerr.V("factor_id", f.Factor.ID), goerr.V("level", f.RiskLevel))
		}
	}

	return sev, risk, nil
}
