package scoring

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the scoring engine
var (
	ErrAnswerOutOfRange = goerr.New("answer is outside the 0..4 scale")
	ErrNoFactors        = goerr.New("sector aggregation requires at least one factor")
	ErrInvalidLevel     = goerr.New("factor analysis carries an invalid level")
	ErrNilCatalog       = goerr.New("factor catalog is required")
)

// Anomaly reasons reported in model.AnswerAnomaly
const (
	ReasonAnswerOutOfRange      = "answer_out_of_range"
	ReasonProbabilityOutOfRange = "probability_out_of_range"
	ReasonProbabilityNotFinite  = "probability_not_finite"
)
