package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for factor catalog and scoring policy validation
var (
	ErrFactorCount        = goerr.New("factor catalog must define exactly 9 factors")
	ErrFactorSpan         = goerr.New("factor must span exactly 10 questions")
	ErrFactorGap          = goerr.New("factor question ranges are not contiguous")
	ErrFactorOverlap      = goerr.New("factor question ranges overlap")
	ErrDuplicateFactorID  = goerr.New("duplicate factor ID")
	ErrDuplicateFactorKey = goerr.New("duplicate factor key")
	ErrInvalidFactor      = goerr.New("invalid factor")
	ErrInvertedOutOfRange = goerr.New("inverted question is outside the catalog")
	ErrInvalidPolicy      = goerr.New("invalid scoring policy")
)

// Context keys for error values
const (
	FactorIDKey  = "factor_id"
	FactorKeyKey = "factor_key"
	QuestionKey  = "question"
)
