package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidAnswer      = goerr.New("invalid survey answer")
	ErrUnknownQuestion    = goerr.New("question is not part of the survey")
	ErrInvalidProbability = goerr.New("invalid probability score")
	ErrUnknownFactor      = goerr.New("factor is not part of the catalog")
	ErrMissingRequired    = goerr.New("required field is missing")
)

// Context keys for error values
const (
	QuestionKey    = "question"
	AnswerKey      = "answer"
	FactorIDKey    = "factor_id"
	ProbabilityKey = "probability"
	FieldKey       = "field"
)
