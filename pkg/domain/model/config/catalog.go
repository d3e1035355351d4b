package config

import (
	"slices"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

const (
	// FactorCount is the number of factors every catalog defines
	FactorCount = 9
	// QuestionsPerFactor is the size of each factor's question block
	QuestionsPerFactor = 10
)

// RiskFactor is one thematic risk category owning a contiguous block of questions
type RiskFactor struct {
	ID            types.FactorID  `json:"id"`
	Key           types.FactorKey `json:"key"`
	Label         string          `json:"label"`
	StartQuestion int             `json:"start_question"`
	EndQuestion   int             `json:"end_question"`
}

// Contains reports whether question belongs to the factor's range
func (f RiskFactor) Contains(question int) bool {
	return question >= f.StartQuestion && question <= f.EndQuestion
}

// Validate checks the factor in isolation
func (f RiskFactor) Validate() error {
	if err := f.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidFactor, err.Error(), goerr.V(FactorIDKey, f.ID))
	}
	if err := f.Key.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidFactor, err.Error(), goerr.V(FactorIDKey, f.ID))
	}
	if f.Label == "" {
		return goerr.Wrap(ErrInvalidFactor, "factor label is required", goerr.V(FactorIDKey, f.ID))
	}
	if f.StartQuestion < 1 {
		return goerr.Wrap(ErrInvalidFactor, "start question must be positive",
			goerr.V(FactorIDKey, f.ID), goerr.V(QuestionKey, f.StartQuestion))
	}
	if f.EndQuestion-f.StartQuestion+1 != QuestionsPerFactor {
		return goerr.Wrap(ErrFactorSpan, "invalid question range",
			goerr.V(FactorIDKey, f.ID),
			goerr.V("start", f.StartQuestion),
			goerr.V("end", f.EndQuestion))
	}
	return nil
}

// FactorCatalog is the immutable set of risk factors plus the questions whose
// answer polarity is reversed. Build it with NewFactorCatalog.
type FactorCatalog struct {
	factors  []RiskFactor
	byID     map[types.FactorID]int
	inverted map[int]struct{}
}

// NewFactorCatalog validates factors and inverted questions and returns the catalog.
// Factors are kept in ascending question order.
func NewFactorCatalog(factors []RiskFactor, inverted []int) (*FactorCatalog, error) {
	if len(factors) != FactorCount {
		return nil, goerr.Wrap(ErrFactorCount, "unexpected number of factors", goerr.V("count", len(factors)))
	}

	sorted := slices.Clone(factors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartQuestion < sorted[j].StartQuestion
	})

	c := &FactorCatalog{
		factors:  sorted,
		byID:     make(map[types.FactorID]int, len(sorted)),
		inverted: make(map[int]struct{}, len(inverted)),
	}

	keys := make(map[types.FactorKey]bool, len(sorted))
	for i, f := range sorted {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byID[f.ID]; ok {
			return nil, goerr.Wrap(ErrDuplicateFactorID, "factor ID registered twice", goerr.V(FactorIDKey, f.ID))
		}
		if keys[f.Key] {
			return nil, goerr.Wrap(ErrDuplicateFactorKey, "factor key registered twice", goerr.V(FactorKeyKey, f.Key))
		}
		if i > 0 {
			prev := sorted[i-1]
			switch {
			case f.StartQuestion <= prev.EndQuestion:
				return nil, goerr.Wrap(ErrFactorOverlap, "factor ranges overlap",
					goerr.V(FactorIDKey, f.ID), goerr.V("previous", prev.ID))
			case f.StartQuestion != prev.EndQuestion+1:
				return nil, goerr.Wrap(ErrFactorGap, "gap between factor ranges",
					goerr.V(FactorIDKey, f.ID), goerr.V("previous", prev.ID))
			}
		}
		c.byID[f.ID] = i
		keys[f.Key] = true
	}

	first, last := c.Questions()
	for _, q := range inverted {
		if q < first || q > last {
			return nil, goerr.Wrap(ErrInvertedOutOfRange, "inverted question not covered by any factor",
				goerr.V(QuestionKey, q))
		}
		c.inverted[q] = struct{}{}
	}

	return c, nil
}

// Factors returns a copy of all factors in question order
func (c *FactorCatalog) Factors() []RiskFactor {
	return slices.Clone(c.factors)
}

// Len returns the number of factors
func (c *FactorCatalog) Len() int {
	return len(c.factors)
}

// Factor returns the factor with the given ID
func (c *FactorCatalog) Factor(id types.FactorID) (RiskFactor, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return RiskFactor{}, false
	}
	return c.factors[idx], true
}

// FactorByKey resolves a factor by its key
func (c *FactorCatalog) FactorByKey(key types.FactorKey) (RiskFactor, bool) {
	for _, f := range c.factors {
		if f.Key == key {
			return f, true
		}
	}
	return RiskFactor{}, false
}

// FactorForQuestion returns the factor whose range holds question
func (c *FactorCatalog) FactorForQuestion(question int) (RiskFactor, bool) {
	for _, f := range c.factors {
		if f.Contains(question) {
			return f, true
		}
	}
	return RiskFactor{}, false
}

// IsInverted reports whether the question's polarity must be flipped
func (c *FactorCatalog) IsInverted(question int) bool {
	_, ok := c.inverted[question]
	return ok
}

// Inverted returns the inverted question numbers in ascending order
func (c *FactorCatalog) Inverted() []int {
	out := make([]int, 0, len(c.inverted))
	for q := range c.inverted {
		out = append(out, q)
	}
	sort.Ints(out)
	return out
}

// Questions returns the first and last question number covered by the catalog
func (c *FactorCatalog) Questions() (first, last int) {
	if len(c.factors) == 0 {
		return 0, 0
	}
	return c.factors[0].StartQuestion, c.factors[len(c.factors)-1].EndQuestion
}

// DefaultFactors returns the nine NR-01 psychosocial factors of the standard
// 90-question survey.
func DefaultFactors() []RiskFactor {
	return []RiskFactor{
		{ID: 1, Key: "harassment", Label: "Moral and Sexual Harassment", StartQuestion: 1, EndQuestion: 10},
		{ID: 2, Key: "workload", Label: "Excessive Workload", StartQuestion: 11, EndQuestion: 20},
		{ID: 3, Key: "recognition", Label: "Lack of Recognition and Rewards", StartQuestion: 21, EndQuestion: 30},
		{ID: 4, Key: "climate", Label: "Organizational Climate", StartQuestion: 31, EndQuestion: 40},
		{ID: 5, Key: "autonomy", Label: "Lack of Autonomy and Control over Work", StartQuestion: 41, EndQuestion: 50},
		{ID: 6, Key: "pressure", Label: "Pressure and Unrealistic Goals", StartQuestion: 51, EndQuestion: 60},
		{ID: 7, Key: "insecurity", Label: "Insecurity and Threats", StartQuestion: 61, EndQuestion: 70},
		{ID: 8, Key: "conflict", Label: "Interpersonal Conflict and Poor Communication", StartQuestion: 71, EndQuestion: 80},
		{ID: 9, Key: "work-life", Label: "Work-Life Balance", StartQuestion: 81, EndQuestion: 90},
	}
}

// DefaultCatalog returns the standard catalog with no inverted questions
func DefaultCatalog() *FactorCatalog {
	c, err := NewFactorCatalog(DefaultFactors(), nil)
	if err != nil {
		panic("default factor catalog is invalid: " + err.Error())
	}
	return c
}
