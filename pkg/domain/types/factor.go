package types

import (
	"regexp"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// FactorID identifies one of the fixed psychosocial risk factors
type FactorID int

// Validate checks if the FactorID is valid
func (f FactorID) Validate() error {
	if f <= 0 {
		return goerr.New("factor ID must be positive", goerr.V("id", int(f)))
	}
	return nil
}

// String returns the string representation of FactorID
func (f FactorID) String() string {
	return strconv.Itoa(int(f))
}

// ParseFactorID parses a decimal string into a FactorID
func ParseFactorID(s string) (FactorID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(err, "factor ID must be an integer", goerr.V("id", s))
	}
	id := FactorID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

var keyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// FactorKey is the short machine name of a risk factor (e.g. "workload")
type FactorKey string

// Validate checks if the FactorKey is valid
func (k FactorKey) Validate() error {
	if k == "" {
		return goerr.New("factor key cannot be empty")
	}
	if !keyPattern.MatchString(string(k)) {
		return goerr.New("factor key must be lowercase alphanumeric with hyphens", goerr.V("key", k))
	}
	return nil
}

// String returns the string representation of FactorKey
func (k FactorKey) String() string {
	return string(k)
}
