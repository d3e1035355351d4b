package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	domainConfig "github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// CatalogFile is the TOML representation of the factor catalog and scoring
// policy. Omitted factors fall back to the default catalog, omitted policy
// values to the default policy.
type CatalogFile struct {
	Factors  []FactorEntry `toml:"factor"`
	Inverted []int         `toml:"inverted"`
	Policy   PolicyEntry   `toml:"policy"`
}

// FactorEntry represents one [[factor]] table
type FactorEntry struct {
	ID    int    `toml:"id"`
	Key   string `toml:"key"`
	Label string `toml:"label"`
	Start int    `toml:"start"`
	End   int    `toml:"end"`
}

// PolicyEntry represents the [policy] table
type PolicyEntry struct {
	BaselineSeverity    *float64 `toml:"baseline_severity"`
	CriticalProbability *float64 `toml:"critical_probability"`
}

// Build validates the file content and converts it to domain values
func (f *CatalogFile) Build() (*domainConfig.FactorCatalog, domainConfig.ScoringPolicy, error) {
	policy := domainConfig.DefaultScoringPolicy()
	if f.Policy.BaselineSeverity != nil {
		policy.BaselineSeverity = *f.Policy.BaselineSeverity
	}
	if f.Policy.CriticalProbability != nil {
		policy.CriticalProbability = *f.Policy.CriticalProbability
	}
	if err := policy.Validate(); err != nil {
		return nil, policy, goerr.Wrap(err, "invalid scoring policy")
	}

	factors := domainConfig.DefaultFactors()
	if len(f.Factors) > 0 {
		factors = make([]domainConfig.RiskFactor, 0, len(f.Factors))
		for _, e := range f.Factors {
			factors = append(factors, domainConfig.RiskFactor{
				ID:            types.FactorID(e.ID),
				Key:           types.FactorKey(e.Key),
				Label:         e.Label,
				StartQuestion: e.Start,
				EndQuestion:   e.End,
			})
		}
	}

	catalog, err := domainConfig.NewFactorCatalog(factors, f.Inverted)
	if err != nil {
		return nil, policy, goerr.Wrap(err, "invalid factor catalog")
	}
	return catalog, policy, nil
}

// LoadCatalogFile reads and validates a catalog TOML file
func LoadCatalogFile(path string) (*domainConfig.FactorCatalog, domainConfig.ScoringPolicy, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainConfig.ScoringPolicy{}, goerr.Wrap(ErrConfigNotFound, "catalog file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, domainConfig.ScoringPolicy{}, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, domainConfig.ScoringPolicy{}, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML catalog",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()))
	}

	catalog, policy, err := file.Build()
	if err != nil {
		return nil, policy, goerr.Wrap(err, "catalog validation failed", goerr.V(ConfigPathKey, path))
	}
	return catalog, policy, nil
}

// Catalog holds CLI flags for the factor catalog
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to a TOML factor catalog and scoring policy (built-in catalog when empty)",
			Sources:     cli.EnvVars("PSYRISK_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured catalog file path
func (c *Catalog) Path() string {
	return c.path
}

// LogValue implements slog.LogValuer
func (c Catalog) LogValue() slog.Value {
	if c.path == "" {
		return slog.StringValue("builtin")
	}
	return slog.StringValue(c.path)
}

// Configure loads the catalog file or returns the built-in catalog
func (c *Catalog) Configure() (*domainConfig.FactorCatalog, domainConfig.ScoringPolicy, error) {
	if c.path == "" {
		return domainConfig.DefaultCatalog(), domainConfig.DefaultScoringPolicy(), nil
	}
	return LoadCatalogFile(c.path)
}
