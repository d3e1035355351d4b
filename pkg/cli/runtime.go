package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/cli/config"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/scoring"
	"github.com/mindcorps/psyrisk/pkg/usecase"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
	"github.com/mindcorps/psyrisk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// runtime is the set of resources a command builds from its flags
type runtime struct {
	repo    interfaces.Repository
	uc      *usecase.UseCases
	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// newRuntime loads the catalog, opens the repository and builds the use cases.
// The caller must call Close on the result.
func newRuntime(ctx context.Context, catalogCfg *config.Catalog, repoCfg *config.Repository, opts ...usecase.Option) (*runtime, error) {
	catalog, policy, err := catalogCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load factor catalog")
	}

	engine, err := scoring.NewEngine(catalog, policy)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scoring engine")
	}
	logging.Default().Info("Scoring engine ready",
		"catalog", catalogCfg,
		"baseline_severity", policy.BaselineSeverity,
		"critical_probability", policy.CriticalProbability,
	)

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}

	rt := &runtime{
		repo: repo,
		uc:   usecase.New(repo, engine, opts...),
	}
	rt.closers = append(rt.closers, func() { safe.Close(ctx, repo) })
	return rt, nil
}

// outputFlag is the common --output flag of commands printing results
func outputFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "Output file path ('-' for stdout)",
		Value:       "-",
		Destination: dst,
	}
}

// openOutput returns the writer for an --output value and whether it is a
// terminal stream that may be colorized
func openOutput(path string) (io.Writer, func(), bool, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, true, nil
	}

	// #nosec G304 - path is provided by CLI flag
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, false, goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	return f, func() { safe.Close(context.Background(), f, "path", path) }, false, nil
}
