package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/cli/config"
	"github.com/mindcorps/psyrisk/pkg/domain/scoring"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdCatalog() *cli.Command {
	var format string
	var output string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       formatFlagUsage(),
			Value:       formatTable,
			Destination: &format,
		},
		outputFlag(&output),
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "catalog",
		Usage: "Validate and print the factor catalog and scoring policy",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			catalog, policy, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}
			if _, err := scoring.NewEngine(catalog, policy); err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}
			logging.Default().Info("Catalog validation passed", "catalog", catalogCfg, "factors", catalog.Len())

			w, closeOutput, colorize, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOutput()

			r := &renderer{w: w, format: format, colorize: colorize}
			return r.Catalog(catalog, policy)
		},
	}
}
