package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var companyID string
	var sectorID string
	var format string
	var output string
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "company",
			Aliases:     []string{"c"},
			Usage:       "Company ID to analyze",
			Required:    true,
			Destination: &companyID,
		},
		&cli.StringFlag{
			Name:        "sector",
			Aliases:     []string{"s"},
			Usage:       "Sector ID (all sectors of the company when empty)",
			Destination: &sectorID,
		},
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
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Score and classify the psychosocial risk factors of a company or sector",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			rt, err := newRuntime(ctx, &catalogCfg, &repoCfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			w, closeOutput, colorize, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOutput()
			r := &renderer{w: w, format: format, colorize: colorize}

			if sectorID != "" {
				analysis, err := rt.uc.Analysis.AnalyzeSector(ctx, companyID, sectorID)
				if err != nil {
					return goerr.Wrap(err, "failed to analyze sector")
				}
				return r.Sector(analysis)
			}

			analysis, err := rt.uc.Analysis.AnalyzeCompany(ctx, companyID)
			if err != nil {
				return goerr.Wrap(err, "failed to analyze company")
			}
			return r.Company(analysis)
		},
	}
}
