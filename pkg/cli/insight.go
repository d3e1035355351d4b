package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/cli/config"
	"github.com/mindcorps/psyrisk/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdInsight() *cli.Command {
	var companyID string
	var sectorID string
	var language string
	var format string
	var output string
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "company",
			Aliases:     []string{"c"},
			Usage:       "Company ID",
			Required:    true,
			Destination: &companyID,
		},
		&cli.StringFlag{
			Name:        "sector",
			Aliases:     []string{"s"},
			Usage:       "Sector ID",
			Required:    true,
			Destination: &sectorID,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "Language of the generated insights (e.g. en, pt-BR)",
			Sources:     cli.EnvVars("PSYRISK_INSIGHT_LANGUAGE"),
			Destination: &language,
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
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:  "insight",
		Usage: "Generate LLM insights for a sector analysis",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}
			if llmClient == nil {
				return goerr.Wrap(usecase.ErrLLMNotConfigured, "--gemini-project is required")
			}

			rt, err := newRuntime(ctx, &catalogCfg, &repoCfg, usecase.WithLLM(llmClient))
			if err != nil {
				return err
			}
			defer rt.Close()

			insight, err := rt.uc.Insight.Generate(ctx, companyID, sectorID, language)
			if err != nil {
				return err
			}

			w, closeOutput, colorize, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOutput()

			r := &renderer{w: w, format: format, colorize: colorize}
			return r.Insight(insight)
		},
	}
}
