package cli

import (
	"context"

	"github.com/mindcorps/psyrisk/pkg/cli/config"
	"github.com/mindcorps/psyrisk/pkg/utils/errutil"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	closer := func() {}
	flush := func() {}

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "psyrisk",
		Usage:   "Psychosocial risk scoring and classification for workplace surveys",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			fl, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			flush = fl

			logging.Default().Info("Starting psyrisk", "version", version, "logger", loggerCfg, "sentry", sentryCfg)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdAnalyze(),
			cmdCatalog(),
			cmdExport(),
			cmdInsight(),
		},
	}

	err := app.Run(ctx, args)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to run app")
	}
	flush()
	closer()

	return err
}
