package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/cli/config"
	httpctrl "github.com/mindcorps/psyrisk/pkg/controller/http"
	"github.com/mindcorps/psyrisk/pkg/service/worker"
	"github.com/mindcorps/psyrisk/pkg/usecase"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var exportInterval time.Duration
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var exportCfg config.Export
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PSYRISK_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "export-interval",
			Usage:       "Re-export every sector report at this interval (disabled when 0, requires an export destination)",
			Sources:     cli.EnvVars("PSYRISK_EXPORT_INTERVAL"),
			Destination: &exportInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, exportCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var ucOpts []usecase.Option

			exporter, closeExporter, err := exportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure exporter")
			}
			defer closeExporter()
			if exporter != nil {
				ucOpts = append(ucOpts, usecase.WithExporter(exporter))
				logging.Default().Info("Report export enabled")
			} else {
				logging.Default().Info("Export destination not configured, report export is disabled")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLM(llmClient))
				logging.Default().Info("Insight generation enabled", "gemini", geminiCfg)
			} else {
				logging.Default().Info("Gemini project not configured, insight generation is disabled")
			}

			rt, err := newRuntime(ctx, &catalogCfg, &repoCfg, ucOpts...)
			if err != nil {
				return err
			}
			defer rt.Close()

			// Start report export worker if an interval and a destination are configured
			if exportInterval > 0 {
				if exporter == nil {
					return goerr.Wrap(config.ErrInvalidConfig, "--export-interval requires --export-dir or --export-bucket")
				}
				exportWorker := worker.NewReportExportWorker(rt.uc.Company, rt.uc.Report, exportInterval)
				if err := exportWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start report export worker")
				}
				defer exportWorker.Stop()
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(rt.uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal, context cancellation or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			// Attempt graceful shutdown
			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
