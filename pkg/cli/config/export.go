package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/service/export"
	"github.com/urfave/cli/v3"
)

// Export holds CLI flags for the report export destination
type Export struct {
	dir    string
	bucket string
	prefix string
}

// Flags returns CLI flags for export configuration
func (e *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-dir",
			Usage:       "Local directory for exported report documents",
			Sources:     cli.EnvVars("PSYRISK_EXPORT_DIR"),
			Destination: &e.dir,
		},
		&cli.StringFlag{
			Name:        "export-bucket",
			Usage:       "Cloud Storage bucket for exported report documents",
			Sources:     cli.EnvVars("PSYRISK_EXPORT_BUCKET"),
			Destination: &e.bucket,
		},
		&cli.StringFlag{
			Name:        "export-prefix",
			Usage:       "Object name prefix inside the export bucket",
			Value:       "reports",
			Sources:     cli.EnvVars("PSYRISK_EXPORT_PREFIX"),
			Destination: &e.prefix,
		},
	}
}

// Configure returns the configured exporter, or nil when export is disabled. The
// returned function releases the exporter's resources.
func (e *Export) Configure(ctx context.Context) (interfaces.Exporter, func(), error) {
	noop := func() {}

	switch {
	case e.dir != "" && e.bucket != "":
		return nil, noop, goerr.Wrap(ErrInvalidConfig, "export-dir and export-bucket are mutually exclusive")

	case e.dir != "":
		local, err := export.NewLocal(e.dir)
		if err != nil {
			return nil, noop, err
		}
		return local, noop, nil

	case e.bucket != "":
		gcs, err := export.NewGCS(ctx, e.bucket, e.prefix)
		if err != nil {
			return nil, noop, err
		}
		return gcs, func() { _ = gcs.Close() }, nil

	default:
		return nil, noop, nil
	}
}
