package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/cli/config"
	"github.com/mindcorps/psyrisk/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var companyID string
	var sectorID string
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var exportCfg config.Export

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "company",
			Aliases:     []string{"c"},
			Usage:       "Company ID to export",
			Required:    true,
			Destination: &companyID,
		},
		&cli.StringFlag{
			Name:        "sector",
			Aliases:     []string{"s"},
			Usage:       "Sector ID (every sector of the company when empty)",
			Destination: &sectorID,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, exportCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export sector report documents as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			exporter, closeExporter, err := exportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure exporter")
			}
			defer closeExporter()
			if exporter == nil {
				return goerr.Wrap(usecase.ErrExporterNotConfigured, "--export-dir or --export-bucket is required")
			}

			rt, err := newRuntime(ctx, &catalogCfg, &repoCfg, usecase.WithExporter(exporter))
			if err != nil {
				return err
			}
			defer rt.Close()

			sectorIDs := []string{sectorID}
			if sectorID == "" {
				company, err := rt.uc.Company.GetCompany(ctx, companyID)
				if err != nil {
					return err
				}
				sectorIDs = sectorIDs[:0]
				for _, s := range company.Sectors {
					sectorIDs = append(sectorIDs, s.ID)
				}
			}

			for _, id := range sectorIDs {
				location, err := rt.uc.Report.Export(ctx, companyID, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.Root().Writer, location)
			}
			return nil
		},
	}
}
