package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
)

// CompanyLister lists the companies whose reports are exported
type CompanyLister interface {
	ListCompanies(ctx context.Context) ([]*model.Company, error)
}

// SectorExporter exports the report document of one sector
type SectorExporter interface {
	Export(ctx context.Context, companyID, sectorID string) (string, error)
}

// ReportExportWorker periodically re-exports every sector report so the export
// destination follows new survey responses and report edits.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type ReportExportWorker struct {
	companies CompanyLister
	exporter  SectorExporter
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   atomic.Bool
	stopOnce  sync.Once
}

// NewReportExportWorker creates a new worker exporting at the given interval
func NewReportExportWorker(companies CompanyLister, exporter SectorExporter, interval time.Duration) *ReportExportWorker {
	return &ReportExportWorker{
		companies: companies,
		exporter:  exporter,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background export loop. The first cycle runs immediately
// without blocking the caller.
func (w *ReportExportWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("export interval must be positive", goerr.V("interval", w.interval))
	}
	if !w.started.CompareAndSwap(false, true) {
		return goerr.New("report export worker already started")
	}

	logging.Default().Info("Report export worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion. Calling it again,
// or on a worker that was never started, returns immediately.
func (w *ReportExportWorker) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Report export worker stopping")
		close(w.stopCh)
		if w.started.Load() {
			<-w.doneCh
		}
		logging.Default().Info("Report export worker stopped")
	})
}

func (w *ReportExportWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if _, err := w.ExportAll(ctx); err != nil {
		logging.Default().Error("Initial report export failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.ExportAll(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Report export failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Report export worker context cancelled")
			return
		}
	}
}

// ExportAll runs a single export cycle over every sector of every company and
// returns the number of documents written. A failing sector is logged and
// skipped; the first such error is returned after the cycle completes.
func (w *ReportExportWorker) ExportAll(ctx context.Context) (int, error) {
	startTime := time.Now()

	companies, err := w.companies.ListCompanies(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list companies")
	}

	var firstErr error
	exported := 0
	for _, company := range companies {
		for _, sector := range company.Sectors {
			if _, err := w.exporter.Export(ctx, company.ID, sector.ID); err != nil {
				logging.Default().Warn("Failed to export sector report",
					"company_id", company.ID,
					"sector_id", sector.ID,
					"error", err.Error())
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			exported++
		}
	}

	logging.Default().Info("Report export completed",
		"companies", len(companies),
		"documents", exported,
		"duration", time.Since(startTime).String())

	return exported, firstErr
}
