package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[string]*model.DiagnosticReport
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[string]*model.DiagnosticReport),
	}
}

func (r *reportRepository) Put(ctx context.Context, report *model.DiagnosticReport) (*model.DiagnosticReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := model.SectorDocumentID(report.CompanyID, report.SectorID)
	now := time.Now().UTC()

	stored, exists := r.reports[id]
	if exists {
		stored = stored.Clone()
		stored.Merge(report)
	} else {
		stored = report.Clone()
		stored.ID = id
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.reports[id] = stored
	return stored.Clone(), nil
}

func (r *reportRepository) Get(ctx context.Context, companyID, sectorID string) (*model.DiagnosticReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[model.SectorDocumentID(companyID, sectorID)]
	if !exists {
		return nil, nil
	}
	return report.Clone(), nil
}

func (r *reportRepository) ListByCompany(ctx context.Context, companyID string) ([]*model.DiagnosticReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*model.DiagnosticReport, 0)
	for _, report := range r.reports {
		if report.CompanyID == companyID {
			reports = append(reports, report.Clone())
		}
	}
	slices.SortFunc(reports, func(a, b *model.DiagnosticReport) int {
		return strings.Compare(a.SectorID, b.SectorID)
	})
	return reports, nil
}
