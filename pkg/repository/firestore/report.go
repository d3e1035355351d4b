package firestore

import (
	"context"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type reportDocument struct {
	ID              string            `firestore:"id"`
	CompanyID       string            `firestore:"company_id"`
	SectorID        string            `firestore:"sector_id"`
	Author          string            `firestore:"author"`
	PreparedOn      string            `firestore:"prepared_on"`
	JobFunctions    []string          `firestore:"job_functions"`
	HealthHazards   string            `firestore:"health_hazards"`
	ControlMeasures string            `firestore:"control_measures"`
	Conclusion      string            `firestore:"conclusion"`
	Sources         map[string]string `firestore:"sources"`
	CreatedAt       time.Time         `firestore:"created_at"`
	UpdatedAt       time.Time         `firestore:"updated_at"`
}

func newReportDocument(r *model.DiagnosticReport) *reportDocument {
	return &reportDocument{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		SectorID:        r.SectorID,
		Author:          r.Author,
		PreparedOn:      r.PreparedOn,
		JobFunctions:    r.JobFunctions,
		HealthHazards:   r.HealthHazards,
		ControlMeasures: r.ControlMeasures,
		Conclusion:      r.Conclusion,
		Sources:         toFactorKeys(r.Sources),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (d *reportDocument) toModel() (*model.DiagnosticReport, error) {
	sources, err := fromFactorKeys(d.Sources)
	if err != nil {
		return nil, err
	}
	return &model.DiagnosticReport{
		ID:              d.ID,
		CompanyID:       d.CompanyID,
		SectorID:        d.SectorID,
		Author:          d.Author,
		PreparedOn:      d.PreparedOn,
		JobFunctions:    d.JobFunctions,
		HealthHazards:   d.HealthHazards,
		ControlMeasures: d.ControlMeasures,
		Conclusion:      d.Conclusion,
		Sources:         sources,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{
		client: client,
	}
}

func (r *reportRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, "reports"))
}

func (r *reportRepository) Put(ctx context.Context, report *model.DiagnosticReport) (*model.DiagnosticReport, error) {
	id := model.SectorDocumentID(report.CompanyID, report.SectorID)
	docRef := r.collection().Doc(id)

	var stored *model.DiagnosticReport
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ts := now()

		snap, err := tx.Get(docRef)
		switch {
		case status.Code(err) == codes.NotFound:
			stored = report.Clone()
			stored.ID = id
			stored.CreatedAt = ts

		case err != nil:
			return goerr.Wrap(err, "failed to get report")

		default:
			var doc reportDocument
			if err := snap.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to unmarshal report")
			}
			existing, err := doc.toModel()
			if err != nil {
				return goerr.Wrap(err, "failed to decode report")
			}
			existing.Merge(report)
			stored = existing
		}
		stored.UpdatedAt = ts

		return tx.Set(docRef, newReportDocument(stored))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to put report", goerr.V("id", id))
	}

	return stored, nil
}

func (r *reportRepository) Get(ctx context.Context, companyID, sectorID string) (*model.DiagnosticReport, error) {
	id := model.SectorDocumentID(companyID, sectorID)

	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	var doc reportDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", id))
	}
	report, err := doc.toModel()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode report", goerr.V("id", id))
	}
	return report, nil
}

func (r *reportRepository) ListByCompany(ctx context.Context, companyID string) ([]*model.DiagnosticReport, error) {
	iter := r.collection().Where("company_id", "==", companyID).Documents(ctx)
	defer iter.Stop()

	reports := make([]*model.DiagnosticReport, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports")
		}

		var doc reportDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", snap.Ref.ID))
		}
		report, err := doc.toModel()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode report", goerr.V("id", doc.ID))
		}
		reports = append(reports, report)
	}

	slices.SortFunc(reports, func(a, b *model.DiagnosticReport) int {
		return strings.Compare(a.SectorID, b.SectorID)
	})
	return reports, nil
}
