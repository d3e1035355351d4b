package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
)

// preparedOnLayout is the date format of DiagnosticReport.PreparedOn
const preparedOnLayout = "2006-01-02"

type ReportUseCase struct {
	repo      interfaces.Repository
	validator *model.SurveyValidator
	analysis  *AnalysisUseCase
	exporter  interfaces.Exporter
	clock     func() time.Time
}

func NewReportUseCase(repo interfaces.Repository, validator *model.SurveyValidator, analysis *AnalysisUseCase, exporter interfaces.Exporter, clock func() time.Time) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		validator: validator,
		analysis:  analysis,
		exporter:  exporter,
		clock:     clock,
	}
}

// Save creates the sector report or merges the given non-empty fields into it
func (uc *ReportUseCase) Save(ctx context.Context, report *model.DiagnosticReport) (*model.DiagnosticReport, error) {
	if _, _, err := getSector(ctx, uc.repo, report.CompanyID, report.SectorID); err != nil {
		return nil, err
	}

	if err := uc.validator.ValidateReport(report); err != nil {
		return nil, goerr.Wrap(err, "invalid diagnostic report",
			goerr.V(CompanyIDKey, report.CompanyID),
			goerr.V(SectorIDKey, report.SectorID))
	}

	stored, err := uc.repo.Report().Put(ctx, report)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save diagnostic report",
			goerr.V(CompanyIDKey, report.CompanyID),
			goerr.V(SectorIDKey, report.SectorID))
	}
	return stored, nil
}

// Get returns the stored sector report or ErrReportNotFound
func (uc *ReportUseCase) Get(ctx context.Context, companyID, sectorID string) (*model.DiagnosticReport, error) {
	if _, _, err := getSector(ctx, uc.repo, companyID, sectorID); err != nil {
		return nil, err
	}

	report, err := uc.repo.Report().Get(ctx, companyID, sectorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get diagnostic report",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	if report == nil {
		return nil, goerr.Wrap(ErrReportNotFound, "diagnostic report not found",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	return report, nil
}

// Document composes the company, the fresh sector analysis and the report edits.
// Without a stored report, a draft is filled from the analysis.
func (uc *ReportUseCase) Document(ctx context.Context, companyID, sectorID string) (*model.ReportDocument, error) {
	company, _, err := getSector(ctx, uc.repo, companyID, sectorID)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.analysis.AnalyzeSector(ctx, companyID, sectorID)
	if err != nil {
		return nil, err
	}

	report, err := uc.repo.Report().Get(ctx, companyID, sectorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get diagnostic report",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	if report == nil {
		report = &model.DiagnosticReport{
			ID:        model.SectorDocumentID(companyID, sectorID),
			CompanyID: companyID,
			SectorID:  sectorID,
		}
	}
	if len(report.JobFunctions) == 0 {
		report.JobFunctions = analysis.JobFunctions
	}
	if report.PreparedOn == "" {
		report.PreparedOn = uc.clock().UTC().Format(preparedOnLayout)
	}

	// access codes never leave the system
	company.AccessCode = ""

	return &model.ReportDocument{
		Company:  company,
		Analysis: analysis,
		Report:   report,
	}, nil
}

// Export writes the sector document through the configured exporter and returns
// where it was written
func (uc *ReportUseCase) Export(ctx context.Context, companyID, sectorID string) (string, error) {
	if uc.exporter == nil {
		return "", goerr.Wrap(ErrExporterNotConfigured, "cannot export report",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}

	doc, err := uc.Document(ctx, companyID, sectorID)
	if err != nil {
		return "", err
	}

	location, err := uc.exporter.Export(ctx, model.SectorDocumentID(companyID, sectorID), doc)
	if err != nil {
		return "", goerr.Wrap(err, "failed to export report",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}

	logging.From(ctx).Info("report exported",
		CompanyIDKey, companyID,
		SectorIDKey, sectorID,
		"location", location)
	return location, nil
}
