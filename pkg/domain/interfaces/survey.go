package interfaces

import (
	"context"

	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

// ResponseRepository defines the interface for SurveyResponse data access
type ResponseRepository interface {
	// Create stores a response. An empty ID is replaced by a generated one and a
	// zero CompletedAt by the current time.
	Create(ctx context.Context, response *model.SurveyResponse) (*model.SurveyResponse, error)

	// ListBySector returns the responses of one sector ordered by CompletedAt then ID
	ListBySector(ctx context.Context, companyID, sectorID string) ([]*model.SurveyResponse, error)

	// ListByCompany returns all responses of a company in the same order
	ListByCompany(ctx context.Context, companyID string) ([]*model.SurveyResponse, error)
}

// ProbabilityRepository defines the interface for ProbabilityAssessment data access
type ProbabilityRepository interface {
	// Put creates or replaces the sector assessment
	Put(ctx context.Context, assessment *model.ProbabilityAssessment) (*model.ProbabilityAssessment, error)

	// Get returns nil without error when the sector has no assessment
	Get(ctx context.Context, companyID, sectorID string) (*model.ProbabilityAssessment, error)
}

// ReportRepository defines the interface for DiagnosticReport data access
type ReportRepository interface {
	// Put creates the report or merges the non-empty fields into the stored one
	Put(ctx context.Context, report *model.DiagnosticReport) (*model.DiagnosticReport, error)

	// Get returns nil without error when the sector has no report
	Get(ctx context.Context, companyID, sectorID string) (*model.DiagnosticReport, error)

	// ListByCompany returns all reports of a company ordered by sector ID
	ListByCompany(ctx context.Context, companyID string) ([]*model.DiagnosticReport, error)
}
