package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCompanyNotFound = errors.New("company not found")
	ErrSectorNotFound  = errors.New("sector not found")
	ErrReportNotFound  = errors.New("report not found")

	// Input errors
	ErrInvalidCompany = errors.New("invalid company")

	// Configuration errors
	ErrLLMNotConfigured      = errors.New("LLM client is not configured")
	ErrExporterNotConfigured = errors.New("exporter is not configured")

	// Other errors
	ErrEmptyInsight = errors.New("LLM returned no insight")
)

// Context keys for error values
const (
	CompanyIDKey = "company_id"
	SectorIDKey  = "sector_id"
)
