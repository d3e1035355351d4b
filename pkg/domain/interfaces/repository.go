package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Company() CompanyRepository
	Response() ResponseRepository
	Probability() ProbabilityRepository
	Report() ReportRepository

	Close() error
}
