package memory

import (
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	company     *companyRepository
	response    *responseRepository
	probability *probabilityRepository
	report      *reportRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		company:     newCompanyRepository(),
		response:    newResponseRepository(),
		probability: newProbabilityRepository(),
		report:      newReportRepository(),
	}
}

func (m *Memory) Company() interfaces.CompanyRepository {
	return m.company
}

func (m *Memory) Response() interfaces.ResponseRepository {
	return m.response
}

func (m *Memory) Probability() interfaces.ProbabilityRepository {
	return m.probability
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Close() error {
	return nil
}
