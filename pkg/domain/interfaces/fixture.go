package interfaces

import "github.com/mindcorps/psyrisk/pkg/domain/model"

// Fixture is a bulk snapshot of repository content, used to seed a backend from
// a JSON file.
type Fixture struct {
	Companies     []*model.Company               `json:"companies"`
	Responses     []*model.SurveyResponse        `json:"responses"`
	Probabilities []*model.ProbabilityAssessment `json:"probabilities"`
	Reports       []*model.DiagnosticReport      `json:"reports"`
}
