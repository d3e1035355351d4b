package model

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

const (
	// MinAnswer and MaxAnswer bound the survey's Likert scale
	MinAnswer = 0
	MaxAnswer = 4
)

// SurveyResponse is one employee's completed questionnaire. Answers maps question
// numbers to raw values on the 0..4 scale; unanswered questions are absent.
type SurveyResponse struct {
	ID          string      `json:"id"`
	CompanyID   string      `json:"company_id"`
	SectorID    string      `json:"sector_id"`
	JobFunction string      `json:"job_function"`
	CompletedAt time.Time   `json:"completed_at"`
	Answers     map[int]int `json:"answers"`
}

// NewResponseID generates a new survey response ID
func NewResponseID() string {
	return uuid.New().String()
}

// Clone returns a deep copy of the response
func (r *SurveyResponse) Clone() *SurveyResponse {
	c := *r
	c.Answers = maps.Clone(r.Answers)
	return &c
}

// ProbabilityAssessment is the psychologist's probability score per factor for a
// sector, on a 1..4 scale.
type ProbabilityAssessment struct {
	ID        string                     `json:"id"`
	CompanyID string                     `json:"company_id"`
	SectorID  string                     `json:"sector_id"`
	Scores    map[types.FactorID]float64 `json:"scores"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Clone returns a deep copy of the assessment
func (p *ProbabilityAssessment) Clone() *ProbabilityAssessment {
	c := *p
	c.Scores = maps.Clone(p.Scores)
	return &c
}

// SectorDocumentIDSeparator joins company and sector IDs in a document ID. IDs
// that contain it are rejected at registration so document IDs stay unique.
const SectorDocumentIDSeparator = "_"

// SectorDocumentID builds the per-sector document ID shared by probability
// assessments and diagnostic reports.
func SectorDocumentID(companyID, sectorID string) string {
	return companyID + SectorDocumentIDSeparator + sectorID
}
