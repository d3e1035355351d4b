package model

import (
	"maps"
	"slices"
	"time"

	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

// DiagnosticReport holds the free-text sections a psychologist edits on top of a
// sector analysis. Its ID is SectorDocumentID(CompanyID, SectorID).
type DiagnosticReport struct {
	ID              string                    `json:"id"`
	CompanyID       string                    `json:"company_id"`
	SectorID        string                    `json:"sector_id"`
	Author          string                    `json:"author,omitempty"`
	PreparedOn      string                    `json:"prepared_on,omitempty"`
	JobFunctions    []string                  `json:"job_functions,omitempty"`
	HealthHazards   string                    `json:"health_hazards,omitempty"`
	ControlMeasures string                    `json:"control_measures,omitempty"`
	Conclusion      string                    `json:"conclusion,omitempty"`
	Sources         map[types.FactorID]string `json:"sources,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// Clone returns a deep copy of the report
func (r *DiagnosticReport) Clone() *DiagnosticReport {
	c := *r
	c.JobFunctions = slices.Clone(r.JobFunctions)
	c.Sources = maps.Clone(r.Sources)
	return &c
}

// Merge overlays the non-empty fields of patch on the report, like a Firestore
// merge write.
func (r *DiagnosticReport) Merge(patch *DiagnosticReport) {
	if patch.Author != "" {
		r.Author = patch.Author
	}
	if patch.PreparedOn != "" {
		r.PreparedOn = patch.PreparedOn
	}
	if patch.JobFunctions != nil {
		r.JobFunctions = slices.Clone(patch.JobFunctions)
	}
	if patch.HealthHazards != "" {
		r.HealthHazards = patch.HealthHazards
	}
	if patch.ControlMeasures != "" {
		r.ControlMeasures = patch.ControlMeasures
	}
	if patch.Conclusion != "" {
		r.Conclusion = patch.Conclusion
	}
	if len(patch.Sources) > 0 {
		if r.Sources == nil {
			r.Sources = make(map[types.FactorID]string, len(patch.Sources))
		}
		maps.Copy(r.Sources, patch.Sources)
	}
}

// ReportDocument is the exported form of a sector diagnosis: the analysis plus the
// psychologist's edits, consumed by document renderers.
type ReportDocument struct {
	Company  *Company          `json:"company"`
	Analysis *SectorAnalysis   `json:"analysis"`
	Report   *DiagnosticReport `json:"report,omitempty"`
}
