package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

func TestSurveyValidator_ValidateResponse(t *testing.T) {
	v := model.NewSurveyValidator(config.DefaultCatalog())

	valid := func() *model.SurveyResponse {
		return &model.SurveyResponse{
			CompanyID:   "acme",
			SectorID:    "finance",
			JobFunction: "Analyst",
			Answers:     map[int]int{1: 0, 45: 4, 90: 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *model.SurveyResponse)
		wantErr error
	}{
		{
			name:   "valid partial response",
			mutate: func(r *model.SurveyResponse) {},
		},
		{
			name:   "no answers at all",
			mutate: func(r *model.SurveyResponse) { r.Answers = nil },
		},
		{
			name:    "answer above scale",
			mutate:  func(r *model.SurveyResponse) { r.Answers[12] = 5 },
			wantErr: model.ErrInvalidAnswer,
		},
		{
			name:    "negative answer",
			mutate:  func(r *model.SurveyResponse) { r.Answers[12] = -1 },
			wantErr: model.ErrInvalidAnswer,
		},
		{
			name:    "question outside catalog",
			mutate:  func(r *model.SurveyResponse) { r.Answers[91] = 1 },
			wantErr: model.ErrUnknownQuestion,
		},
		{
			name:    "missing job function",
			mutate:  func(r *model.SurveyResponse) { r.JobFunction = "" },
			wantErr: model.ErrMissingRequired,
		},
		{
			name:    "missing sector",
			mutate:  func(r *model.SurveyResponse) { r.SectorID = "" },
			wantErr: model.ErrMissingRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			err := v.ValidateResponse(r)
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestSurveyValidator_ValidateAssessment(t *testing.T) {
	v := model.NewSurveyValidator(config.DefaultCatalog())

	tests := []struct {
		name    string
		scores  map[types.FactorID]float64
		wantErr error
	}{
		{name: "boundaries are accepted", scores: map[types.FactorID]float64{1: 1, 9: 4}},
		{name: "empty assessment", scores: nil},
		{name: "zero is below the scale", scores: map[types.FactorID]float64{2: 0}, wantErr: model.ErrInvalidProbability},
		{name: "above the scale", scores: map[types.FactorID]float64{2: 4.5}, wantErr: model.ErrInvalidProbability},
		{name: "unknown factor", scores: map[types.FactorID]float64{10: 2}, wantErr: model.ErrUnknownFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateAssessment(&model.ProbabilityAssessment{
				CompanyID: "acme",
				SectorID:  "finance",
				Scores:    tt.scores,
			})
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestSurveyValidator_ValidateReport(t *testing.T) {
	v := model.NewSurveyValidator(config.DefaultCatalog())

	gt.NoError(t, v.ValidateReport(&model.DiagnosticReport{
		CompanyID: "acme",
		SectorID:  "finance",
		Sources:   map[types.FactorID]string{2: "Simultaneous demands"},
	}))

	gt.Error(t, v.ValidateReport(&model.DiagnosticReport{
		CompanyID: "acme",
		SectorID:  "finance",
		Sources:   map[types.FactorID]string{12: "?"},
	})).Is(model.ErrUnknownFactor)
}

func TestDiagnosticReport_Merge(t *testing.T) {
	r := &model.DiagnosticReport{
		Author:     "Dr. Silva",
		Conclusion: "initial",
		Sources:    map[types.FactorID]string{1: "a"},
	}

	r.Merge(&model.DiagnosticReport{
		Conclusion: "revised",
		Sources:    map[types.FactorID]string{2: "b"},
	})

	gt.Value(t, r.Author).Equal("Dr. Silva")
	gt.Value(t, r.Conclusion).Equal("revised")
	gt.Value(t, r.Sources).Equal(map[types.FactorID]string{1: "a", 2: "b"})
}

func TestCompany_Sector(t *testing.T) {
	c := &model.Company{
		ID:      "acme",
		Sectors: []model.Sector{{ID: "ops", Name: "Operations"}},
	}

	s, ok := c.Sector("ops")
	gt.Bool(t, ok).True()
	gt.Value(t, s.Name).Equal("Operations")

	_, ok = c.Sector("hr")
	gt.Bool(t, ok).False()

	cp := c.Clone()
	cp.Sectors[0].Name = "changed"
	gt.Value(t, c.Sectors[0].Name).Equal("Operations")
}

func TestSectorDocumentID(t *testing.T) {
	gt.Value(t, model.SectorDocumentID("acme", "ops")).Equal("acme_ops")
}
