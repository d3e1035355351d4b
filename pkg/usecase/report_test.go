package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
	"github.com/mindcorps/psyrisk/pkg/usecase"
)

func TestReportUseCase_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t)

	_, err := uc.Report.Get(ctx, "acme", "ops")
	gt.Error(t, err).Is(usecase.ErrReportNotFound)

	_, err = uc.Report.Save(ctx, &model.DiagnosticReport{
		CompanyID: "acme",
		SectorID:  "ops",
		Author:    "Dr. Silva",
		Sources:   map[types.FactorID]string{2: "Overtime"},
	})
	gt.NoError(t, err).Required()

	_, err = uc.Report.Save(ctx, &model.DiagnosticReport{
		CompanyID:  "acme",
		SectorID:   "ops",
		Conclusion: "Monitor",
	})
	gt.NoError(t, err).Required()

	got, err := uc.Report.Get(ctx, "acme", "ops")
	gt.NoError(t, err).Required()
	gt.Value(t, got.Author).Equal("Dr. Silva")
	gt.Value(t, got.Conclusion).Equal("Monitor")

	t.Run("rejects unknown factor source", func(t *testing.T) {
		_, err := uc.Report.Save(ctx, &model.DiagnosticReport{
			CompanyID: "acme",
			SectorID:  "ops",
			Sources:   map[types.FactorID]string{42: "?"},
		})
		gt.Error(t, err).Is(model.ErrUnknownFactor)
	})
}

func TestReportUseCase_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("requires exporter", func(t *testing.T) {
		uc, _ := setup(t)
		_, err := uc.Report.Export(ctx, "acme", "ops")
		gt.Error(t, err).Is(usecase.ErrExporterNotConfigured)
	})

	t.Run("exports composed document", func(t *testing.T) {
		exporter := &mockExporter{}
		uc, _ := setup(t, usecase.WithExporter(exporter))

		_, err := uc.Survey.Submit(ctx, &model.SurveyResponse{
			CompanyID:   "acme",
			SectorID:    "ops",
			JobFunction: "Operator",
			Answers:     answersFor(1, 10, 3),
		})
		gt.NoError(t, err).Required()

		location, err := uc.Report.Export(ctx, "acme", "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, location).Equal("mock://acme_ops.json")

		gt.A(t, exporter.docs).Length(1)
		doc := exporter.docs[0]
		gt.Value(t, doc.Company.ID).Equal("acme")
		gt.Value(t, doc.Company.AccessCode).Equal("")
		gt.Value(t, doc.Analysis.SectorID).Equal("ops")
		gt.Value(t, doc.Report.JobFunctions).Equal([]string{"Operator"})
		gt.Value(t, doc.Report.PreparedOn).Equal("2025-03-14")
	})
}
