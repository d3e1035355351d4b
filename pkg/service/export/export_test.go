package export_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/service/export"
)

func sampleDocument() *model.ReportDocument {
	return &model.ReportDocument{
		Company:  &model.Company{ID: "acme", TradeName: "Acme"},
		Analysis: &model.SectorAnalysis{SectorID: "ops", SectorName: "Operations", TotalRespondents: 3},
		Report:   &model.DiagnosticReport{ID: "acme_ops", CompanyID: "acme", SectorID: "ops", Author: "Dr. Silva"},
	}
}

func TestLocal_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	exporter, err := export.NewLocal(dir)
	gt.NoError(t, err).Required()

	location, err := exporter.Export(context.Background(), "acme_ops", sampleDocument())
	gt.NoError(t, err).Required()
	gt.Value(t, location).Equal(filepath.Join(dir, "acme_ops.json"))

	data, err := os.ReadFile(location)
	gt.NoError(t, err).Required()

	var got model.ReportDocument
	gt.NoError(t, json.Unmarshal(data, &got)).Required()
	gt.Value(t, got.Report.Author).Equal("Dr. Silva")
	gt.Value(t, got.Analysis.TotalRespondents).Equal(3)

	_, err = os.Stat(location + ".tmp")
	gt.Bool(t, os.IsNotExist(err)).True()
}

func TestLocal_ExportRejectsPathNames(t *testing.T) {
	exporter, err := export.NewLocal(t.TempDir())
	gt.NoError(t, err).Required()

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		_, err := exporter.Export(context.Background(), name, sampleDocument())
		gt.Error(t, err).Is(export.ErrInvalidName)
	}
}

func TestEncodeIsStable(t *testing.T) {
	a, err := export.Encode(sampleDocument())
	gt.NoError(t, err).Required()
	b, err := export.Encode(sampleDocument())
	gt.NoError(t, err).Required()
	gt.Value(t, string(a)).Equal(string(b))
}

func TestGCS_Export(t *testing.T) {
	bucket := os.Getenv("TEST_EXPORT_BUCKET")
	if bucket == "" {
		t.Skip("TEST_EXPORT_BUCKET not set")
	}

	ctx := context.Background()
	exporter, err := export.NewGCS(ctx, bucket, "test")
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = exporter.Close() })

	location, err := exporter.Export(ctx, "acme_ops", sampleDocument())
	gt.NoError(t, err).Required()
	gt.Value(t, location).Equal("gs://" + bucket + "/test/acme_ops.json")
}
