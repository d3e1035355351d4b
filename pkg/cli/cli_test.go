package cli_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/cli"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
	"github.com/mindcorps/psyrisk/pkg/usecase"
)

const seed = `{
  "companies": [
    {"id": "acme", "trade_name": "Acme", "access_code": "s3cret",
     "sectors": [{"id": "ops", "name": "Operations"}, {"id": "hr", "name": "Human Resources"}]}
  ],
  "responses": [
    {"id": "r1", "company_id": "acme", "sector_id": "ops", "job_function": "analyst",
     "completed_at": "2025-03-01T10:00:00Z",
     "answers": {"11": 3, "12": 3, "13": 3, "14": 3, "15": 3, "16": 3, "17": 3, "18": 3, "19": 3, "20": 3}},
    {"id": "r2", "company_id": "acme", "sector_id": "ops", "job_function": "operator",
     "completed_at": "2025-03-02T10:00:00Z",
     "answers": {"11": 1, "12": 1, "13": 1, "14": 1, "15": 1, "16": 1, "17": 1, "18": 1, "19": 1, "20": 1}}
  ],
  "probabilities": [
    {"id": "acme_hr", "company_id": "acme", "sector_id": "hr", "scores": {"1": 4}}
  ]
}`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	gt.NoError(t, os.WriteFile(path, []byte(seed), 0o600)).Required()
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	return cli.Run(context.Background(), append([]string{"psyrisk", "--log-level", "error"}, args...), "test")
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	return data
}

func TestRun_Analyze(t *testing.T) {
	seedPath := writeSeed(t)

	t.Run("sector as json", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "ops.json")
		gt.NoError(t, run(t, "analyze",
			"--repository-backend", "memory", "--seed-file", seedPath,
			"--company", "acme", "--sector", "ops",
			"--format", "json", "--output", out)).Required()

		var analysis model.SectorAnalysis
		gt.NoError(t, json.Unmarshal(readFile(t, out), &analysis)).Required()
		gt.Value(t, analysis.TotalRespondents).Equal(2)
		gt.Value(t, analysis.JobFunctions).Equal([]string{"analyst", "operator"})

		workload, ok := analysis.Factor(2)
		gt.B(t, ok).True()
		gt.Value(t, workload.SeverityScore).Equal(2.0)
		gt.Value(t, workload.SeverityLevel).Equal(types.SeverityMedium)
		gt.Value(t, workload.ProbabilityScore).Equal(2.0)
		gt.Value(t, workload.ProbabilitySource).Equal(types.ProbabilityAutomatic)
	})

	t.Run("company as table", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "acme.txt")
		gt.NoError(t, run(t, "analyze",
			"--repository-backend", "memory", "--seed-file", seedPath,
			"--company", "acme", "--output", out)).Required()

		text := string(readFile(t, out))
		gt.String(t, text).Contains("Operations (ops)")
		gt.String(t, text).Contains("Human Resources (hr)")
		gt.String(t, text).Contains("Excessive Workload")
		gt.String(t, text).Contains("[baseline only]")
		gt.B(t, strings.Contains(text, "\x1b[")).False()
	})

	t.Run("unknown sector", func(t *testing.T) {
		err := run(t, "analyze",
			"--repository-backend", "memory", "--seed-file", seedPath,
			"--company", "acme", "--sector", "finance", "--output", filepath.Join(t.TempDir(), "x"))
		gt.Error(t, err).Is(usecase.ErrSectorNotFound)
	})

	t.Run("invalid format", func(t *testing.T) {
		err := run(t, "analyze", "--repository-backend", "memory", "--company", "acme", "--format", "xml")
		gt.Value(t, err).NotNil()
	})
}

func TestRun_Catalog(t *testing.T) {
	t.Run("builtin catalog", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "catalog.json")
		gt.NoError(t, run(t, "catalog", "--format", "json", "--output", out)).Required()

		var view struct {
			Factors []struct {
				ID  int    `json:"id"`
				Key string `json:"key"`
			} `json:"factors"`
		}
		gt.NoError(t, json.Unmarshal(readFile(t, out), &view)).Required()
		gt.A(t, view.Factors).Length(9)
		gt.Value(t, view.Factors[1].Key).Equal("workload")
	})

	t.Run("invalid catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		gt.NoError(t, os.WriteFile(path, []byte("inverted = [95]\n"), 0o600)).Required()

		err := run(t, "catalog", "--catalog", path, "--output", filepath.Join(t.TempDir(), "x"))
		gt.Value(t, err).NotNil()
	})
}

func TestRun_Export(t *testing.T) {
	seedPath := writeSeed(t)
	dir := t.TempDir()

	gt.NoError(t, run(t, "export",
		"--repository-backend", "memory", "--seed-file", seedPath,
		"--company", "acme", "--export-dir", dir)).Required()

	for _, sector := range []string{"ops", "hr"} {
		data := readFile(t, filepath.Join(dir, "acme_"+sector+".json"))
		gt.B(t, strings.Contains(string(data), "s3cret")).False()

		var doc model.ReportDocument
		gt.NoError(t, json.Unmarshal(data, &doc)).Required()
		gt.Value(t, doc.Analysis.SectorID).Equal(sector)
	}
}

func TestRun_ExportWithoutDestination(t *testing.T) {
	err := run(t, "export", "--repository-backend", "memory", "--company", "acme")
	gt.B(t, errors.Is(err, usecase.ErrExporterNotConfigured)).True()
}

func TestRun_InsightWithoutLLM(t *testing.T) {
	t.Setenv("PSYRISK_GEMINI_PROJECT", "")
	err := run(t, "insight", "--repository-backend", "memory", "--company", "acme", "--sector", "ops")
	gt.Error(t, err).Is(usecase.ErrLLMNotConfigured)
}
