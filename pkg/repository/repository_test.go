package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
	"github.com/mindcorps/psyrisk/pkg/repository/firestore"
	"github.com/mindcorps/psyrisk/pkg/repository/memory"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

// uniqueID keeps test data of parallel or repeated runs apart in a shared backend
func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Company Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		company := &model.Company{
			ID:             uniqueID("acme"),
			TradeName:      "Acme",
			LegalName:      "Acme Industries Ltd",
			TaxID:          "12.345.678/0001-90",
			AccessCode:     "s3cret",
			City:           "Recife",
			State:          "PE",
			TotalEmployees: 42,
			Sectors: []model.Sector{
				{ID: "ops", Name: "Operations"},
				{ID: "hr", Name: "Human Resources"},
			},
		}
		gt.NoError(t, repo.Company().Put(ctx, company)).Required()

		got, err := repo.Company().Get(ctx, company.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(company)

		// stored value is independent from the caller's copy
		company.Sectors[0].Name = "Changed"
		got, err = repo.Company().Get(ctx, company.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Sectors[0].Name).Equal("Operations")
	})

	t.Run("Company Get returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Company().Get(context.Background(), uniqueID("missing"))
		gt.Value(t, err).NotNil()
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Company Put requires ID", func(t *testing.T) {
		repo := newRepo(t)
		gt.Value(t, repo.Company().Put(context.Background(), &model.Company{TradeName: "x"})).NotNil()
	})

	t.Run("Company List includes stored companies ordered by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := uniqueID("list")
		gt.NoError(t, repo.Company().Put(ctx, &model.Company{ID: base + "-b", TradeName: "B"})).Required()
		gt.NoError(t, repo.Company().Put(ctx, &model.Company{ID: base + "-a", TradeName: "A"})).Required()

		companies, err := repo.Company().List(ctx)
		gt.NoError(t, err).Required()

		var ids []string
		for _, c := range companies {
			if strings.HasPrefix(c.ID, base) {
				ids = append(ids, c.ID)
			}
		}
		gt.Value(t, ids).Equal([]string{base + "-a", base + "-b"})
	})

	t.Run("Response Create assigns ID and CompletedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Response().Create(ctx, &model.SurveyResponse{
			CompanyID:   uniqueID("co"),
			SectorID:    "ops",
			JobFunction: "Analyst",
			Answers:     map[int]int{1: 2, 2: 4},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual("")
		gt.Bool(t, created.CompletedAt.IsZero()).False()
		gt.Value(t, created.Answers).Equal(map[int]int{1: 2, 2: 4})
	})

	t.Run("Response lists filter by company and sector", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		companyID := uniqueID("co")
		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

		for i, sector := range []string{"ops", "hr", "ops"} {
			_, err := repo.Response().Create(ctx, &model.SurveyResponse{
				ID:          fmt.Sprintf("%s-r%d", companyID, i),
				CompanyID:   companyID,
				SectorID:    sector,
				JobFunction: "Analyst",
				CompletedAt: base.Add(time.Duration(3-i) * time.Hour),
				Answers:     map[int]int{1: i},
			})
			gt.NoError(t, err).Required()
		}
		_, err := repo.Response().Create(ctx, &model.SurveyResponse{
			CompanyID: uniqueID("other"),
			SectorID:  "ops",
			Answers:   map[int]int{1: 4},
		})
		gt.NoError(t, err).Required()

		ops, err := repo.Response().ListBySector(ctx, companyID, "ops")
		gt.NoError(t, err).Required()
		gt.A(t, ops).Length(2)
		// ordered by completion time
		gt.Value(t, ops[0].ID).Equal(companyID + "-r2")
		gt.Value(t, ops[1].ID).Equal(companyID + "-r0")

		all, err := repo.Response().ListByCompany(ctx, companyID)
		gt.NoError(t, err).Required()
		gt.A(t, all).Length(3)

		none, err := repo.Response().ListBySector(ctx, companyID, "finance")
		gt.NoError(t, err).Required()
		gt.A(t, none).Length(0)
	})

	t.Run("Probability Get returns nil when absent", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.Probability().Get(context.Background(), uniqueID("co"), "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, got).Nil()
	})

	t.Run("Probability Put replaces the sector assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		companyID := uniqueID("co")

		stored, err := repo.Probability().Put(ctx, &model.ProbabilityAssessment{
			CompanyID: companyID,
			SectorID:  "ops",
			Scores:    map[types.FactorID]float64{1: 2.5, 9: 4},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, stored.ID).Equal(model.SectorDocumentID(companyID, "ops"))
		gt.Bool(t, stored.UpdatedAt.IsZero()).False()

		_, err = repo.Probability().Put(ctx, &model.ProbabilityAssessment{
			CompanyID: companyID,
			SectorID:  "ops",
			Scores:    map[types.FactorID]float64{3: 1},
		})
		gt.NoError(t, err).Required()

		got, err := repo.Probability().Get(ctx, companyID, "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Scores).Equal(map[types.FactorID]float64{3: 1})
	})

	t.Run("Report Put creates then merges", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		companyID := uniqueID("co")

		created, err := repo.Report().Put(ctx, &model.DiagnosticReport{
			CompanyID:     companyID,
			SectorID:      "ops",
			Author:        "Dr. Silva",
			HealthHazards: "Burnout",
			Sources:       map[types.FactorID]string{2: "Overtime"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(model.SectorDocumentID(companyID, "ops"))
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		updated, err := repo.Report().Put(ctx, &model.DiagnosticReport{
			CompanyID:  companyID,
			SectorID:   "ops",
			Conclusion: "Action required",
			Sources:    map[types.FactorID]string{5: "Micromanagement"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Author).Equal("Dr. Silva")
		gt.Value(t, updated.HealthHazards).Equal("Burnout")
		gt.Value(t, updated.Conclusion).Equal("Action required")
		gt.Value(t, updated.Sources).Equal(map[types.FactorID]string{2: "Overtime", 5: "Micromanagement"})
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()

		got, err := repo.Report().Get(ctx, companyID, "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Conclusion).Equal("Action required")

		missing, err := repo.Report().Get(ctx, companyID, "hr")
		gt.NoError(t, err).Required()
		gt.Value(t, missing).Nil()
	})

	t.Run("Report ListByCompany orders by sector", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		companyID := uniqueID("co")

		for _, sector := range []string{"ops", "hr"} {
			_, err := repo.Report().Put(ctx, &model.DiagnosticReport{
				CompanyID: companyID,
				SectorID:  sector,
				Author:    "Dr. Silva",
			})
			gt.NoError(t, err).Required()
		}

		reports, err := repo.Report().ListByCompany(ctx, companyID)
		gt.NoError(t, err).Required()
		gt.A(t, reports).Length(2)
		gt.Value(t, reports[0].SectorID).Equal("hr")
		gt.Value(t, reports[1].SectorID).Equal("ops")
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestRepository_Memory(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestRepository_Firestore(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepository)
}
