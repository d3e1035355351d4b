package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

func TestProbabilityUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("empty assessment when none stored", func(t *testing.T) {
		uc, _ := setup(t)
		got, err := uc.Probability.Get(ctx, "acme", "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal("acme_ops")
		gt.Value(t, len(got.Scores)).Equal(0)
	})

	t.Run("saves valid scores", func(t *testing.T) {
		uc, _ := setup(t)
		_, err := uc.Probability.Save(ctx, &model.ProbabilityAssessment{
			CompanyID: "acme",
			SectorID:  "ops",
			Scores:    map[types.FactorID]float64{1: 1, 9: 4},
		})
		gt.NoError(t, err).Required()

		got, err := uc.Probability.Get(ctx, "acme", "ops")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Scores).Equal(map[types.FactorID]float64{1: 1, 9: 4})
	})

	t.Run("rejects out of range score", func(t *testing.T) {
		uc, _ := setup(t)
		_, err := uc.Probability.Save(ctx, &model.ProbabilityAssessment{
			CompanyID: "acme",
			SectorID:  "ops",
			Scores:    map[types.FactorID]float64{1: 0.5},
		})
		gt.Error(t, err).Is(model.ErrInvalidProbability)
	})

	t.Run("rejects unknown factor", func(t *testing.T) {
		uc, _ := setup(t)
		_, err := uc.Probability.Save(ctx, &model.ProbabilityAssessment{
			CompanyID: "acme",
			SectorID:  "ops",
			Scores:    map[types.FactorID]float64{10: 2},
		})
		gt.Error(t, err).Is(model.ErrUnknownFactor)
	})
}
