package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/usecase"
)

func TestCompanyUseCase_RegisterCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("registers valid company", func(t *testing.T) {
		uc, _ := setup(t)
		created, err := uc.Company.RegisterCompany(ctx, &model.Company{
			ID:        "globex",
			TradeName: "Globex",
			Sectors:   []model.Sector{{ID: "it", Name: "IT"}},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal("globex")

		companies, err := uc.Company.ListCompanies(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, companies).Length(2)
	})

	testCases := []struct {
		name    string
		company *model.Company
	}{
		{"missing ID", &model.Company{TradeName: "X"}},
		{"missing trade name", &model.Company{ID: "x"}},
		{"empty sector ID", &model.Company{ID: "x", TradeName: "X", Sectors: []model.Sector{{Name: "A"}}}},
		{"duplicate sector", &model.Company{ID: "x", TradeName: "X", Sectors: []model.Sector{{ID: "a"}, {ID: "a"}}}},
		// acme + b_c and acme_b + c would share the document ID acme_b_c
		{"separator in company ID", &model.Company{ID: "acme_b", TradeName: "X", Sectors: []model.Sector{{ID: "c"}}}},
		{"separator in sector ID", &model.Company{ID: "acme", TradeName: "X", Sectors: []model.Sector{{ID: "b_c"}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := setup(t)
			_, err := uc.Company.RegisterCompany(ctx, tc.company)
			gt.Error(t, err).Is(usecase.ErrInvalidCompany)
		})
	}
}

func TestCompanyUseCase_GetCompany(t *testing.T) {
	uc, _ := setup(t)

	company, err := uc.Company.GetCompany(context.Background(), "acme")
	gt.NoError(t, err).Required()
	gt.Value(t, company.TradeName).Equal("Acme")

	_, err = uc.Company.GetCompany(context.Background(), "missing")
	gt.Error(t, err).Is(usecase.ErrCompanyNotFound)
}
