package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

type CompanyUseCase struct {
	repo interfaces.Repository
}

func NewCompanyUseCase(repo interfaces.Repository) *CompanyUseCase {
	return &CompanyUseCase{
		repo: repo,
	}
}

// RegisterCompany creates or replaces a company. Sector IDs must be unique and
// non-empty since analyses and reports are keyed by them. Neither company nor
// sector IDs may contain the document ID separator.
func (uc *CompanyUseCase) RegisterCompany(ctx context.Context, company *model.Company) (*model.Company, error) {
	if company.ID == "" {
		return nil, goerr.Wrap(ErrInvalidCompany, "company ID is required")
	}
	if strings.Contains(company.ID, model.SectorDocumentIDSeparator) {
		return nil, goerr.Wrap(ErrInvalidCompany, "company ID must not contain the separator",
			goerr.V(CompanyIDKey, company.ID))
	}
	if company.TradeName == "" {
		return nil, goerr.Wrap(ErrInvalidCompany, "trade name is required", goerr.V(CompanyIDKey, company.ID))
	}

	seen := make(map[string]bool, len(company.Sectors))
	for _, s := range company.Sectors {
		if s.ID == "" {
			return nil, goerr.Wrap(ErrInvalidCompany, "sector ID is required", goerr.V(CompanyIDKey, company.ID))
		}
		if strings.Contains(s.ID, model.SectorDocumentIDSeparator) {
			return nil, goerr.Wrap(ErrInvalidCompany, "sector ID must not contain the separator",
				goerr.V(CompanyIDKey, company.ID),
				goerr.V(SectorIDKey, s.ID))
		}
		if seen[s.ID] {
			return nil, goerr.Wrap(ErrInvalidCompany, "duplicate sector ID",
				goerr.V(CompanyIDKey, company.ID),
				goerr.V(SectorIDKey, s.ID))
		}
		seen[s.ID] = true
	}

	if err := uc.repo.Company().Put(ctx, company); err != nil {
		return nil, goerr.Wrap(err, "failed to register company", goerr.V(CompanyIDKey, company.ID))
	}
	return company.Clone(), nil
}

func (uc *CompanyUseCase) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	return getCompany(ctx, uc.repo, id)
}

func (uc *CompanyUseCase) ListCompanies(ctx context.Context) ([]*model.Company, error) {
	companies, err := uc.repo.Company().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list companies")
	}
	return companies, nil
}

func getCompany(ctx context.Context, repo interfaces.Repository, id string) (*model.Company, error) {
	company, err := repo.Company().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCompanyNotFound, "company not found",
			goerr.V(CompanyIDKey, id),
			goerr.V("cause", err.Error()))
	}
	return company, nil
}

// getSector loads the company and checks that it has the sector
func getSector(ctx context.Context, repo interfaces.Repository, companyID, sectorID string) (*model.Company, model.Sector, error) {
	company, err := getCompany(ctx, repo, companyID)
	if err != nil {
		return nil, model.Sector{}, err
	}

	sector, ok := company.Sector(sectorID)
	if !ok {
		return nil, model.Sector{}, goerr.Wrap(ErrSectorNotFound, "sector not found",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	return company, sector, nil
}
