package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

type companyRepository struct {
	mu        sync.RWMutex
	companies map[string]*model.Company
}

func newCompanyRepository() *companyRepository {
	return &companyRepository{
		companies: make(map[string]*model.Company),
	}
}

func (r *companyRepository) Put(ctx context.Context, company *model.Company) error {
	if company.ID == "" {
		return goerr.New("company ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.companies[company.ID] = company.Clone()
	return nil
}

func (r *companyRepository) Get(ctx context.Context, id string) (*model.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.companies[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "company not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return company.Clone(), nil
}

func (r *companyRepository) List(ctx context.Context) ([]*model.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	companies := make([]*model.Company, 0, len(r.companies))
	for _, c := range r.companies {
		companies = append(companies, c.Clone())
	}
	slices.SortFunc(companies, func(a, b *model.Company) int {
		return strings.Compare(a.ID, b.ID)
	})

	return companies, nil
}
