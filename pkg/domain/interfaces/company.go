package interfaces

import (
	"context"

	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

// CompanyRepository defines the interface for Company data access
type CompanyRepository interface {
	// Put creates or replaces a company
	Put(ctx context.Context, company *model.Company) error

	// Get retrieves a company by ID. A missing company is an ErrNotFound error.
	Get(ctx context.Context, id string) (*model.Company, error)

	// List retrieves all companies ordered by ID
	List(ctx context.Context) ([]*model.Company, error)
}
