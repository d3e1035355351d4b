package firestore

import (
	"context"
	"slices"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type sectorDocument struct {
	ID   string `firestore:"id"`
	Name string `firestore:"name"`
}

type companyDocument struct {
	ID             string           `firestore:"id"`
	TradeName      string           `firestore:"trade_name"`
	LegalName      string           `firestore:"legal_name"`
	TaxID          string           `firestore:"tax_id"`
	AccessCode     string           `firestore:"access_code"`
	City           string           `firestore:"city"`
	State          string           `firestore:"state"`
	TotalEmployees int              `firestore:"total_employees"`
	Sectors        []sectorDocument `firestore:"sectors"`
}

func (d *companyDocument) toModel() *model.Company {
	c := &model.Company{
		ID:             d.ID,
		TradeName:      d.TradeName,
		LegalName:      d.LegalName,
		TaxID:          d.TaxID,
		AccessCode:     d.AccessCode,
		City:           d.City,
		State:          d.State,
		TotalEmployees: d.TotalEmployees,
		Sectors:        make([]model.Sector, 0, len(d.Sectors)),
	}
	for _, s := range d.Sectors {
		c.Sectors = append(c.Sectors, model.Sector{ID: s.ID, Name: s.Name})
	}
	return c
}

type companyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCompanyRepository(client *firestore.Client) *companyRepository {
	return &companyRepository{
		client: client,
	}
}

func (r *companyRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, "companies"))
}

func (r *companyRepository) Put(ctx context.Context, company *model.Company) error {
	if company.ID == "" {
		return goerr.New("company ID is required")
	}

	doc := &companyDocument{
		ID:             company.ID,
		TradeName:      company.TradeName,
		LegalName:      company.LegalName,
		TaxID:          company.TaxID,
		AccessCode:     company.AccessCode,
		City:           company.City,
		State:          company.State,
		TotalEmployees: company.TotalEmployees,
		Sectors:        make([]sectorDocument, 0, len(company.Sectors)),
	}
	for _, s := range company.Sectors {
		doc.Sectors = append(doc.Sectors, sectorDocument{ID: s.ID, Name: s.Name})
	}

	if _, err := r.collection().Doc(company.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put company", goerr.V("id", company.ID))
	}
	return nil
}

func (r *companyRepository) Get(ctx context.Context, id string) (*model.Company, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "company not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get company", goerr.V("id", id))
	}

	var doc companyDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal company", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *companyRepository) List(ctx context.Context) ([]*model.Company, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	companies := make([]*model.Company, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate companies")
		}

		var doc companyDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal company", goerr.V("id", snap.Ref.ID))
		}
		companies = append(companies, doc.toModel())
	}

	slices.SortFunc(companies, func(a, b *model.Company) int {
		return strings.Compare(a.ID, b.ID)
	})
	return companies, nil
}
