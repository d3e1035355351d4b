package firestore

import (
	"context"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type responseDocument struct {
	ID          string         `firestore:"id"`
	CompanyID   string         `firestore:"company_id"`
	SectorID    string         `firestore:"sector_id"`
	JobFunction string         `firestore:"job_function"`
	CompletedAt time.Time      `firestore:"completed_at"`
	Answers     map[string]int `firestore:"answers"`
}

type responseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResponseRepository(client *firestore.Client) *responseRepository {
	return &responseRepository{
		client: client,
	}
}

func (r *responseRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, "responses"))
}

func (r *responseRepository) Create(ctx context.Context, response *model.SurveyResponse) (*model.SurveyResponse, error) {
	created := response.Clone()
	if created.ID == "" {
		created.ID = model.NewResponseID()
	}
	if created.CompletedAt.IsZero() {
		created.CompletedAt = now()
	}

	doc := &responseDocument{
		ID:          created.ID,
		CompanyID:   created.CompanyID,
		SectorID:    created.SectorID,
		JobFunction: created.JobFunction,
		CompletedAt: created.CompletedAt,
		Answers:     toStringKeys(created.Answers),
	}

	if _, err := r.collection().Doc(created.ID).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(err, "response already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create response", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *responseRepository) ListBySector(ctx context.Context, companyID, sectorID string) ([]*model.SurveyResponse, error) {
	q := r.collection().
		Where("company_id", "==", companyID).
		Where("sector_id", "==", sectorID)
	return r.list(ctx, q)
}

func (r *responseRepository) ListByCompany(ctx context.Context, companyID string) ([]*model.SurveyResponse, error) {
	q := r.collection().Where("company_id", "==", companyID)
	return r.list(ctx, q)
}

func (r *responseRepository) list(ctx context.Context, q firestore.Query) ([]*model.SurveyResponse, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	responses := make([]*model.SurveyResponse, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate responses")
		}

		var doc responseDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal response", goerr.V("id", snap.Ref.ID))
		}
		answers, err := fromStringKeys[int](doc.Answers)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode answers", goerr.V("id", doc.ID))
		}

		responses = append(responses, &model.SurveyResponse{
			ID:          doc.ID,
			CompanyID:   doc.CompanyID,
			SectorID:    doc.SectorID,
			JobFunction: doc.JobFunction,
			CompletedAt: doc.CompletedAt,
			Answers:     answers,
		})
	}

	// ordered in memory to avoid a composite index on the filtered fields
	slices.SortFunc(responses, func(a, b *model.SurveyResponse) int {
		if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return responses, nil
}

type probabilityDocument struct {
	ID        string             `firestore:"id"`
	CompanyID string             `firestore:"company_id"`
	SectorID  string             `firestore:"sector_id"`
	Scores    map[string]float64 `firestore:"scores"`
	UpdatedAt time.Time          `firestore:"updated_at"`
}

type probabilityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProbabilityRepository(client *firestore.Client) *probabilityRepository {
	return &probabilityRepository{
		client: client,
	}
}

func (r *probabilityRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, "probability"))
}

func (r *probabilityRepository) Put(ctx context.Context, assessment *model.ProbabilityAssessment) (*model.ProbabilityAssessment, error) {
	stored := assessment.Clone()
	stored.ID = model.SectorDocumentID(stored.CompanyID, stored.SectorID)
	stored.UpdatedAt = now()

	doc := &probabilityDocument{
		ID:        stored.ID,
		CompanyID: stored.CompanyID,
		SectorID:  stored.SectorID,
		Scores:    toFactorKeys(stored.Scores),
		UpdatedAt: stored.UpdatedAt,
	}

	if _, err := r.collection().Doc(stored.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put probability assessment", goerr.V("id", stored.ID))
	}
	return stored, nil
}

func (r *probabilityRepository) Get(ctx context.Context, companyID, sectorID string) (*model.ProbabilityAssessment, error) {
	id := model.SectorDocumentID(companyID, sectorID)

	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get probability assessment", goerr.V("id", id))
	}

	var doc probabilityDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal probability assessment", goerr.V("id", id))
	}
	scores, err := fromFactorKeys(doc.Scores)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode probability scores", goerr.V("id", id))
	}

	return &model.ProbabilityAssessment{
		ID:        doc.ID,
		CompanyID: doc.CompanyID,
		SectorID:  doc.SectorID,
		Scores:    scores,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
