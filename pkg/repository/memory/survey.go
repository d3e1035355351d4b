package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

type responseRepository struct {
	mu        sync.RWMutex
	responses map[string]*model.SurveyResponse
}

func newResponseRepository() *responseRepository {
	return &responseRepository{
		responses: make(map[string]*model.SurveyResponse),
	}
}

func (r *responseRepository) Create(ctx context.Context, response *model.SurveyResponse) (*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := response.Clone()
	if created.ID == "" {
		created.ID = model.NewResponseID()
	}
	if created.CompletedAt.IsZero() {
		created.CompletedAt = time.Now().UTC()
	}

	if _, exists := r.responses[created.ID]; exists {
		return nil, goerr.New("response already exists", goerr.V("id", created.ID))
	}

	r.responses[created.ID] = created
	return created.Clone(), nil
}

func (r *responseRepository) ListBySector(ctx context.Context, companyID, sectorID string) ([]*model.SurveyResponse, error) {
	return r.list(func(resp *model.SurveyResponse) bool {
		return resp.CompanyID == companyID && resp.SectorID == sectorID
	}), nil
}

func (r *responseRepository) ListByCompany(ctx context.Context, companyID string) ([]*model.SurveyResponse, error) {
	return r.list(func(resp *model.SurveyResponse) bool {
		return resp.CompanyID == companyID
	}), nil
}

func (r *responseRepository) list(match func(*model.SurveyResponse) bool) []*model.SurveyResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()

	responses := make([]*model.SurveyResponse, 0)
	for _, resp := range r.responses {
		if match(resp) {
			responses = append(responses, resp.Clone())
		}
	}
	sortResponses(responses)
	return responses
}

// sortResponses orders responses by completion time then ID so listings are
// stable across calls
func sortResponses(responses []*model.SurveyResponse) {
	slices.SortFunc(responses, func(a, b *model.SurveyResponse) int {
		if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

type probabilityRepository struct {
	mu          sync.RWMutex
	assessments map[string]*model.ProbabilityAssessment
}

func newProbabilityRepository() *probabilityRepository {
	return &probabilityRepository{
		assessments: make(map[string]*model.ProbabilityAssessment),
	}
}

func (r *probabilityRepository) Put(ctx context.Context, assessment *model.ProbabilityAssessment) (*model.ProbabilityAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := assessment.Clone()
	stored.ID = model.SectorDocumentID(stored.CompanyID, stored.SectorID)
	stored.UpdatedAt = time.Now().UTC()

	r.assessments[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *probabilityRepository) Get(ctx context.Context, companyID, sectorID string) (*model.ProbabilityAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[model.SectorDocumentID(companyID, sectorID)]
	if !exists {
		return nil, nil
	}
	return assessment.Clone(), nil
}
