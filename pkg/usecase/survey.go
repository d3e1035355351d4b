package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
)

type SurveyUseCase struct {
	repo      interfaces.Repository
	validator *model.SurveyValidator
	clock     func() time.Time
}

func NewSurveyUseCase(repo interfaces.Repository, validator *model.SurveyValidator, clock func() time.Time) *SurveyUseCase {
	return &SurveyUseCase{
		repo:      repo,
		validator: validator,
		clock:     clock,
	}
}

// Submit stores a completed questionnaire after validating it against the
// catalog and the company's sectors
func (uc *SurveyUseCase) Submit(ctx context.Context, response *model.SurveyResponse) (*model.SurveyResponse, error) {
	if err := uc.validator.ValidateResponse(response); err != nil {
		return nil, goerr.Wrap(err, "invalid survey response",
			goerr.V(CompanyIDKey, response.CompanyID),
			goerr.V(SectorIDKey, response.SectorID))
	}

	if _, _, err := getSector(ctx, uc.repo, response.CompanyID, response.SectorID); err != nil {
		return nil, err
	}

	toStore := response.Clone()
	toStore.ID = ""
	if toStore.CompletedAt.IsZero() {
		toStore.CompletedAt = uc.clock().UTC()
	}

	created, err := uc.repo.Response().Create(ctx, toStore)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store survey response",
			goerr.V(CompanyIDKey, response.CompanyID),
			goerr.V(SectorIDKey, response.SectorID))
	}

	logging.From(ctx).Info("survey response submitted",
		"response_id", created.ID,
		CompanyIDKey, created.CompanyID,
		SectorIDKey, created.SectorID,
		"answers", len(created.Answers))
	return created, nil
}

// ListResponses returns the stored responses of a sector
func (uc *SurveyUseCase) ListResponses(ctx context.Context, companyID, sectorID string) ([]*model.SurveyResponse, error) {
	if _, _, err := getSector(ctx, uc.repo, companyID, sectorID); err != nil {
		return nil, err
	}

	responses, err := uc.repo.Response().ListBySector(ctx, companyID, sectorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list survey responses",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	return responses, nil
}
