package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/types"
)

type ProbabilityUseCase struct {
	repo      interfaces.Repository
	validator *model.SurveyValidator
}

func NewProbabilityUseCase(repo interfaces.Repository, validator *model.SurveyValidator) *ProbabilityUseCase {
	return &ProbabilityUseCase{
		repo:      repo,
		validator: validator,
	}
}

// Save replaces the psychologist's probability assessment of a sector
func (uc *ProbabilityUseCase) Save(ctx context.Context, assessment *model.ProbabilityAssessment) (*model.ProbabilityAssessment, error) {
	if _, _, err := getSector(ctx, uc.repo, assessment.CompanyID, assessment.SectorID); err != nil {
		return nil, err
	}

	if err := uc.validator.ValidateAssessment(assessment); err != nil {
		return nil, goerr.Wrap(err, "invalid probability assessment",
			goerr.V(CompanyIDKey, assessment.CompanyID),
			goerr.V(SectorIDKey, assessment.SectorID))
	}

	stored, err := uc.repo.Probability().Put(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save probability assessment",
			goerr.V(CompanyIDKey, assessment.CompanyID),
			goerr.V(SectorIDKey, assessment.SectorID))
	}
	return stored, nil
}

// Get returns the sector assessment. A sector without one gets an empty
// assessment, meaning every factor uses automatic probability.
func (uc *ProbabilityUseCase) Get(ctx context.Context, companyID, sectorID string) (*model.ProbabilityAssessment, error) {
	if _, _, err := getSector(ctx, uc.repo, companyID, sectorID); err != nil {
		return nil, err
	}

	assessment, err := uc.repo.Probability().Get(ctx, companyID, sectorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get probability assessment",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	if assessment == nil {
		assessment = &model.ProbabilityAssessment{
			ID:        model.SectorDocumentID(companyID, sectorID),
			CompanyID: companyID,
			SectorID:  sectorID,
			Scores:    map[types.FactorID]float64{},
		}
	}
	return assessment, nil
}
