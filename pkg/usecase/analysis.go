package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/scoring"
	"github.com/mindcorps/psyrisk/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSectors bounds the repository reads issued by AnalyzeCompany
const maxConcurrentSectors = 8

type AnalysisUseCase struct {
	repo   interfaces.Repository
	engine *scoring.Engine
}

func NewAnalysisUseCase(repo interfaces.Repository, engine *scoring.Engine) *AnalysisUseCase {
	return &AnalysisUseCase{
		repo:   repo,
		engine: engine,
	}
}

// AnalyzeSector scores one sector from the stored responses and assessment
func (uc *AnalysisUseCase) AnalyzeSector(ctx context.Context, companyID, sectorID string) (*model.SectorAnalysis, error) {
	_, sector, err := getSector(ctx, uc.repo, companyID, sectorID)
	if err != nil {
		return nil, err
	}
	return uc.analyze(ctx, companyID, sector)
}

// AnalyzeCompany scores every sector of a company concurrently. Sectors keep the
// company's order and the company stats are the sums of the sector stats.
func (uc *AnalysisUseCase) AnalyzeCompany(ctx context.Context, companyID string) (*model.CompanyAnalysis, error) {
	company, err := getCompany(ctx, uc.repo, companyID)
	if err != nil {
		return nil, err
	}

	sectors := make([]*model.SectorAnalysis, len(company.Sectors))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentSectors)
	for i, sector := range company.Sectors {
		eg.Go(func() error {
			result, err := uc.analyze(ctx, companyID, sector)
			if err != nil {
				return err
			}
			sectors[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to analyze company", goerr.V(CompanyIDKey, companyID))
	}

	result := &model.CompanyAnalysis{
		CompanyID:   company.ID,
		CompanyName: company.TradeName,
		Sectors:     sectors,
	}
	for _, s := range sectors {
		result.TotalRespondents += s.TotalRespondents
		result.SeverityStats = result.SeverityStats.Add(s.SeverityStats)
		result.RiskStats = result.RiskStats.Add(s.RiskStats)
	}

	return result, nil
}

func (uc *AnalysisUseCase) analyze(ctx context.Context, companyID string, sector model.Sector) (*model.SectorAnalysis, error) {
	responses, err := uc.repo.Response().ListBySector(ctx, companyID, sector.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list survey responses",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sector.ID))
	}

	assessment, err := uc.repo.Probability().Get(ctx, companyID, sector.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get probability assessment",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sector.ID))
	}

	result, err := uc.engine.AnalyzeSector(scoring.SectorInput{
		SectorID:   sector.ID,
		SectorName: sector.Name,
		Responses:  responses,
		Assessment: assessment,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to score sector",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sector.ID))
	}

	if len(result.Anomalies) > 0 {
		logging.From(ctx).Warn("values excluded from scoring",
			CompanyIDKey, companyID,
			SectorIDKey, sector.ID,
			"count", len(result.Anomalies),
			"anomalies", result.Anomalies)
	}

	return result, nil
}
