package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/scoring"
)

type UseCases struct {
	repo      interfaces.Repository
	engine    *scoring.Engine
	llmClient gollem.LLMClient
	exporter  interfaces.Exporter
	clock     func() time.Time

	Company     *CompanyUseCase
	Survey      *SurveyUseCase
	Probability *ProbabilityUseCase
	Analysis    *AnalysisUseCase
	Report      *ReportUseCase
	Insight     *InsightUseCase
}

type Option func(*UseCases)

// WithLLM enables LLM-backed insights
func WithLLM(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

// WithExporter sets the destination for exported report documents
func WithExporter(exporter interfaces.Exporter) Option {
	return func(uc *UseCases) {
		uc.exporter = exporter
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, engine *scoring.Engine, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		engine: engine,
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	validator := model.NewSurveyValidator(engine.Catalog())

	uc.Company = NewCompanyUseCase(repo)
	uc.Survey = NewSurveyUseCase(repo, validator, uc.clock)
	uc.Probability = NewProbabilityUseCase(repo, validator)
	uc.Analysis = NewAnalysisUseCase(repo, engine)
	uc.Report = NewReportUseCase(repo, validator, uc.Analysis, uc.exporter, uc.clock)
	uc.Insight = NewInsightUseCase(uc.Analysis, uc.llmClient)

	return uc
}

// Engine returns the scoring engine shared by the use cases
func (uc *UseCases) Engine() *scoring.Engine {
	return uc.engine
}
