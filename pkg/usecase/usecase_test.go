package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
	"github.com/mindcorps/psyrisk/pkg/domain/scoring"
	"github.com/mindcorps/psyrisk/pkg/repository/memory"
	"github.com/mindcorps/psyrisk/pkg/usecase"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	engine, err := scoring.NewEngine(config.DefaultCatalog(), config.DefaultScoringPolicy())
	gt.NoError(t, err).Required()
	return engine
}

// setup returns use cases over a memory repository holding one company with
// the sectors "ops" and "hr"
func setup(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()

	repo := memory.New()
	gt.NoError(t, repo.Company().Put(context.Background(), &model.Company{
		ID:         "acme",
		TradeName:  "Acme",
		AccessCode: "s3cret",
		Sectors: []model.Sector{
			{ID: "ops", Name: "Operations"},
			{ID: "hr", Name: "Human Resources"},
		},
	})).Required()

	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
	return usecase.New(repo, newTestEngine(t), opts...), repo
}

func answersFor(first, last, value int) map[int]int {
	answers := make(map[int]int)
	for q := first; q <= last; q++ {
		answers[q] = value
	}
	return answers
}

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{
		Texts: []string{`{"insights":["a","b","c"],"recommendation":"r"}`},
	}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// mockExporter records exported documents
type mockExporter struct {
	names []string
	docs  []*model.ReportDocument
}

func (e *mockExporter) Export(ctx context.Context, name string, doc *model.ReportDocument) (string, error) {
	e.names = append(e.names, name)
	e.docs = append(e.docs, doc)
	return "mock://" + name + ".json", nil
}
