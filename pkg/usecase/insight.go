package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

// insightCount is the number of insights requested from the LLM
const insightCount = 3

type InsightUseCase struct {
	analysis  *AnalysisUseCase
	llmClient gollem.LLMClient
}

func NewInsightUseCase(analysis *AnalysisUseCase, llmClient gollem.LLMClient) *InsightUseCase {
	return &InsightUseCase{
		analysis:  analysis,
		llmClient: llmClient,
	}
}

type insightResponse struct {
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
}

func insightSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "SectorInsight",
		Description: "Key findings and one recommendation for a psychosocial risk analysis",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"insights": {
				Type:        gollem.TypeArray,
				Description: fmt.Sprintf("Exactly %d short key insights in plain text.", insightCount),
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
				Required: true,
			},
			"recommendation": {
				Type:        gollem.TypeString,
				Description: "One concrete recommendation addressing the highest risks.",
				Required:    true,
			},
		},
	}
}

func buildInsightPrompt(analysis *model.SectorAnalysis, language string) (string, error) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal sector analysis")
	}

	languageInstruction := ""
	if language != "" {
		languageInstruction = fmt.Sprintf("\nYou MUST write all output in %s.\n", language)
	}

	return fmt.Sprintf(`Analyze the following psychosocial risk analysis of one organizational sector.
Each factor has a severity and probability on a 0-4 scale and a composite risk level.
Provide %d key insights and 1 recommendation. Focus on HIGH and CRITICAL risks first.
%s
Data:
%s`, insightCount, languageInstruction, string(data)), nil
}

// Generate asks the LLM for insights on a fresh sector analysis
func (uc *InsightUseCase) Generate(ctx context.Context, companyID, sectorID, language string) (*model.Insight, error) {
	if uc.llmClient == nil {
		return nil, goerr.Wrap(ErrLLMNotConfigured, "cannot generate insight",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}

	analysis, err := uc.analysis.AnalyzeSector(ctx, companyID, sectorID)
	if err != nil {
		return nil, err
	}

	prompt, err := buildInsightPrompt(analysis, language)
	if err != nil {
		return nil, err
	}

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(insightSchema()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session for insight")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate insight",
			goerr.V(CompanyIDKey, companyID),
			goerr.V(SectorIDKey, sectorID))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrEmptyInsight, "insight generation returned empty result")
	}

	var parsed insightResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse insight JSON",
			goerr.V("response", resp.Texts[0]))
	}
	if len(parsed.Insights) == 0 && parsed.Recommendation == "" {
		return nil, goerr.Wrap(ErrEmptyInsight, "insight has no content")
	}

	return &model.Insight{
		CompanyID:      companyID,
		SectorID:       sectorID,
		Insights:       parsed.Insights,
		Recommendation: parsed.Recommendation,
	}, nil
}
