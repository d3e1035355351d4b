package usecase

// BuildInsightPrompt is exported for testing
var BuildInsightPrompt = buildInsightPrompt

// InsightSchema is exported for testing
var InsightSchema = insightSchema
