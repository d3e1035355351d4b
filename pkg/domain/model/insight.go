package model

// Insight is an LLM-generated reading of a sector analysis
type Insight struct {
	CompanyID      string   `json:"company_id"`
	SectorID       string   `json:"sector_id"`
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
}
