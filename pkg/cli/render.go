package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/domain/model/config"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func formatFlagUsage() string {
	return "Output format (" + formatTable + ", " + formatJSON + ")"
}

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return goerr.New("invalid output format", goerr.V("format", format))
	}
}

// renderer prints analysis results as tables or JSON
type renderer struct {
	w        io.Writer
	format   string
	colorize bool
}

func (r *renderer) paint(level string) string {
	var c *color.Color
	switch level {
	case "CRITICAL":
		c = color.New(color.FgHiRed, color.Bold, color.Underline)
	case "HIGH":
		c = color.New(color.FgRed, color.Bold)
	case "MEDIUM":
		c = color.New(color.FgYellow)
	case "LOW":
		c = color.New(color.FgGreen)
	default:
		return level
	}
	if !r.colorize {
		c.DisableColor()
	}
	return c.Sprint(level)
}

func (r *renderer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal output")
	}
	if _, err := fmt.Fprintln(r.w, string(data)); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}

func (r *renderer) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func (r *renderer) Sector(a *model.SectorAnalysis) error {
	if r.format == formatJSON {
		return r.writeJSON(a)
	}
	r.sectorTable(a)
	return nil
}

func (r *renderer) sectorTable(a *model.SectorAnalysis) {
	title := fmt.Sprintf("%s (%s) - %d respondents", a.SectorName, a.SectorID, a.TotalRespondents)
	if a.LowConfidence {
		title += " [baseline only]"
	}

	t := r.newTable(title)
	t.AppendHeader(table.Row{"#", "Factor", "Severity", "Level", "Probability", "Level", "Source", "Risk", "Answers"})
	for _, f := range a.Factors {
		t.AppendRow(table.Row{
			f.Factor.ID,
			f.Factor.Label,
			fmt.Sprintf("%.2f", f.SeverityScore),
			r.paint(string(f.SeverityLevel)),
			fmt.Sprintf("%.2f", f.ProbabilityScore),
			r.paint(string(f.ProbabilityLevel)),
			strings.ToLower(string(f.ProbabilitySource)),
			r.paint(string(f.RiskLevel)),
			f.AnswerCount,
		})
	}
	t.AppendFooter(table.Row{"", "Severity", r.severitySummary(a.SeverityStats), "", "", "", "Risk", r.riskSummary(a.RiskStats), ""})
	t.Render()

	if len(a.JobFunctions) > 0 {
		fmt.Fprintf(r.w, "Job functions: %s\n", strings.Join(a.JobFunctions, ", "))
	}
	if len(a.Anomalies) > 0 {
		fmt.Fprintf(r.w, "%d answer(s) excluded from scoring:\n", len(a.Anomalies))
		for _, an := range a.Anomalies {
			fmt.Fprintf(r.w, "  - factor %d question %d value %v: %s\n", an.FactorID, an.Question, an.Value, an.Reason)
		}
	}
	fmt.Fprintln(r.w)
}

func (r *renderer) severitySummary(s model.SeverityStats) string {
	return fmt.Sprintf("%s %d / %s %d / %s %d",
		r.paint("LOW"), s.Low, r.paint("MEDIUM"), s.Medium, r.paint("HIGH"), s.High)
}

func (r *renderer) riskSummary(s model.RiskStats) string {
	return fmt.Sprintf("%s %d / %s %d / %s %d / %s %d",
		r.paint("LOW"), s.Low, r.paint("MEDIUM"), s.Medium, r.paint("HIGH"), s.High, r.paint("CRITICAL"), s.Critical)
}

func (r *renderer) Company(a *model.CompanyAnalysis) error {
	if r.format == formatJSON {
		return r.writeJSON(a)
	}

	fmt.Fprintf(r.w, "%s (%s) - %d respondents in %d sector(s)\n\n", a.CompanyName, a.CompanyID, a.TotalRespondents, len(a.Sectors))
	for _, s := range a.Sectors {
		r.sectorTable(s)
	}
	fmt.Fprintf(r.w, "Company severity: %s\n", r.severitySummary(a.SeverityStats))
	fmt.Fprintf(r.w, "Company risk:     %s\n", r.riskSummary(a.RiskStats))
	return nil
}

type catalogView struct {
	Factors  []config.RiskFactor  `json:"factors"`
	Inverted []int                `json:"inverted"`
	Policy   config.ScoringPolicy `json:"policy"`
}

func (r *renderer) Catalog(catalog *config.FactorCatalog, policy config.ScoringPolicy) error {
	inverted := catalog.Inverted()
	if r.format == formatJSON {
		return r.writeJSON(catalogView{Factors: catalog.Factors(), Inverted: inverted, Policy: policy})
	}

	t := r.newTable("Factor catalog")
	t.AppendHeader(table.Row{"#", "Key", "Label", "Questions", "Inverted"})
	for _, f := range catalog.Factors() {
		var inv []string
		for _, q := range inverted {
			if f.Contains(q) {
				inv = append(inv, fmt.Sprint(q))
			}
		}
		t.AppendRow(table.Row{f.ID, f.Key, f.Label, fmt.Sprintf("%d-%d", f.StartQuestion, f.EndQuestion), strings.Join(inv, ",")})
	}
	t.Render()

	fmt.Fprintf(r.w, "Baseline severity: %.2f\nCritical probability: %.2f\n", policy.BaselineSeverity, policy.CriticalProbability)
	return nil
}

func (r *renderer) Insight(insight *model.Insight) error {
	if r.format == formatJSON {
		return r.writeJSON(insight)
	}

	fmt.Fprintf(r.w, "Insights for %s/%s\n", insight.CompanyID, insight.SectorID)
	for i, s := range insight.Insights {
		fmt.Fprintf(r.w, "  %d. %s\n", i+1, s)
	}
	fmt.Fprintf(r.w, "\nRecommendation: %s\n", insight.Recommendation)
	return nil
}
