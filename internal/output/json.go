package output

import (
	"encoding/json"
	"io"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// JSONReport is the top-level JSON rendering of an AuditScorecard.
// Money fields are converted to float64 and the timestamp is formatted
// as an RFC3339 string by BuildJSONReport before encoding.
type JSONReport struct {
	ClaimID         string             `json:"claim_id"`
	AuditTimestamp  string             `json:"audit_timestamp"`
	ClaimSummary    JSONClaimSummary   `json:"claim_summary"`
	ModulesExecuted []string           `json:"modules_executed"`
	Findings        []JSONFinding      `json:"findings"`
	Summary         JSONAuditSummary   `json:"summary"`
	Redacted        bool               `json:"redacted"`
}

// JSONClaimSummary mirrors claim.ClaimSummary for JSON output.
type JSONClaimSummary struct {
	GrossClaim    float64 `json:"gross_claim"`
	NetClaim      float64 `json:"net_claim"`
	LineItemCount int     `json:"line_item_count"`
	Deductible    float64 `json:"deductible"`
}

// JSONFinding mirrors claim.AuditFinding for JSON output.
type JSONFinding struct {
	FindingID       string         `json:"finding_id"`
	RuleName        string         `json:"rule_name"`
	Category        string         `json:"category"`
	Severity        string         `json:"severity"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	AffectedItems   []string       `json:"affected_items,omitempty"`
	PotentialImpact *float64       `json:"potential_impact,omitempty"`
	Recommendation  string         `json:"recommendation,omitempty"`
	Evidence        map[string]any `json:"evidence,omitempty"`
}

// JSONAuditSummary mirrors claim.AuditSummary for JSON output.
type JSONAuditSummary struct {
	TotalFindings         int            `json:"total_findings"`
	ByCategory            map[string]int `json:"by_category"`
	TotalPotentialLeakage float64        `json:"total_potential_leakage"`
	TotalSupplementRisk   float64        `json:"total_supplement_risk"`
	RiskScore             int            `json:"risk_score"`
}

// BuildJSONReport converts an AuditScorecard into a JSONReport.
func BuildJSONReport(sc *claim.AuditScorecard) *JSONReport {
	findings := make([]JSONFinding, len(sc.Findings))
	for i, f := range sc.Findings {
		jf := JSONFinding{
			FindingID:      f.FindingID,
			RuleName:       f.RuleName,
			Category:       string(f.Category),
			Severity:       string(f.Severity),
			Title:          f.Title,
			Description:    f.Description,
			AffectedItems:  f.AffectedItems,
			Recommendation: f.Recommendation,
			Evidence:       f.Evidence,
		}
		if f.PotentialImpact != nil {
			v, _ := f.PotentialImpact.Float64()
			jf.PotentialImpact = &v
		}
		findings[i] = jf
	}

	byCategory := make(map[string]int, len(sc.Summary.ByCategory))
	for cat, n := range sc.Summary.ByCategory {
		byCategory[string(cat)] = n
	}

	gross, _ := sc.ClaimSummary.GrossClaim.Float64()
	net, _ := sc.ClaimSummary.NetClaim.Float64()
	deductible, _ := sc.ClaimSummary.Deductible.Float64()
	leakage, _ := sc.Summary.TotalPotentialLeakage.Float64()
	supplementRisk, _ := sc.Summary.TotalSupplementRisk.Float64()

	return &JSONReport{
		ClaimID:        sc.ClaimID,
		AuditTimestamp: sc.AuditTimestamp.Format("2006-01-02T15:04:05Z07:00"),
		ClaimSummary: JSONClaimSummary{
			GrossClaim:    gross,
			NetClaim:      net,
			LineItemCount: sc.ClaimSummary.LineItemCount,
			Deductible:    deductible,
		},
		ModulesExecuted: sc.ModulesExecuted,
		Findings:        findings,
		Summary: JSONAuditSummary{
			TotalFindings:         sc.Summary.TotalFindings,
			ByCategory:            byCategory,
			TotalPotentialLeakage: leakage,
			TotalSupplementRisk:   supplementRisk,
			RiskScore:             sc.Summary.RiskScore,
		},
		Redacted: sc.Redacted,
	}
}

// RenderJSON writes the scorecard to w as indented JSON.
func RenderJSON(w io.Writer, sc *claim.AuditScorecard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONReport(sc))
}
