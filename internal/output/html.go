package output

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

var severityBorderColor = map[claim.AuditSeverity]string{
	claim.SeverityCritical: "#8e44ad",
	claim.SeverityError:    "#c0392b",
	claim.SeverityWarning:  "#d4a017",
	claim.SeverityInfo:     "#2980b9",
}

// RenderHTML writes a single self-contained <div class="audit-scorecard">
// with inline styles: a header, a summary table, and one
// severity-colored block per finding. No external stylesheet or script.
func RenderHTML(w io.Writer, sc *claim.AuditScorecard) error {
	var b strings.Builder

	b.WriteString(`<div class="audit-scorecard" style="font-family: -apple-system, sans-serif; max-width: 800px;">` + "\n")
	fmt.Fprintf(&b, `<h2>Claim Audit: %s</h2>`+"\n", html.EscapeString(sc.ClaimID))
	fmt.Fprintf(&b, `<p style="color:#666;">Audited %s%s</p>`+"\n",
		html.EscapeString(sc.AuditTimestamp.Format("2006-01-02T15:04:05Z07:00")),
		redactedSuffix(sc.Redacted))

	b.WriteString(`<table style="border-collapse: collapse; width: 100%;">` + "\n")
	writeRow(&b, "Gross claim", sc.ClaimSummary.GrossClaim.StringFixed(2))
	writeRow(&b, "Net claim", sc.ClaimSummary.NetClaim.StringFixed(2))
	writeRow(&b, "Potential leakage", sc.Summary.TotalPotentialLeakage.StringFixed(2))
	writeRow(&b, "Supplement risk", sc.Summary.TotalSupplementRisk.StringFixed(2))
	writeRow(&b, "Risk score", fmt.Sprintf("%d/100", sc.Summary.RiskScore))
	b.WriteString("</table>\n")

	fmt.Fprintf(&b, `<p><strong>Modules executed:</strong> %s</p>`+"\n", html.EscapeString(strings.Join(sc.ModulesExecuted, ", ")))

	for _, f := range sc.Findings {
		border := severityBorderColor[f.Severity]
		if border == "" {
			border = "#999"
		}
		fmt.Fprintf(&b, `<div style="border-left: 4px solid %s; padding: 8px 12px; margin: 8px 0;">`+"\n", border)
		fmt.Fprintf(&b, `<div><strong>[%s]</strong> %s &mdash; %s</div>`+"\n",
			html.EscapeString(strings.ToUpper(string(f.Severity))), html.EscapeString(f.FindingID), html.EscapeString(f.Title))
		if f.Description != "" {
			fmt.Fprintf(&b, `<div>%s</div>`+"\n", html.EscapeString(f.Description))
		}
		if f.PotentialImpact != nil {
			fmt.Fprintf(&b, `<div>Potential impact: %s</div>`+"\n", f.PotentialImpact.StringFixed(2))
		}
		if f.Recommendation != "" {
			fmt.Fprintf(&b, `<div><em>%s</em></div>`+"\n", html.EscapeString(f.Recommendation))
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func redactedSuffix(redacted bool) string {
	if redacted {
		return " (PII redacted)"
	}
	return ""
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<tr><td style="padding:4px 8px; color:#666;">%s</td><td style="padding:4px 8px;">%s</td></tr>`+"\n",
		html.EscapeString(label), html.EscapeString(value))
}
