// Package output renders an AuditScorecard to terminal text, JSON, HTML,
// and a compact one-line badge.
//
// Terminal rendering uses fatih/color severity coloring (info=cyan,
// warning=yellow, error=red, critical=magenta) and honors NO_COLOR per
// https://no-color.org, matching the teacher's terminal renderer.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

const textWidth = 70

func severityColor(sev claim.AuditSeverity) *color.Color {
	switch sev {
	case claim.SeverityCritical:
		return color.New(color.FgMagenta, color.Bold)
	case claim.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case claim.SeverityWarning:
		return color.New(color.FgYellow)
	case claim.SeverityInfo:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Reset)
	}
}

func categoryLabel(cat claim.AuditCategory) string {
	switch cat {
	case claim.CategoryFinancial:
		return "Financial"
	case claim.CategoryLeakage:
		return "Leakage"
	case claim.CategorySupplementRisk:
		return "Supplement Risk"
	default:
		return string(cat)
	}
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", textWidth))
}

// RenderText writes a fixed-order report: header, summary, modules
// executed, then one block per category (financial, leakage,
// supplement_risk). When includeDetails is false, only the header,
// summary, and modules-executed sections are printed — a summary-only
// mode for operators who just want the risk score and totals.
func RenderText(w io.Writer, sc *claim.AuditScorecard, includeDetails bool) {
	renderHeader(w, sc)
	renderSummary(w, sc)
	renderModules(w, sc)

	if !includeDetails {
		return
	}

	for _, cat := range []claim.AuditCategory{claim.CategoryFinancial, claim.CategoryLeakage, claim.CategorySupplementRisk} {
		findings := sc.FindingsByCategory(cat)
		if len(findings) == 0 {
			continue
		}
		renderCategory(w, cat, findings)
	}
}

func renderHeader(w io.Writer, sc *claim.AuditScorecard) {
	rule(w)
	fmt.Fprintf(w, "CLAIM AUDIT: %s\n", sc.ClaimID)
	if sc.Redacted {
		fmt.Fprintln(w, "(PII redacted)")
	}
	fmt.Fprintf(w, "Audited: %s\n", sc.AuditTimestamp.Format("2006-01-02T15:04:05Z07:00"))
	rule(w)
}

func renderSummary(w io.Writer, sc *claim.AuditScorecard) {
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "  Gross claim:        %s\n", sc.ClaimSummary.GrossClaim.StringFixed(2))
	fmt.Fprintf(w, "  Deductible:         %s\n", sc.ClaimSummary.Deductible.StringFixed(2))
	fmt.Fprintf(w, "  Net claim:          %s\n", sc.ClaimSummary.NetClaim.StringFixed(2))
	fmt.Fprintf(w, "  Line items:         %d\n", sc.ClaimSummary.LineItemCount)
	fmt.Fprintf(w, "  Findings:           %d\n", sc.Summary.TotalFindings)
	fmt.Fprintf(w, "  Potential leakage:  %s\n", sc.Summary.TotalPotentialLeakage.StringFixed(2))
	fmt.Fprintf(w, "  Supplement risk:    %s\n", sc.Summary.TotalSupplementRisk.StringFixed(2))

	scoreLine := fmt.Sprintf("  Risk score:         %d/100", sc.Summary.RiskScore)
	riskColor(sc.Summary.RiskScore).Fprintln(w, scoreLine)
	fmt.Fprintln(w)
}

func riskColor(score int) *color.Color {
	switch {
	case score >= 70:
		return color.New(color.FgRed, color.Bold)
	case score >= 35:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func renderModules(w io.Writer, sc *claim.AuditScorecard) {
	fmt.Fprintln(w, "MODULES EXECUTED")
	for _, m := range sc.ModulesExecuted {
		fmt.Fprintf(w, "  - %s\n", m)
	}
	fmt.Fprintln(w)
}

func renderCategory(w io.Writer, cat claim.AuditCategory, findings []claim.AuditFinding) {
	rule(w)
	fmt.Fprintf(w, "%s FINDINGS (%d)\n", strings.ToUpper(categoryLabel(cat)), len(findings))
	rule(w)

	for _, f := range findings {
		c := severityColor(f.Severity)
		c.Fprintf(w, "[%s] ", strings.ToUpper(string(f.Severity)))
		fmt.Fprintf(w, "%s — %s\n", f.FindingID, f.Title)
		if f.Description != "" {
			fmt.Fprintf(w, "  %s\n", f.Description)
		}
		if len(f.AffectedItems) > 0 {
			fmt.Fprintf(w, "  Affected: %s\n", strings.Join(f.AffectedItems, ", "))
		}
		if f.PotentialImpact != nil {
			fmt.Fprintf(w, "  Potential impact: %s\n", f.PotentialImpact.StringFixed(2))
		}
		if f.Recommendation != "" {
			fmt.Fprintf(w, "  Recommendation: %s\n", f.Recommendation)
		}
		fmt.Fprintln(w)
	}
}
