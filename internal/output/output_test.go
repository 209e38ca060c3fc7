package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

func sampleScorecard(t *testing.T) *claim.AuditScorecard {
	t.Helper()
	item, err := claim.NewLineItem(claim.LineItemInput{Code: "WTR_AIRMOVER", Quantity: 2, UnitPrice: claim.NewMoney(35)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := claim.NewClaimData(claim.ClaimDataInput{ClaimID: "CLM-2024-001", LineItems: []claim.LineItem{item}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	impact := claim.NewMoney(120)
	sc := claim.NewAuditScorecard(c)
	sc.AddModule("water_remediation")
	sc.AddFinding(claim.AuditFinding{
		FindingID:       "FND-000001",
		RuleName:        "Air Mover Count",
		Category:        claim.CategoryLeakage,
		Severity:        claim.SeverityWarning,
		Title:           "Excessive air mover count",
		Description:     "2 air movers exceeds the expected count for the affected area.",
		AffectedItems:   []string{"WTR_AIRMOVER"},
		PotentialImpact: &impact,
		Recommendation:  "Confirm equipment placement against documented square footage.",
	})
	sc.CalculateRiskScore()
	return sc
}

func TestRenderText_IncludesHeaderSummaryAndFindings(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, sampleScorecard(t), true)
	out := buf.String()

	if !strings.Contains(out, "CLM-2024-001") {
		t.Error("expected claim id in output")
	}
	if !strings.Contains(out, "water_remediation") {
		t.Error("expected module name in output")
	}
	if !strings.Contains(out, "Excessive air mover count") {
		t.Error("expected finding title in output")
	}
}

func TestRenderText_SummaryOnlyOmitsFindings(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, sampleScorecard(t), false)
	out := buf.String()

	if strings.Contains(out, "Excessive air mover count") {
		t.Error("expected finding details to be omitted in summary-only mode")
	}
	if !strings.Contains(out, "Risk score") {
		t.Error("expected summary section present")
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleScorecard(t)); err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var report JSONReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if report.ClaimID != "CLM-2024-001" {
		t.Errorf("ClaimID = %q, want CLM-2024-001", report.ClaimID)
	}
	if len(report.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(report.Findings))
	}
	if report.Findings[0].PotentialImpact == nil || *report.Findings[0].PotentialImpact != 120 {
		t.Errorf("PotentialImpact = %v, want 120", report.Findings[0].PotentialImpact)
	}
}

func TestRenderHTML_ProducesSingleDiv(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, sampleScorecard(t)); err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `class="audit-scorecard"`) {
		t.Error("expected audit-scorecard div")
	}
	if !strings.Contains(out, "Excessive air mover count") {
		t.Error("expected finding title in HTML output")
	}
}

func TestRenderBadge_FormatsOneLine(t *testing.T) {
	got := RenderBadge(sampleScorecard(t))
	want := "CLM-2024-001: risk=15/100 leakage=$120.00 supplement_risk=$0.00 findings=1"
	if got != want {
		t.Errorf("RenderBadge() = %q, want %q", got, want)
	}
}
