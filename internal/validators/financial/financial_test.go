package financial

import (
	"testing"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/rules"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

func newClaim(t *testing.T, items []claim.LineItem, policy claim.PolicyCoverage) claim.ClaimData {
	t.Helper()
	c, err := claim.NewClaimData(claim.ClaimDataInput{ClaimID: "CLM-1", LineItems: items, Policy: policy})
	if err != nil {
		t.Fatalf("NewClaimData() error: %v", err)
	}
	return c
}

func item(t *testing.T, code string, total float64) claim.LineItem {
	t.Helper()
	li, err := claim.NewLineItem(claim.LineItemInput{Code: code, Quantity: 1, UnitPrice: claim.NewMoney(total)})
	if err != nil {
		t.Fatalf("NewLineItem() error: %v", err)
	}
	return li
}

func TestValidateDeductible_FiresOnZero(t *testing.T) {
	policy, _ := claim.NewPolicyCoverage(claim.PolicyCoverageInput{Deductible: claim.Zero})
	c := newClaim(t, []claim.LineItem{item(t, "GEN_MISC", 100)}, policy)

	findings, err := validateDeductible(c, rules.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Severity != claim.SeverityWarning {
		t.Errorf("Severity = %q, want warning", findings[0].Severity)
	}
}

func TestValidateDeductible_SilentWhenPositive(t *testing.T) {
	policy, _ := claim.NewPolicyCoverage(claim.PolicyCoverageInput{Deductible: claim.NewMoney(500)})
	c := newClaim(t, []claim.LineItem{item(t, "GEN_MISC", 100)}, policy)

	findings, err := validateDeductible(c, rules.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %d", len(findings))
	}
}

func TestValidateCoverageA_FiresWhenDwellingTotalsExceedLimit(t *testing.T) {
	policy, _ := claim.NewPolicyCoverage(claim.PolicyCoverageInput{CoverageA: claim.NewMoney(1000)})
	items := []claim.LineItem{item(t, "WTR_AIRF", 600), item(t, "PNT_WALL", 600)}
	c := newClaim(t, items, policy)

	findings, err := validateCoverageA(c, rules.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	wantImpact := claim.NewMoney(200)
	if !findings[0].Impact().Equal(wantImpact) {
		t.Errorf("impact = %s, want %s", findings[0].Impact().String(), wantImpact.String())
	}
	if findings[0].Severity != claim.SeverityCritical {
		t.Errorf("Severity = %q, want critical", findings[0].Severity)
	}
}

func TestValidateCoverageC_OnlyCountsContentsPrefix(t *testing.T) {
	policy, _ := claim.NewPolicyCoverage(claim.PolicyCoverageInput{CoverageC: claim.NewMoney(100)})
	items := []claim.LineItem{item(t, "CNT_SOFA", 150), item(t, "WTR_AIRF", 1000)}
	c := newClaim(t, items, policy)

	findings, err := validateCoverageC(c, rules.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if len(findings[0].AffectedItems) != 1 || findings[0].AffectedItems[0] != "CNT_SOFA" {
		t.Errorf("AffectedItems = %v, want only CNT_SOFA", findings[0].AffectedItems)
	}
}

func TestValidateNetClaim_ToleratesPenny(t *testing.T) {
	item1 := item(t, "GEN_MISC", 1000)
	policy, _ := claim.NewPolicyCoverage(claim.PolicyCoverageInput{Deductible: claim.NewMoney(500)})
	net := claim.NewMoney(500.005)
	c, err := claim.NewClaimData(claim.ClaimDataInput{
		ClaimID: "CLM-2", LineItems: []claim.LineItem{item1}, Policy: policy, NetClaim: &net,
	})
	if err != nil {
		t.Fatalf("NewClaimData() error: %v", err)
	}

	findings, err := validateNetClaim(c, rules.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected tolerance to absorb half-cent diff, got %d findings", len(findings))
	}
}

func TestValidateNetClaim_FiresOnMismatch(t *testing.T) {
	item1 := item(t, "GEN_MISC", 1000)
	policy, _ := claim.NewPolicyCoverage(claim.PolicyCoverageInput{Deductible: claim.NewMoney(500)})
	net := claim.NewMoney(100)
	c, err := claim.NewClaimData(claim.ClaimDataInput{
		ClaimID: "CLM-3", LineItems: []claim.LineItem{item1}, Policy: policy, NetClaim: &net,
	})
	if err != nil {
		t.Fatalf("NewClaimData() error: %v", err)
	}

	findings, err := validateNetClaim(c, rules.Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
}

func TestRegister_AddsAllSevenRules(t *testing.T) {
	r := rules.New()
	Register(r)
	for _, id := range RuleIDs {
		if _, ok := r.Get(id); !ok {
			t.Errorf("expected rule %s to be registered", id)
		}
	}
}
