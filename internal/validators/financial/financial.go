// Package financial implements the financial validator: seven rules
// checking deductible application, the Coverage A, B, and C limits,
// the water and mold sub-limits, and gross/net claim arithmetic.
package financial

import (
	"fmt"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/classifier"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/rules"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// ModuleName identifies this validator in AuditScorecard.ModulesExecuted.
const ModuleName = "financial"

// dwellingPrefixes are the Coverage-A code prefixes per FIN-002.
var dwellingPrefixes = []string{"DRY", "PNT", "DEM", "WTR", "FCC", "FNC", "GEN"}

// RuleIDs lists this module's rules in registration/execution order.
var RuleIDs = []string{
	"FIN-001", "FIN-002", "FIN-003", "FIN-004", "FIN-005", "FIN-006", "FIN-007",
}

// Register adds the financial validator's rules to the given registry.
// Safe to call once per engine instance.
func Register(r *rules.Registry) {
	r.Add(rules.Rule{
		RuleID:      "FIN-001",
		Name:        "Deductible Application",
		Description: "Flags a policy whose deductible is zero.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityWarning,
		Validate:    validateDeductible,
	})
	r.Add(rules.Rule{
		RuleID:      "FIN-002",
		Name:        "Coverage A Limit",
		Description: "Flags dwelling-code totals that exceed Coverage A.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityCritical,
		Validate:    validateCoverageA,
	})
	r.Add(rules.Rule{
		RuleID:      "FIN-003",
		Name:        "Coverage B Limit",
		Description: "Flags other-structure item totals that exceed Coverage B.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityError,
		Validate:    validateCoverageB,
	})
	r.Add(rules.Rule{
		RuleID:      "FIN-004",
		Name:        "Coverage C Limit",
		Description: "Flags contents (CNT-prefix) totals that exceed Coverage C.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityError,
		Validate:    validateCoverageC,
	})
	r.Add(rules.Rule{
		RuleID:      "FIN-005",
		Name:        "Water Sub-limit",
		Description: "Flags WTR-code totals that exceed the policy's water damage sub-limit.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityWarning,
		Validate:    validateWaterSubLimit,
	})
	r.Add(rules.Rule{
		RuleID:      "FIN-006",
		Name:        "Mold Sub-limit",
		Description: "Flags mold-remediation totals that exceed the policy's mold sub-limit.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityWarning,
		Validate:    validateMoldSubLimit,
	})
	r.Add(rules.Rule{
		RuleID:      "FIN-007",
		Name:        "Net Claim Calculation",
		Description: "Flags a net claim amount inconsistent with gross claim minus deductible.",
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityError,
		Validate:    validateNetClaim,
	})
}

func sumTotals(items []claim.LineItem) claim.Money {
	total := claim.Zero
	for _, li := range items {
		total = total.Add(li.Total())
	}
	return total
}

func codes(items []claim.LineItem) []string {
	out := make([]string, 0, len(items))
	for _, li := range items {
		out = append(out, li.Code())
	}
	return out
}

func moneyPtr(m claim.Money) *claim.Money { return &m }

func validateDeductible(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	if c.Policy().Deductible().Sign() > 0 {
		return nil, nil
	}
	return []claim.AuditFinding{{
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityWarning,
		RuleName:    "Deductible Application",
		Title:       "Missing or non-positive deductible",
		Description: fmt.Sprintf("policy deductible is %s; no deductible is being applied to this claim", c.Policy().Deductible().String()),
		Recommendation: "Confirm the policy's documented deductible and apply it before settling the claim.",
	}}, nil
}

func validateCoverageA(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	items := c.ItemsWithPrefix(dwellingPrefixes...)
	total := sumTotals(items)
	limit := c.Policy().CoverageA()
	if !total.GreaterThan(limit) {
		return nil, nil
	}
	overage := total.Sub(limit)
	return []claim.AuditFinding{{
		Category:        claim.CategoryFinancial,
		Severity:        claim.SeverityCritical,
		RuleName:        "Coverage A Limit",
		Title:           "Dwelling estimate exceeds Coverage A",
		Description:     fmt.Sprintf("dwelling-code line items total %s against a Coverage A limit of %s", total.String(), limit.String()),
		AffectedItems:   codes(items),
		PotentialImpact: moneyPtr(overage),
		Recommendation:  "Verify Coverage A limit and consider policy endorsements or reduced scope.",
		Evidence: map[string]any{
			"total": total.String(), "limit": limit.String(),
		},
	}}, nil
}

func validateCoverageB(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var matched []claim.LineItem
	for _, li := range c.LineItems() {
		if classifier.MatchesOtherStructures(li.Text()) {
			matched = append(matched, li)
		}
	}
	total := sumTotals(matched)
	limit := c.Policy().CoverageB()
	if !total.GreaterThan(limit) {
		return nil, nil
	}
	overage := total.Sub(limit)
	return []claim.AuditFinding{{
		Category:        claim.CategoryFinancial,
		Severity:        claim.SeverityError,
		RuleName:        "Coverage B Limit",
		Title:           "Other-structures estimate exceeds Coverage B",
		Description:     fmt.Sprintf("other-structure line items total %s against a Coverage B limit of %s", total.String(), limit.String()),
		AffectedItems:   codes(matched),
		PotentialImpact: moneyPtr(overage),
		Recommendation:  "Confirm detached structures are covered and within limit.",
	}}, nil
}

func validateCoverageC(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	items := c.ItemsWithPrefix("CNT")
	total := sumTotals(items)
	limit := c.Policy().CoverageC()
	if !total.GreaterThan(limit) {
		return nil, nil
	}
	overage := total.Sub(limit)
	return []claim.AuditFinding{{
		Category:        claim.CategoryFinancial,
		Severity:        claim.SeverityError,
		RuleName:        "Coverage C Limit",
		Title:           "Contents estimate exceeds Coverage C",
		Description:     fmt.Sprintf("contents line items total %s against a Coverage C limit of %s", total.String(), limit.String()),
		AffectedItems:   codes(items),
		PotentialImpact: moneyPtr(overage),
		Recommendation:  "Verify contents inventory and Coverage C limit.",
	}}, nil
}

func validateWaterSubLimit(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	limit, ok := c.Policy().WaterDamageLimit()
	if !ok {
		return nil, nil
	}
	items := c.ItemsWithPrefix("WTR")
	total := sumTotals(items)
	if !total.GreaterThan(limit) {
		return nil, nil
	}
	overage := total.Sub(limit)
	return []claim.AuditFinding{{
		Category:        claim.CategoryFinancial,
		Severity:        claim.SeverityWarning,
		RuleName:        "Water Sub-limit",
		Title:           "Water remediation exceeds policy sub-limit",
		Description:     fmt.Sprintf("WTR-code line items total %s against a water damage sub-limit of %s", total.String(), limit.String()),
		AffectedItems:   codes(items),
		PotentialImpact: moneyPtr(overage),
		Recommendation:  "Confirm the water-damage sub-limit and negotiate scope if exceeded.",
	}}, nil
}

func validateMoldSubLimit(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	limit, ok := c.Policy().MoldLimit()
	if !ok {
		return nil, nil
	}
	var matched []claim.LineItem
	for _, li := range c.LineItems() {
		if classifier.MatchesMold(li.Text()) {
			matched = append(matched, li)
		}
	}
	total := sumTotals(matched)
	if !total.GreaterThan(limit) {
		return nil, nil
	}
	overage := total.Sub(limit)
	return []claim.AuditFinding{{
		Category:        claim.CategoryFinancial,
		Severity:        claim.SeverityWarning,
		RuleName:        "Mold Sub-limit",
		Title:           "Mold remediation exceeds policy sub-limit",
		Description:     fmt.Sprintf("mold-related line items total %s against a mold sub-limit of %s", total.String(), limit.String()),
		AffectedItems:   codes(matched),
		PotentialImpact: moneyPtr(overage),
		Recommendation:  "Confirm the mold sub-limit and whether additional endorsements apply.",
	}}, nil
}

var netClaimTolerance = claim.NewMoney(0.01)

func validateNetClaim(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	expected := c.GrossClaim().Sub(c.Policy().Deductible())
	if expected.IsNegative() {
		expected = claim.Zero
	}
	diff := c.NetClaim().Sub(expected).Abs()
	if !diff.GreaterThan(netClaimTolerance) {
		return nil, nil
	}
	return []claim.AuditFinding{{
		Category:    claim.CategoryFinancial,
		Severity:    claim.SeverityError,
		RuleName:    "Net Claim Calculation",
		Title:       "Net claim does not reconcile with gross claim and deductible",
		Description: fmt.Sprintf("net claim %s does not equal max(0, gross %s - deductible %s) = %s", c.NetClaim().String(), c.GrossClaim().String(), c.Policy().Deductible().String(), expected.String()),
		Recommendation: "Recompute the net claim from gross claim and deductible.",
		Evidence: map[string]any{
			"net_claim": c.NetClaim().String(), "expected_net_claim": expected.String(),
		},
	}}, nil
}
