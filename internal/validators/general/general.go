// Package general implements the general repair validator: double-dip
// detection across the classifier's published groups, content
// protection for flooring work, trade labor minimums, and service-call
// consolidation.
package general

import (
	"fmt"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/classifier"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/rules"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// ModuleName identifies this validator in AuditScorecard.ModulesExecuted.
const ModuleName = "general_repair"

// RuleIDs lists this module's rules in registration/execution order.
var RuleIDs = []string{"GEN-001", "GEN-002", "GEN-003", "GEN-004"}

const serviceCallConsolidationRate = 0.25

// Register adds the general repair validator's rules to the given
// registry.
func Register(r *rules.Registry) {
	r.Add(rules.Rule{
		RuleID:      "GEN-001",
		Name:        "Double-Dip",
		Description: "Flags overlapping scope across the classifier's double-dip groups.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityWarning,
		Validate:    validateDoubleDip,
	})
	r.Add(rules.Rule{
		RuleID:      "GEN-002",
		Name:        "Content Protection",
		Description: "Flags flooring work billed with no content manipulation/blocking/padding.",
		Category:    claim.CategorySupplementRisk,
		Severity:    claim.SeverityInfo,
		Validate:    validateContentProtection,
	})
	r.Add(rules.Rule{
		RuleID:      "GEN-003",
		Name:        "Labor Minimums",
		Description: "Flags multiple minimum-charge line items for the same trade.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityWarning,
		Validate:    validateLaborMinimums,
	})
	r.Add(rules.Rule{
		RuleID:      "GEN-004",
		Name:        "Service-Call Consolidation",
		Description: "Flags more than two service-call/trip-charge line items.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityInfo,
		Validate:    validateServiceCallConsolidation,
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

func validateDoubleDip(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var findings []claim.AuditFinding

	for _, group := range classifier.DoubleDipGroups() {
		matchedPatternCount := 0
		seen := make(map[string]bool)
		var affected []claim.LineItem
		var overlapItems []claim.LineItem

		for _, pattern := range group.Patterns {
			patternMatched := false
			for _, li := range c.LineItems() {
				if !pattern(li.Text()) {
					continue
				}
				patternMatched = true
				if !seen[li.Code()+"|"+li.Description()] {
					seen[li.Code()+"|"+li.Description()] = true
					affected = append(affected, li)
				}
			}
			if patternMatched {
				matchedPatternCount++
			}
		}

		if matchedPatternCount < 2 {
			continue
		}

		if group.Overlap != nil {
			for _, li := range c.LineItems() {
				if group.Overlap(li.Text()) {
					overlapItems = append(overlapItems, li)
				}
			}
		}

		var impact *claim.Money
		if len(overlapItems) > 0 {
			impact = moneyPtr(sumTotals(overlapItems))
		}

		findings = append(findings, claim.AuditFinding{
			Category:        claim.CategoryLeakage,
			Severity:        claim.SeverityWarning,
			RuleName:        "Double-Dip",
			Title:           fmt.Sprintf("Possible double-billed scope: %s", group.Name),
			Description:     fmt.Sprintf("two or more patterns in the %q double-dip group each matched at least one line item", group.Name),
			AffectedItems:   codes(affected),
			PotentialImpact: impact,
			Recommendation:  "Confirm the overlapping scope is not billed twice.",
			Evidence: map[string]any{
				"group": group.Name,
			},
		})
	}

	return findings, nil
}

func validateContentProtection(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	hasFlooringWork := false
	hasContentManip := false
	var flooringItems []claim.LineItem

	for _, li := range c.LineItems() {
		if classifier.MatchesFlooringWork(li.Text()) {
			hasFlooringWork = true
			flooringItems = append(flooringItems, li)
		}
		if classifier.MatchesContentManipulation(li.Text()) {
			hasContentManip = true
		}
	}

	if !hasFlooringWork || hasContentManip {
		return nil, nil
	}

	return []claim.AuditFinding{{
		Category:      claim.CategorySupplementRisk,
		Severity:      claim.SeverityInfo,
		RuleName:      "Content Protection",
		Title:         "Flooring work billed with no content protection",
		Description:   "flooring work was found with no content manipulation, blocking, or padding line item",
		AffectedItems: codes(flooringItems),
		Recommendation: "Expect a supplement request for content protection if furniture was present.",
	}}, nil
}

func validateLaborMinimums(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var findings []claim.AuditFinding

	for _, trade := range classifier.Trades() {
		var matched []claim.LineItem
		for _, li := range c.LineItems() {
			if classifier.MatchesTradeMinimum(trade, li.Text()) {
				matched = append(matched, li)
			}
		}
		if len(matched) < 2 {
			continue
		}

		impact := sumTotals(matched).Sub(matched[0].Total())
		findings = append(findings, claim.AuditFinding{
			Category:        claim.CategoryLeakage,
			Severity:        claim.SeverityWarning,
			RuleName:        "Labor Minimums",
			Title:           fmt.Sprintf("Multiple %s minimum charges billed", trade),
			Description:     fmt.Sprintf("%d %s line items matched the trade's minimum-charge pattern", len(matched), trade),
			AffectedItems:   codes(matched),
			PotentialImpact: moneyPtr(impact),
			Recommendation:  fmt.Sprintf("Confirm only one %s minimum charge applies per visit.", trade),
		})
	}

	return findings, nil
}

func validateServiceCallConsolidation(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var matched []claim.LineItem
	for _, li := range c.LineItems() {
		if classifier.MatchesServiceCall(li.Text()) {
			matched = append(matched, li)
		}
	}

	if len(matched) <= 2 {
		return nil, nil
	}

	impact := sumTotals(matched).Mul(claim.NewMoney(serviceCallConsolidationRate))
	return []claim.AuditFinding{{
		Category:        claim.CategoryLeakage,
		Severity:        claim.SeverityInfo,
		RuleName:        "Service-Call Consolidation",
		Title:           "Multiple service calls could be consolidated",
		Description:     fmt.Sprintf("%d service-call/trip-charge line items were found; trips within the same visit are usually consolidated", len(matched)),
		AffectedItems:   codes(matched),
		PotentialImpact: moneyPtr(impact),
		Recommendation:  "Confirm each service call represents a genuinely separate site visit.",
	}}, nil
}
