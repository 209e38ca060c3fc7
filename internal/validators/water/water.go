// Package water implements the water remediation validator: five rules
// on equipment counts relative to affected square footage, monitoring
// labor versus equipment days, water-category/PPE consistency, and
// equipment-days consistency across equipment types.
package water

import (
	"fmt"
	"math"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/classifier"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/rules"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// ModuleName identifies this validator in AuditScorecard.ModulesExecuted.
const ModuleName = "water_remediation"

// RuleIDs lists this module's rules in registration/execution order.
var RuleIDs = []string{"WTR-001", "WTR-002", "WTR-003", "WTR-004", "WTR-005"}

const (
	airMoverSqftMin  = 50.0
	airMoverSqftMax  = 70.0
	dehumidifierSqft = 1000.0

	airMoverDailyRate   = 35.0
	monitoringDailyRate = 75.0
)

// Register adds the water remediation validator's rules to the given
// registry.
func Register(r *rules.Registry) {
	r.Add(rules.Rule{
		RuleID:      "WTR-001",
		Name:        "Air Mover Count",
		Description: "Compares billed air mover count against affected square footage.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityWarning,
		Validate:    validateAirMoverCount,
	})
	r.Add(rules.Rule{
		RuleID:      "WTR-002",
		Name:        "Dehumidifier Count",
		Description: "Compares billed dehumidifier count against affected square footage.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityWarning,
		Validate:    validateDehumidifierCount,
	})
	r.Add(rules.Rule{
		RuleID:      "WTR-003",
		Name:        "Monitoring Labor",
		Description: "Compares moisture-monitoring visits against equipment days on site.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityError,
		Validate:    validateMonitoringLabor,
	})
	r.Add(rules.Rule{
		RuleID:      "WTR-004",
		Name:        "Category Mismatch",
		Description: "Flags a documented clean-water loss billing PPE/antimicrobial work.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityError,
		Validate:    validateCategoryMismatch,
	})
	r.Add(rules.Rule{
		RuleID:      "WTR-005",
		Name:        "Equipment Days Consistency",
		Description: "Flags inconsistent days-on-site across equipment types.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityInfo,
		Validate:    validateEquipmentDaysConsistency,
	})
}

func sumQuantities(items []claim.LineItem) float64 {
	total := 0.0
	for _, li := range items {
		total += li.Quantity()
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

func itemsMatching(c claim.ClaimData, ctx rules.Context, match func(classifier.Attributes) bool) []claim.LineItem {
	var out []claim.LineItem
	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		if match(a) {
			out = append(out, li)
		}
	}
	return out
}

func validateAirMoverCount(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	items := itemsMatching(c, ctx, func(a classifier.Attributes) bool { return a.IsAirMover })
	actual := sumQuantities(items)
	sqft := c.Property().TotalAffectedSqft()
	if actual == 0 || sqft <= 0 {
		return nil, nil
	}

	maxExpected := sqft / airMoverSqftMin
	minExpected := sqft / airMoverSqftMax

	if actual > 1.2*maxExpected {
		impact := (actual - math.Floor(maxExpected)) * airMoverDailyRate
		impactMoney := claim.NewMoney(impact)
		return []claim.AuditFinding{{
			Category:        claim.CategoryLeakage,
			Severity:        claim.SeverityWarning,
			RuleName:        "Air Mover Count",
			Title:           "Air mover count exceeds expected range",
			Description:     fmt.Sprintf("billed %v air movers against an expected max of %.1f for %.0f affected sqft", actual, maxExpected, sqft),
			AffectedItems:   codes(items),
			PotentialImpact: &impactMoney,
			Recommendation:  "Confirm the affected square footage and reconcile equipment count.",
			Evidence: map[string]any{
				"actual": actual, "max_expected": maxExpected, "sqft": sqft,
			},
		}}, nil
	}

	if actual < 0.5*minExpected {
		return []claim.AuditFinding{{
			Category:      claim.CategorySupplementRisk,
			Severity:      claim.SeverityInfo,
			RuleName:      "Air Mover Count",
			Title:         "Air mover count appears under-scoped",
			Description:   fmt.Sprintf("billed %v air movers against an expected min of %.1f for %.0f affected sqft; a supplement is likely", actual, minExpected, sqft),
			AffectedItems: codes(items),
			Recommendation: "Expect a supplement request for additional drying equipment.",
			Evidence: map[string]any{
				"actual": actual, "min_expected": minExpected, "sqft": sqft,
			},
		}}, nil
	}

	return nil, nil
}

func validateDehumidifierCount(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	items := itemsMatching(c, ctx, func(a classifier.Attributes) bool { return a.IsDehumidifier })
	actual := sumQuantities(items)
	sqft := c.Property().TotalAffectedSqft()
	if actual == 0 || sqft <= 0 {
		return nil, nil
	}

	expected := math.Max(1, sqft/dehumidifierSqft)
	if actual <= 2*expected {
		return nil, nil
	}

	return []claim.AuditFinding{{
		Category:      claim.CategoryLeakage,
		Severity:      claim.SeverityWarning,
		RuleName:      "Dehumidifier Count",
		Title:         "Dehumidifier count exceeds expected range",
		Description:   fmt.Sprintf("billed %v dehumidifiers against an expected %.1f for %.0f affected sqft", actual, expected, sqft),
		AffectedItems: codes(items),
		Recommendation: "Confirm the affected square footage and reconcile equipment count.",
		Evidence: map[string]any{
			"actual": actual, "expected": expected, "sqft": sqft,
		},
	}}, nil
}

func validateMonitoringLabor(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var monitoring []claim.LineItem
	var equipment []claim.LineItem
	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		if classifier.MatchesMonitoringLabor(li.Text()) {
			monitoring = append(monitoring, li)
		}
		if a.IsAirMover || a.IsDehumidifier {
			equipment = append(equipment, li)
		}
	}

	m := sumQuantities(monitoring)
	e := 0.0
	for _, li := range equipment {
		if v := li.DaysOrQuantity(); v > e {
			e = v
		}
	}

	if m == 0 {
		return nil, nil
	}

	if e == 0 {
		impact := claim.NewMoney(m * monitoringDailyRate)
		return []claim.AuditFinding{{
			Category:        claim.CategoryLeakage,
			Severity:        claim.SeverityError,
			RuleName:        "Monitoring Labor",
			Title:           "Monitoring labor billed with no equipment on site",
			Description:     fmt.Sprintf("billed %v monitoring visits but no drying equipment days are documented", m),
			AffectedItems:   codes(monitoring),
			PotentialImpact: &impact,
			Recommendation:  "Verify equipment was deployed for the billed monitoring period.",
		}}, nil
	}

	if m > e+2 {
		impact := claim.NewMoney((m - e) * monitoringDailyRate)
		return []claim.AuditFinding{{
			Category:        claim.CategoryLeakage,
			Severity:        claim.SeverityWarning,
			RuleName:        "Monitoring Labor",
			Title:           "Monitoring labor exceeds equipment days",
			Description:     fmt.Sprintf("billed %v monitoring visits against %v equipment days", m, e),
			AffectedItems:   codes(monitoring),
			PotentialImpact: &impact,
			Recommendation:  "Reconcile monitoring visit count with equipment days on site.",
		}}, nil
	}

	return nil, nil
}

func validateCategoryMismatch(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	if c.Property().WaterCategory() != claim.WaterCategory1 {
		return nil, nil
	}

	flagged := itemsMatching(c, ctx, func(a classifier.Attributes) bool { return a.IsPPE || a.IsAntimicrobial })
	if len(flagged) == 0 {
		return nil, nil
	}
	total := claim.Zero
	for _, li := range flagged {
		total = total.Add(li.Total())
	}
	return []claim.AuditFinding{{
		Category:        claim.CategoryLeakage,
		Severity:        claim.SeverityError,
		RuleName:        "Category Mismatch",
		Title:           "Category 1 loss billing contaminated-water remediation",
		Description:     "the claim documents a Category 1 (clean water) loss but bills PPE/hazmat or antimicrobial treatment items",
		AffectedItems:   codes(flagged),
		PotentialImpact: moneyPtr(total),
		Recommendation:  "Confirm water category classification with the initial assessment.",
	}}, nil
}

func moneyPtr(m claim.Money) *claim.Money { return &m }

func validateEquipmentDaysConsistency(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	maxByType := make(map[string]float64)
	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		var kind string
		switch {
		case a.IsAirMover:
			kind = "air_mover"
		case a.IsDehumidifier:
			kind = "dehumidifier"
		default:
			continue
		}
		if v := li.DaysOrQuantity(); v > maxByType[kind] {
			maxByType[kind] = v
		}
	}

	if len(maxByType) < 2 {
		return nil, nil
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range maxByType {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max-min <= 2 {
		return nil, nil
	}

	return []claim.AuditFinding{{
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityInfo,
		RuleName:    "Equipment Days Consistency",
		Title:       "Equipment days vary widely across equipment types",
		Description: fmt.Sprintf("equipment days on site range from %.0f to %.0f across equipment types", min, max),
		Evidence: map[string]any{
			"max_by_type": maxByType,
		},
	}}, nil
}
