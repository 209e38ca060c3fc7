// Package flooring implements the flooring validator: four rules on
// waste percentage by flooring type, carpet/pad tear-out overlap,
// missing floor prep, and missing transition strips.
package flooring

import (
	"fmt"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/classifier"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/rules"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// ModuleName identifies this validator in AuditScorecard.ModulesExecuted.
const ModuleName = "flooring"

// RuleIDs lists this module's rules in registration/execution order.
var RuleIDs = []string{"FLR-001", "FLR-002", "FLR-003", "FLR-004"}

var wasteThresholds = map[string]float64{
	"carpet":          0.10,
	"hardwood":        0.15,
	"tile":            0.15,
	"vinyl_laminate":  0.10,
}

// Register adds the flooring validator's rules to the given registry.
func Register(r *rules.Registry) {
	r.Add(rules.Rule{
		RuleID:      "FLR-001",
		Name:        "Waste Audit",
		Description: "Flags flooring material waste percentages above trade norms.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityWarning,
		Validate:    validateWasteAudit,
	})
	r.Add(rules.Rule{
		RuleID:      "FLR-002",
		Name:        "Carpet/Pad Tear-out Overlap",
		Description: "Flags separately billed carpet-only and pad-only tear-out.",
		Category:    claim.CategoryLeakage,
		Severity:    claim.SeverityWarning,
		Validate:    validateCarpetPadOverlap,
	})
	r.Add(rules.Rule{
		RuleID:      "FLR-003",
		Name:        "Floor Prep Missing",
		Description: "Flags hardwood or tile installs with no floor-leveling line item.",
		Category:    claim.CategorySupplementRisk,
		Severity:    claim.SeverityInfo,
		Validate:    validateFloorPrepMissing,
	})
	r.Add(rules.Rule{
		RuleID:      "FLR-004",
		Name:        "Material Matching",
		Description: "Flags flooring installs spanning multiple rooms with no transition strips.",
		Category:    claim.CategorySupplementRisk,
		Severity:    claim.SeverityInfo,
		Validate:    validateMaterialMatching,
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

// flooringType returns the first matching flooring type for an item,
// in the fixed precedence order {carpet, hardwood, tile, vinyl-or-laminate},
// or "" if none match.
func flooringType(a classifier.Attributes) string {
	switch {
	case a.IsCarpet:
		return "carpet"
	case a.IsHardwood:
		return "hardwood"
	case a.IsTile:
		return "tile"
	case a.IsVinyl || a.IsLaminate:
		return "vinyl_laminate"
	default:
		return ""
	}
}

func validateWasteAudit(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	type bucket struct {
		material claim.Money
		waste    claim.Money
		items    []claim.LineItem
	}
	buckets := make(map[string]*bucket)

	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		ft := flooringType(a)
		if ft == "" {
			continue
		}
		b, ok := buckets[ft]
		if !ok {
			b = &bucket{material: claim.Zero, waste: claim.Zero}
			buckets[ft] = b
		}
		if a.IsInstall {
			b.material = b.material.Add(li.Total())
			b.items = append(b.items, li)
		}
		if a.IsWaste {
			b.waste = b.waste.Add(li.Total())
			b.items = append(b.items, li)
		}
	}

	var findings []claim.AuditFinding
	// Deterministic iteration order over the fixed type list.
	for _, ft := range []string{"carpet", "hardwood", "tile", "vinyl_laminate"} {
		b, ok := buckets[ft]
		if !ok || b.material.IsZero() {
			continue
		}
		threshold := wasteThresholds[ft]
		ratio, _ := b.waste.Div(b.material).Float64()
		if ratio <= threshold {
			continue
		}
		thresholdAmount := b.material.Mul(claim.NewMoney(threshold))
		impact := b.waste.Sub(thresholdAmount)
		findings = append(findings, claim.AuditFinding{
			Category:        claim.CategoryLeakage,
			Severity:        claim.SeverityWarning,
			RuleName:        "Waste Audit",
			Title:           fmt.Sprintf("%s waste exceeds trade norm", ft),
			Description:     fmt.Sprintf("%s waste is %.1f%% of material cost, exceeding the %.0f%% norm", ft, ratio*100, threshold*100),
			AffectedItems:   codes(b.items),
			PotentialImpact: moneyPtr(impact),
			Recommendation:  "Confirm waste factor against the room layout and material cut sheets.",
		})
	}
	return findings, nil
}

func validateCarpetPadOverlap(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var carpetOnly, padOnly []claim.LineItem
	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		if !a.IsTearOut {
			continue
		}
		switch {
		case a.IsCarpet && !a.IsPad:
			carpetOnly = append(carpetOnly, li)
		case a.IsPad && !a.IsCarpet:
			padOnly = append(padOnly, li)
		}
	}

	if len(carpetOnly) == 0 || len(padOnly) == 0 {
		return nil, nil
	}

	impact := sumTotals(padOnly)
	affected := append(append([]claim.LineItem{}, carpetOnly...), padOnly...)
	return []claim.AuditFinding{{
		Category:        claim.CategoryLeakage,
		Severity:        claim.SeverityWarning,
		RuleName:        "Carpet/Pad Tear-out Overlap",
		Title:           "Carpet and pad tear-out billed separately",
		Description:     "separate carpet-only and pad-only tear-out line items were found; pad removal is typically included with carpet tear-out",
		AffectedItems:   codes(affected),
		PotentialImpact: moneyPtr(impact),
		Recommendation:  "Confirm pad tear-out is not already covered by the carpet tear-out line.",
	}}, nil
}

func validateFloorPrepMissing(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	var findings []claim.AuditFinding

	hasLeveling := false
	var hardwoodInstalls, tileInstalls []claim.LineItem
	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		if a.IsLeveling {
			hasLeveling = true
		}
		if a.IsHardwood && a.IsInstall {
			hardwoodInstalls = append(hardwoodInstalls, li)
		}
		if a.IsTile && a.IsInstall {
			tileInstalls = append(tileInstalls, li)
		}
	}

	if len(hardwoodInstalls) > 0 && !hasLeveling {
		findings = append(findings, claim.AuditFinding{
			Category:      claim.CategorySupplementRisk,
			Severity:      claim.SeverityInfo,
			RuleName:      "Floor Prep Missing",
			Title:         "Hardwood install billed with no floor prep",
			Description:   "hardwood install/replace items found with no leveling, prep, or subfloor line item",
			AffectedItems: codes(hardwoodInstalls),
			Recommendation: "Expect a supplement request for floor prep if substrate requires it.",
		})
	}
	if len(tileInstalls) > 0 && !hasLeveling {
		findings = append(findings, claim.AuditFinding{
			Category:      claim.CategorySupplementRisk,
			Severity:      claim.SeverityInfo,
			RuleName:      "Floor Prep Missing",
			Title:         "Tile install billed with no floor prep",
			Description:   "tile install/replace items found with no leveling, prep, or subfloor line item",
			AffectedItems: codes(tileInstalls),
			Recommendation: "Expect a supplement request for floor prep if substrate requires it.",
		})
	}

	return findings, nil
}

func validateMaterialMatching(c claim.ClaimData, ctx rules.Context) ([]claim.AuditFinding, error) {
	rooms := make(map[string]bool)
	hasTransition := false
	var installs []claim.LineItem

	for _, li := range c.LineItems() {
		a := ctx.Classifier.Parse(li.Code(), li.Description())
		if flooringType(a) != "" && a.IsInstall {
			installs = append(installs, li)
			if li.Room() != "" {
				rooms[li.Room()] = true
			}
		}
		if classifier.MatchesTransition(li.Text()) {
			hasTransition = true
		}
	}

	if len(rooms) < 2 || hasTransition {
		return nil, nil
	}

	return []claim.AuditFinding{{
		Category:      claim.CategorySupplementRisk,
		Severity:      claim.SeverityInfo,
		RuleName:      "Material Matching",
		Title:         "Flooring install spans multiple rooms with no transitions",
		Description:   fmt.Sprintf("flooring install items span %d rooms with no transition/T-mold/reducer/threshold line item", len(rooms)),
		AffectedItems: codes(installs),
		Recommendation: "Expect a supplement request for transition strips between rooms.",
	}}, nil
}
