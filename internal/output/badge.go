package output

import (
	"fmt"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// RenderBadge returns a compact, machine-greppable one-line risk
// summary, e.g.:
//
//	CLM-2024-WTR-001: risk=62/100 leakage=$1240.00 supplement_risk=$0.00 findings=9
//
// Grounded on the teacher's shields.io badge idiom (one compact derived
// line per report), with new, domain-specific content: this package
// does not produce a shields.io URL since no CI badge use case exists
// for a per-claim audit.
func RenderBadge(sc *claim.AuditScorecard) string {
	return fmt.Sprintf("%s: risk=%d/100 leakage=$%s supplement_risk=$%s findings=%d",
		sc.ClaimID,
		sc.Summary.RiskScore,
		sc.Summary.TotalPotentialLeakage.StringFixed(2),
		sc.Summary.TotalSupplementRisk.StringFixed(2),
		sc.Summary.TotalFindings,
	)
}
