// Package scorecard aggregates findings from the validator modules into
// a claim's AuditScorecard: running counters, category totals, and the
// final 0-100 risk score.
package scorecard

import (
	"time"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// Builder accumulates findings and executed-module names for one
// claim's audit, then emits an immutable AuditScorecard.
type Builder struct {
	sc  *claim.AuditScorecard
	now time.Time
}

// NewBuilder initializes a scorecard for the given claim, snapshotting
// its financials into ClaimSummary.
func NewBuilder(c claim.ClaimData) *Builder {
	return &Builder{
		sc:  claim.NewAuditScorecard(c),
		now: time.Now().UTC(),
	}
}

// AddFinding appends one finding and updates the scorecard's counters.
func (b *Builder) AddFinding(f claim.AuditFinding) *Builder {
	b.sc.AddFinding(f)
	return b
}

// AddFindings appends a batch of findings in order.
func (b *Builder) AddFindings(findings []claim.AuditFinding) *Builder {
	for _, f := range findings {
		b.sc.AddFinding(f)
	}
	return b
}

// AddModule records that a validator module executed, in the order
// this is called.
func (b *Builder) AddModule(name string) *Builder {
	b.sc.AddModule(name)
	return b
}

// Build finalizes the scorecard: stamps the audit timestamp, computes
// the risk score, and returns the scorecard. The Builder should not be
// reused after Build.
func (b *Builder) Build() *claim.AuditScorecard {
	b.sc.AuditTimestamp = b.now
	b.sc.CalculateRiskScore()
	return b.sc
}
