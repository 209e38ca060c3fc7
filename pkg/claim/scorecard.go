package claim

import "time"

// ClaimSummary is the compact snapshot of a claim's financials captured
// on the scorecard at build time.
type ClaimSummary struct {
	GrossClaim    Money
	NetClaim      Money
	LineItemCount int
	Deductible    Money
}

// AuditSummary tallies findings by category and totals the financial
// impact of leakage and supplement-risk findings separately.
type AuditSummary struct {
	TotalFindings          int
	ByCategory             map[AuditCategory]int
	TotalPotentialLeakage  Money
	TotalSupplementRisk    Money
	RiskScore              int
}

func newAuditSummary() AuditSummary {
	return AuditSummary{
		ByCategory:            make(map[AuditCategory]int),
		TotalPotentialLeakage: Zero,
		TotalSupplementRisk:   Zero,
	}
}

// AuditScorecard is the final output of an audit: the claim's findings,
// a rolled-up summary, and a 0-100 risk score. Built once by the
// aggregator and immutable thereafter.
type AuditScorecard struct {
	ClaimID        string
	AuditTimestamp time.Time
	ClaimSummary   ClaimSummary
	Findings       []AuditFinding
	Summary        AuditSummary
	// ModulesExecuted preserves insertion order with no duplicates (an
	// ordered set).
	ModulesExecuted []string
	Redacted        bool

	modulesSeen map[string]bool
}

// NewAuditScorecard constructs an empty scorecard for the given claim,
// snapshotting its financials into ClaimSummary. AuditTimestamp is left
// to the caller (e.g. the engine, at audit time) to avoid baking a
// clock into the domain model.
func NewAuditScorecard(c ClaimData) *AuditScorecard {
	return &AuditScorecard{
		ClaimID: c.ClaimID(),
		ClaimSummary: ClaimSummary{
			GrossClaim:    c.GrossClaim(),
			NetClaim:      c.NetClaim(),
			LineItemCount: len(c.LineItems()),
			Deductible:    c.Policy().Deductible(),
		},
		Summary:     newAuditSummary(),
		modulesSeen: make(map[string]bool),
	}
}

// AddFinding appends a finding and updates the summary counters.
func (s *AuditScorecard) AddFinding(f AuditFinding) {
	s.Findings = append(s.Findings, f)
	s.Summary.TotalFindings++
	s.Summary.ByCategory[f.Category]++

	switch f.Category {
	case CategoryLeakage:
		s.Summary.TotalPotentialLeakage = s.Summary.TotalPotentialLeakage.Add(f.Impact())
	case CategorySupplementRisk:
		s.Summary.TotalSupplementRisk = s.Summary.TotalSupplementRisk.Add(f.Impact())
	}
}

// AddModule records that a validator module executed against this
// claim. Idempotent: re-adding an already-recorded module is a no-op.
func (s *AuditScorecard) AddModule(name string) {
	if s.modulesSeen == nil {
		s.modulesSeen = make(map[string]bool)
	}
	if s.modulesSeen[name] {
		return
	}
	s.modulesSeen[name] = true
	s.ModulesExecuted = append(s.ModulesExecuted, name)
}

// CalculateRiskScore sets Summary.RiskScore to the sum of each
// finding's severity weight (info=5, warning=15, error=30,
// critical=50), capped at 100, and returns it.
func (s *AuditScorecard) CalculateRiskScore() int {
	total := 0
	for _, f := range s.Findings {
		total += f.Severity.weight()
	}
	if total > 100 {
		total = 100
	}
	s.Summary.RiskScore = total
	return total
}

// FindingsByCategory returns the subset of findings in the given
// category, in the order they were added.
func (s *AuditScorecard) FindingsByCategory(cat AuditCategory) []AuditFinding {
	var out []AuditFinding
	for _, f := range s.Findings {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

// FindingsBySeverity returns the subset of findings at the given
// severity, in the order they were added.
func (s *AuditScorecard) FindingsBySeverity(sev AuditSeverity) []AuditFinding {
	var out []AuditFinding
	for _, f := range s.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
