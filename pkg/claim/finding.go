package claim

// AuditCategory classifies what kind of issue a finding represents, not
// which validator module produced it (see ModulesExecuted on
// AuditScorecard for that).
type AuditCategory string

const (
	// CategoryFinancial covers coverage-limit and deductible/net-claim
	// arithmetic issues.
	CategoryFinancial AuditCategory = "financial"
	// CategoryLeakage covers billing leakage: overages, double-dipping,
	// and other amounts likely to be disputed or clawed back.
	CategoryLeakage AuditCategory = "leakage"
	// CategorySupplementRisk covers items likely to generate a
	// supplement request later (under-scoped work, missing prep).
	CategorySupplementRisk AuditCategory = "supplement_risk"
)

// Valid reports whether c is a known audit category.
func (c AuditCategory) Valid() bool {
	switch c {
	case CategoryFinancial, CategoryLeakage, CategorySupplementRisk:
		return true
	default:
		return false
	}
}

// AuditSeverity ranks how serious a finding is.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "info"
	SeverityWarning  AuditSeverity = "warning"
	SeverityError    AuditSeverity = "error"
	SeverityCritical AuditSeverity = "critical"
)

// Valid reports whether s is a known severity.
func (s AuditSeverity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	default:
		return false
	}
}

// weight returns the risk-score contribution of a severity level. Used
// by AuditScorecard.CalculateRiskScore.
func (s AuditSeverity) weight() int {
	switch s {
	case SeverityInfo:
		return 5
	case SeverityWarning:
		return 15
	case SeverityError:
		return 30
	case SeverityCritical:
		return 50
	default:
		return 0
	}
}

// AuditFinding is one issue raised by a rule against a claim.
type AuditFinding struct {
	FindingID   string
	RuleName    string
	Category    AuditCategory
	Severity    AuditSeverity
	Title       string
	Description string
	// AffectedItems lists the Xactimate line-item codes this finding is
	// about.
	AffectedItems []string
	// PotentialImpact is the dollar amount this finding represents, if
	// quantifiable. Nil when not applicable.
	PotentialImpact *Money
	Recommendation  string
	// Evidence carries rule-specific structured detail (expected vs.
	// actual counts, error kind/message for a rule-execution failure).
	Evidence map[string]any
}

// Impact returns the finding's potential impact, or Zero if none was
// set. A convenience for summation without nil-checking at call sites.
func (f AuditFinding) Impact() Money {
	if f.PotentialImpact == nil {
		return Zero
	}
	return *f.PotentialImpact
}
