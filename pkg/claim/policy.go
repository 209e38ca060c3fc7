package claim

import "github.com/pkg/errors"

// PolicyCoverage holds the four standard dwelling-policy coverage limits,
// the deductible, and optional sub-limits that narrow specific perils.
type PolicyCoverage struct {
	coverageA  Money // dwelling
	coverageB  Money // other structures
	coverageC  Money // personal property / contents
	coverageD  Money // loss of use
	deductible Money

	waterDamageLimit *Money
	moldLimit        *Money
	contentsLimit    *Money
}

// PolicyCoverageInput is the set of fields accepted by NewPolicyCoverage.
type PolicyCoverageInput struct {
	CoverageA  Money
	CoverageB  Money
	CoverageC  Money
	CoverageD  Money
	Deductible Money

	WaterDamageLimit *Money
	MoldLimit        *Money
	ContentsLimit    *Money
}

// NewPolicyCoverage validates and constructs a PolicyCoverage. The
// deductible and all four coverage limits must be non-negative; a zero
// deductible is still allowed through construction and is instead
// flagged by FIN-001 as a settlement concern.
func NewPolicyCoverage(in PolicyCoverageInput) (PolicyCoverage, error) {
	if in.Deductible.IsNegative() {
		return PolicyCoverage{}, errors.Errorf("policy coverage: deductible must be >= 0, got %s", in.Deductible.String())
	}
	for name, m := range map[string]Money{
		"coverage_a": in.CoverageA,
		"coverage_b": in.CoverageB,
		"coverage_c": in.CoverageC,
		"coverage_d": in.CoverageD,
	} {
		if m.IsNegative() {
			return PolicyCoverage{}, errors.Errorf("policy coverage: %s must be >= 0, got %s", name, m.String())
		}
	}
	for name, m := range map[string]*Money{
		"water_damage_limit": in.WaterDamageLimit,
		"mold_limit":         in.MoldLimit,
		"contents_limit":     in.ContentsLimit,
	} {
		if m != nil && m.IsNegative() {
			return PolicyCoverage{}, errors.Errorf("policy coverage: %s must be >= 0, got %s", name, m.String())
		}
	}

	return PolicyCoverage{
		coverageA:        in.CoverageA,
		coverageB:        in.CoverageB,
		coverageC:        in.CoverageC,
		coverageD:        in.CoverageD,
		deductible:       in.Deductible,
		waterDamageLimit: in.WaterDamageLimit,
		moldLimit:        in.MoldLimit,
		contentsLimit:    in.ContentsLimit,
	}, nil
}

// CoverageA returns the dwelling coverage limit.
func (p PolicyCoverage) CoverageA() Money { return p.coverageA }

// CoverageB returns the other-structures coverage limit.
func (p PolicyCoverage) CoverageB() Money { return p.coverageB }

// CoverageC returns the personal property coverage limit.
func (p PolicyCoverage) CoverageC() Money { return p.coverageC }

// CoverageD returns the loss-of-use coverage limit.
func (p PolicyCoverage) CoverageD() Money { return p.coverageD }

// Deductible returns the policy deductible. May be zero (FIN-001
// exists to catch that); construction rejects negative deductibles.
func (p PolicyCoverage) Deductible() Money { return p.deductible }

// WaterDamageLimit returns the water-damage sub-limit and whether it
// was set.
func (p PolicyCoverage) WaterDamageLimit() (Money, bool) {
	if p.waterDamageLimit == nil {
		return Zero, false
	}
	return *p.waterDamageLimit, true
}

// MoldLimit returns the mold sub-limit and whether it was set.
func (p PolicyCoverage) MoldLimit() (Money, bool) {
	if p.moldLimit == nil {
		return Zero, false
	}
	return *p.moldLimit, true
}

// ContentsLimit returns the contents sub-limit and whether it was set.
func (p PolicyCoverage) ContentsLimit() (Money, bool) {
	if p.contentsLimit == nil {
		return Zero, false
	}
	return *p.contentsLimit, true
}
