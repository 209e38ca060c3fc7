package claim

import "github.com/pkg/errors"

// ClaimData is the fully-typed representation of one insurance claim
// submitted for audit.
type ClaimData struct {
	claimID          string
	claimDate        string // caller-supplied, opaque; empty if unset
	lineItems        []LineItem
	property         PropertyDetails
	policy           PolicyCoverage
	policyholderName string
	grossClaim       Money
	netClaim         Money
	metadata         map[string]any
}

// ClaimDataInput is the set of fields accepted by NewClaimData.
type ClaimDataInput struct {
	ClaimID          string
	ClaimDate        string
	LineItems        []LineItem
	Property         PropertyDetails
	Policy           PolicyCoverage
	PolicyholderName string
	Metadata         map[string]any
	// GrossClaim, nil means derive as the sum of LineItems totals.
	GrossClaim *Money
	// NetClaim, nil means derive as GrossClaim - Policy.Deductible
	// (floored at zero).
	NetClaim *Money
}

// NewClaimData validates and constructs a ClaimData, deriving
// GrossClaim and NetClaim when absent.
func NewClaimData(in ClaimDataInput) (ClaimData, error) {
	if in.ClaimID == "" {
		return ClaimData{}, errors.New("claim data: claim_id is required")
	}
	if len(in.LineItems) == 0 {
		return ClaimData{}, errors.Errorf("claim %q: at least one line item is required", in.ClaimID)
	}

	gross := Zero
	for _, li := range in.LineItems {
		gross = gross.Add(li.Total())
	}
	if in.GrossClaim != nil {
		gross = *in.GrossClaim
	}

	net := gross.Sub(in.Policy.Deductible())
	if net.IsNegative() {
		net = Zero
	}
	if in.NetClaim != nil {
		net = *in.NetClaim
	}

	return ClaimData{
		claimID:          in.ClaimID,
		claimDate:        in.ClaimDate,
		lineItems:        in.LineItems,
		property:         in.Property,
		policy:           in.Policy,
		policyholderName: in.PolicyholderName,
		grossClaim:       gross,
		netClaim:         net,
		metadata:         in.Metadata,
	}, nil
}

// ClaimID returns the claim's caller-supplied identifier.
func (c ClaimData) ClaimID() string { return c.claimID }

// ClaimDate returns the caller-supplied claim date, or "" if unset.
// Opaque to the domain model; callers own date parsing/formatting.
func (c ClaimData) ClaimDate() string { return c.claimDate }

// Metadata returns the claim's free-form caller metadata, or nil.
func (c ClaimData) Metadata() map[string]any { return c.metadata }

// LineItems returns the claim's priced estimate line items.
func (c ClaimData) LineItems() []LineItem { return c.lineItems }

// Property returns the claim's property details.
func (c ClaimData) Property() PropertyDetails { return c.property }

// Policy returns the claim's policy coverage.
func (c ClaimData) Policy() PolicyCoverage { return c.policy }

// PolicyholderName returns the policyholder's name, as submitted. May
// contain PII; see the redact package.
func (c ClaimData) PolicyholderName() string { return c.policyholderName }

// GrossClaim returns the total claimed amount before deductible,
// stored or derived from LineItems.
func (c ClaimData) GrossClaim() Money { return c.grossClaim }

// NetClaim returns the claimed amount after deductible, stored or
// derived.
func (c ClaimData) NetClaim() Money { return c.netClaim }

// ItemsWithPrefix returns the line items whose code starts with any of
// the given prefixes. Used by validators matching on Xactimate category
// codes (e.g. "CNT" for contents).
func (c ClaimData) ItemsWithPrefix(prefixes ...string) []LineItem {
	var out []LineItem
	for _, li := range c.lineItems {
		for _, p := range prefixes {
			if len(li.code) >= len(p) && li.code[:len(p)] == p {
				out = append(out, li)
				break
			}
		}
	}
	return out
}
