// Package redact implements PII redaction over claim and scorecard
// data: pattern-based redaction of string values (SSN, phone, email,
// and similar) combined with whole-value redaction of known PII field
// names, walking nested maps and slices, with an audit log of every
// substitution made.
package redact

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

const placeholder = "[REDACTED]"

// Entry is one substitution the redactor made.
type Entry struct {
	Original    string
	Replacement string
	Kind        string
	FieldPath   string
}

// patterns maps a PII kind name to the regex that detects it. The
// bank_account pattern is intentionally broad (any 8-17 digit run) and
// will over-redact numeric strings that aren't account numbers; kept
// as-is to match the conservative "when in doubt, redact" posture the
// rest of this package takes, and callers who need precision should
// prefer known-field redaction for that field instead.
var patterns = map[string]*regexp.Regexp{
	"ssn":              regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	"phone":            regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	"email":            regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
	"credit_card":      regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`),
	"bank_account":     regexp.MustCompile(`\b\d{8,17}\b`),
	"drivers_license":  regexp.MustCompile(`\b[A-Za-z]{1,2}\d{6,8}\b`),
	"date_of_birth":    regexp.MustCompile(`\b(?:0[1-9]|1[0-2])[/-](?:0[1-9]|[12]\d|3[01])[/-](?:19|20)\d{2}\b`),
	"zip_code":         regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),
	"address":          regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z0-9.\s]+\s(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|way|place|pl)\.?\b`),
	"name_title":       regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr)\.\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`),
}

// patternOrder controls the order patterns are tried, so that more
// specific patterns (ssn, email) run before broad ones (bank_account,
// zip_code) that could otherwise swallow them first.
var patternOrder = []string{
	"ssn", "email", "credit_card", "phone", "drivers_license",
	"date_of_birth", "address", "name_title", "bank_account", "zip_code",
}

// piiFields are known-PII dictionary keys (or substrings of keys,
// case-insensitive) whose entire value is replaced regardless of
// content.
var piiFields = []string{
	"name", "phone", "email", "address", "ssn", "dob", "date_of_birth",
	"account_number", "policyholder", "drivers_license", "credit_card",
}

// Redactor applies pattern- and field-name-based redaction and keeps an
// audit log of every substitution. The zero value is not usable;
// construct with New. Scoped to one engine/audit instance, matching the
// "no process-wide mutable state" design.
type Redactor struct {
	mu  sync.Mutex
	log []Entry
}

// New returns a ready-to-use Redactor with an empty log.
func New() *Redactor {
	return &Redactor{}
}

func isPIIField(name string) bool {
	lower := strings.ToLower(name)
	for _, f := range piiFields {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

func (r *Redactor) record(original, replacement, kind, fieldPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, Entry{Original: original, Replacement: replacement, Kind: kind, FieldPath: fieldPath})
}

// RedactString applies every pattern to s in turn and returns the
// redacted result. fieldPath is recorded on the audit log entry for
// each substitution (e.g. "line_items[2].description").
func (r *Redactor) RedactString(s string, fieldPath string) string {
	out := s
	for _, kind := range patternOrder {
		pattern := patterns[kind]
		out = pattern.ReplaceAllStringFunc(out, func(match string) string {
			r.record(match, placeholder, kind, fieldPath)
			return placeholder
		})
	}
	return out
}

// RedactValue applies field-name redaction first: if fieldName matches
// a known PII field, the whole value is replaced with [REDACTED]
// regardless of content or type. Otherwise strings are pattern-redacted
// and maps/slices are walked recursively.
func (r *Redactor) RedactValue(fieldName string, value any, fieldPath string) any {
	if isPIIField(fieldName) {
		if s, ok := value.(string); ok && s != placeholder {
			r.record(s, placeholder, "field_name", fieldPath)
		} else if !ok {
			r.record(fmt.Sprintf("%v", value), placeholder, "field_name", fieldPath)
		}
		return placeholder
	}

	switch v := value.(type) {
	case string:
		return r.RedactString(v, fieldPath)
	case map[string]any:
		return r.RedactMap(v, fieldPath)
	case []any:
		return r.RedactList(v, fieldPath)
	default:
		return value
	}
}

// RedactMap walks a map, applying RedactValue to each entry with a
// dotted field path.
func (r *Redactor) RedactMap(m map[string]any, basePath string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		path := k
		if basePath != "" {
			path = basePath + "." + k
		}
		out[k] = r.RedactValue(k, v, path)
	}
	return out
}

// RedactList walks a slice, applying RedactValue to each element with
// an indexed field path. The field name passed to RedactValue is "",
// since a list element has no key of its own.
func (r *Redactor) RedactList(l []any, basePath string) []any {
	out := make([]any, len(l))
	for i, v := range l {
		path := fmt.Sprintf("%s[%d]", basePath, i)
		out[i] = r.RedactValue("", v, path)
	}
	return out
}

// RedactClaimID replaces claimID with "CLM-[REDACTED]" if it contains
// any PII pattern, preserving the "CLM-" structure. Otherwise returns
// claimID unchanged.
func (r *Redactor) RedactClaimID(claimID string) string {
	for _, kind := range patternOrder {
		if patterns[kind].MatchString(claimID) {
			r.record(claimID, "CLM-[REDACTED]", kind, "claim_id")
			return "CLM-[REDACTED]"
		}
	}
	return claimID
}

// redactLineItems walks each line item's free-text fields (description,
// room) the same way RedactMap walks a generic map entry, rebuilding
// each item through NewLineItem. Code, quantity, pricing, and days are
// carried over unchanged: they are not free text an estimator could
// populate with PII.
func (r *Redactor) redactLineItems(items []claim.LineItem, basePath string) ([]claim.LineItem, error) {
	out := make([]claim.LineItem, len(items))
	for i, li := range items {
		path := fmt.Sprintf("%s[%d]", basePath, i)
		description := fmt.Sprintf("%v", r.RedactValue("description", li.Description(), path+".description"))
		room := fmt.Sprintf("%v", r.RedactValue("room", li.Room(), path+".room"))

		var days *int
		if d, ok := li.Days(); ok {
			days = &d
		}
		total := li.Total()

		redacted, err := claim.NewLineItem(claim.LineItemInput{
			Code:        li.Code(),
			Description: description,
			Quantity:    li.Quantity(),
			Unit:        li.Unit(),
			UnitPrice:   li.UnitPrice(),
			Total:       &total,
			Category:    li.Category(),
			Room:        room,
			Days:        days,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "redact line item %d", i)
		}
		out[i] = redacted
	}
	return out, nil
}

// redactProperty walks the property's affected rooms, redacting each
// room's name the same way a "name" key in a generic map would be
// redacted: matched in piiFields, so the whole value is replaced
// regardless of content.
func (r *Redactor) redactProperty(p claim.PropertyDetails, basePath string) (claim.PropertyDetails, error) {
	rooms := p.AffectedRooms()
	out := make([]claim.Room, len(rooms))
	for i, room := range rooms {
		path := fmt.Sprintf("%s.affected_rooms[%d]", basePath, i)
		name := fmt.Sprintf("%v", r.RedactValue("name", room.Name(), path+".name"))
		affected := room.Affected()

		redacted, err := claim.NewRoom(claim.RoomInput{
			Name:      name,
			Sqft:      room.Sqft(),
			RoomType:  room.RoomType(),
			FloorType: room.FloorType(),
			Affected:  &affected,
		})
		if err != nil {
			return claim.PropertyDetails{}, errors.Wrapf(err, "redact room %d", i)
		}
		out[i] = redacted
	}

	total := p.TotalAffectedSqft()
	return claim.NewPropertyDetails(claim.PropertyDetailsInput{
		AffectedRooms:     out,
		WaterCategory:     p.WaterCategory(),
		TotalAffectedSqft: &total,
		PropertyType:      p.PropertyType(),
	})
}

// RedactClaim returns a copy of c with its claim id and policyholder
// name redacted, its metadata, line items, and property walked
// recursively for free-text PII, and its policy carried over unchanged
// (policy coverage holds no free text, only monetary limits).
func (r *Redactor) RedactClaim(c claim.ClaimData) (claim.ClaimData, error) {
	redactedID := r.RedactClaimID(c.ClaimID())

	name := c.PolicyholderName()
	if name != "" {
		name = fmt.Sprintf("%v", r.RedactValue("policyholder_name", name, "policyholder_name"))
	}

	var metadata map[string]any
	if c.Metadata() != nil {
		metadata = r.RedactMap(c.Metadata(), "metadata")
	}

	lineItems, err := r.redactLineItems(c.LineItems(), "line_items")
	if err != nil {
		return claim.ClaimData{}, errors.Wrap(err, "redact claim")
	}

	property, err := r.redactProperty(c.Property(), "property_details")
	if err != nil {
		return claim.ClaimData{}, errors.Wrap(err, "redact claim")
	}

	gross := c.GrossClaim()
	net := c.NetClaim()
	return claim.NewClaimData(claim.ClaimDataInput{
		ClaimID:          redactedID,
		ClaimDate:        c.ClaimDate(),
		LineItems:        lineItems,
		Property:         property,
		Policy:           c.Policy(),
		PolicyholderName: name,
		Metadata:         metadata,
		GrossClaim:       &gross,
		NetClaim:         &net,
	})
}

// RedactScorecard returns a copy of sc with PII patterns redacted out
// of finding text (title, description, recommendation, and any string
// evidence values), Redacted set to true. Affected-item codes and
// monetary fields are left untouched: codes are opaque trade codes, not
// PII, and redacting dollar amounts would corrupt the audit trail.
func (r *Redactor) RedactScorecard(sc *claim.AuditScorecard) *claim.AuditScorecard {
	out := *sc
	out.Findings = make([]claim.AuditFinding, len(sc.Findings))
	for i, f := range sc.Findings {
		path := fmt.Sprintf("findings[%d]", i)
		redacted := f
		redacted.Title = r.RedactString(f.Title, path+".title")
		redacted.Description = r.RedactString(f.Description, path+".description")
		redacted.Recommendation = r.RedactString(f.Recommendation, path+".recommendation")
		if f.Evidence != nil {
			evidencePath := path + ".evidence"
			ev := make(map[string]any, len(f.Evidence))
			for k, v := range f.Evidence {
				ev[k] = r.RedactValue(k, v, evidencePath+"."+k)
			}
			redacted.Evidence = ev
		}
		out.Findings[i] = redacted
	}
	out.Redacted = true
	return &out
}

// Log returns every substitution made so far, in order.
func (r *Redactor) Log() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.log...)
}

// ClearLog discards the accumulated audit log.
func (r *Redactor) ClearLog() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = nil
}

// Summary tallies the audit log by kind. A supplemental convenience
// surfaced by the CLI alongside the raw log.
func (r *Redactor) Summary() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int)
	for _, e := range r.log {
		out[e.Kind]++
	}
	return out
}
