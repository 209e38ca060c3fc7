package redact

import (
	"testing"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

func TestRedactString_SSN(t *testing.T) {
	r := New()
	got := r.RedactString("SSN on file: 123-45-6789", "notes")
	want := "SSN on file: [REDACTED]"
	if got != want {
		t.Errorf("RedactString() = %q, want %q", got, want)
	}
	if len(r.Log()) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(r.Log()))
	}
	if r.Log()[0].Kind != "ssn" {
		t.Errorf("Kind = %q, want ssn", r.Log()[0].Kind)
	}
}

func TestRedactString_Email(t *testing.T) {
	r := New()
	got := r.RedactString("contact jane.doe@example.com for details", "notes")
	if got != "contact [REDACTED] for details" {
		t.Errorf("RedactString() = %q", got)
	}
}

func TestRedactValue_FieldNameWinsOverPattern(t *testing.T) {
	r := New()
	// "policyholder_name" is a known field; the value has no PII
	// pattern in it at all, but the whole thing must still be replaced.
	got := r.RedactValue("policyholder_name", "Plain Name With No Pattern", "policyholder_name")
	if got != placeholder {
		t.Errorf("RedactValue() = %v, want %q", got, placeholder)
	}
}

func TestRedactValue_NonPIIFieldOnlyRedactsMatchedPatterns(t *testing.T) {
	r := New()
	got := r.RedactValue("notes", "call 555-123-4567 about the claim", "notes")
	if got == "call 555-123-4567 about the claim" {
		t.Error("expected phone pattern to be redacted")
	}
}

func TestRedactMap_WalksNestedStructures(t *testing.T) {
	r := New()
	m := map[string]any{
		"contact": map[string]any{
			"email": "a@b.com",
			"notes": "no pii here",
		},
	}
	out := r.RedactMap(m, "")
	contact := out["contact"].(map[string]any)
	if contact["email"] != placeholder {
		t.Errorf("nested email = %v, want redacted", contact["email"])
	}
	if contact["notes"] != "no pii here" {
		t.Errorf("unrelated nested value should be untouched, got %v", contact["notes"])
	}
}

func TestRedactClaimID_ReplacesWhenPIIPresent(t *testing.T) {
	r := New()
	got := r.RedactClaimID("CLM-jane.doe@example.com")
	if got != "CLM-[REDACTED]" {
		t.Errorf("RedactClaimID() = %q, want CLM-[REDACTED]", got)
	}
}

func TestRedactClaimID_LeavesCleanIDUnchanged(t *testing.T) {
	r := New()
	got := r.RedactClaimID("CLM-1001")
	if got != "CLM-1001" {
		t.Errorf("RedactClaimID() = %q, want unchanged", got)
	}
}

func TestRedactClaim_RedactsPolicyholderName(t *testing.T) {
	r := New()
	item, err := claim.NewLineItem(claim.LineItemInput{Code: "GEN_MISC", Quantity: 1, UnitPrice: claim.NewMoney(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := claim.NewClaimData(claim.ClaimDataInput{
		ClaimID:          "CLM-1001",
		LineItems:        []claim.LineItem{item},
		PolicyholderName: "Jane Doe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	redacted, err := r.RedactClaim(c)
	if err != nil {
		t.Fatalf("RedactClaim() error: %v", err)
	}
	if redacted.PolicyholderName() != placeholder {
		t.Errorf("PolicyholderName() = %q, want %q", redacted.PolicyholderName(), placeholder)
	}
	if redacted.ClaimID() != "CLM-1001" {
		t.Errorf("ClaimID() = %q, want unchanged (no PII pattern)", redacted.ClaimID())
	}
}

func TestRedactClaim_RedactsLineItemDescriptionAndRoomName(t *testing.T) {
	r := New()
	item, err := claim.NewLineItem(claim.LineItemInput{
		Code:        "GEN_MISC",
		Description: "per instructions from jane.doe@example.com",
		Quantity:    1,
		UnitPrice:   claim.NewMoney(10),
		Room:        "Kitchen",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room, err := claim.NewRoom(claim.RoomInput{Name: "Kitchen", Sqft: 120})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	property, err := claim.NewPropertyDetails(claim.PropertyDetailsInput{AffectedRooms: []claim.Room{room}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := claim.NewClaimData(claim.ClaimDataInput{
		ClaimID:   "CLM-1002",
		LineItems: []claim.LineItem{item},
		Property:  property,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	redacted, err := r.RedactClaim(c)
	if err != nil {
		t.Fatalf("RedactClaim() error: %v", err)
	}
	if got := redacted.LineItems()[0].Description(); got == item.Description() {
		t.Errorf("Description() = %q, want email pattern redacted", got)
	}
	if got := redacted.Property().AffectedRooms()[0].Name(); got != placeholder {
		t.Errorf("room Name() = %q, want %q", got, placeholder)
	}
}

func TestRedactString_IsIdempotent(t *testing.T) {
	r := New()
	once := r.RedactString("123-45-6789", "notes")
	twice := r.RedactString(once, "notes")
	if once != twice {
		t.Errorf("expected idempotent redaction, got %q then %q", once, twice)
	}
}

func TestSummary_TalliesByKind(t *testing.T) {
	r := New()
	r.RedactString("123-45-6789 and a@b.com", "notes")
	summary := r.Summary()
	if summary["ssn"] != 1 {
		t.Errorf("summary[ssn] = %d, want 1", summary["ssn"])
	}
	if summary["email"] != 1 {
		t.Errorf("summary[email] = %d, want 1", summary["email"])
	}
}

func TestClearLog_EmptiesLog(t *testing.T) {
	r := New()
	r.RedactString("123-45-6789", "notes")
	r.ClearLog()
	if len(r.Log()) != 0 {
		t.Errorf("expected empty log after ClearLog, got %d entries", len(r.Log()))
	}
}
