package rules

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

func sampleClaim(t *testing.T) claim.ClaimData {
	t.Helper()
	item, err := claim.NewLineItem(claim.LineItemInput{Code: "GEN_MISC", Quantity: 1, UnitPrice: claim.NewMoney(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := claim.NewClaimData(claim.ClaimDataInput{ClaimID: "CLM-1", LineItems: []claim.LineItem{item}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestRegistry_AddDefaultsToEnabled(t *testing.T) {
	r := New()
	r.Add(Rule{RuleID: "FIN-001", Category: claim.CategoryFinancial, Severity: claim.SeverityWarning})

	rule, ok := r.Get("FIN-001")
	if !ok {
		t.Fatal("expected rule to be registered")
	}
	if !rule.Enabled {
		t.Error("expected newly added rule to default to enabled")
	}
}

func TestRegistry_DisableSkipsExecution(t *testing.T) {
	r := New()
	called := false
	r.Add(Rule{
		RuleID:   "FIN-001",
		Category: claim.CategoryFinancial,
		Severity: claim.SeverityWarning,
		Validate: func(c claim.ClaimData, ctx Context) ([]claim.AuditFinding, error) {
			called = true
			return nil, nil
		},
	})
	r.Disable("FIN-001")

	rule, _ := r.Get("FIN-001")
	findings := r.Execute(rule, sampleClaim(t), Context{})
	if called {
		t.Error("disabled rule's Validate should not run")
	}
	if findings != nil {
		t.Errorf("expected no findings from a disabled rule, got %v", findings)
	}
}

func TestRegistry_ExecuteGuardsAgainstError(t *testing.T) {
	r := New()
	r.Add(Rule{
		RuleID:   "FIN-999",
		Name:     "Broken Rule",
		Category: claim.CategoryFinancial,
		Severity: claim.SeverityError,
		Validate: func(c claim.ClaimData, ctx Context) ([]claim.AuditFinding, error) {
			return nil, errors.New("boom")
		},
	})

	rule, _ := r.Get("FIN-999")
	findings := r.Execute(rule, sampleClaim(t), Context{})
	if len(findings) != 1 {
		t.Fatalf("expected exactly one synthetic finding, got %d", len(findings))
	}
	if findings[0].Title != "Rule Execution Error: Broken Rule" {
		t.Errorf("Title = %q, want %q", findings[0].Title, "Rule Execution Error: Broken Rule")
	}
	if findings[0].Category != claim.CategoryFinancial {
		t.Errorf("synthetic finding should preserve the rule's category")
	}
}

func TestRegistry_ExecuteGuardsAgainstPanic(t *testing.T) {
	r := New()
	r.Add(Rule{
		RuleID:   "FIN-998",
		Category: claim.CategoryFinancial,
		Severity: claim.SeverityCritical,
		Validate: func(c claim.ClaimData, ctx Context) ([]claim.AuditFinding, error) {
			panic("unexpected nil dereference")
		},
	})

	rule, _ := r.Get("FIN-998")
	findings := r.Execute(rule, sampleClaim(t), Context{})
	if len(findings) != 1 {
		t.Fatalf("expected exactly one synthetic finding from a panic, got %d", len(findings))
	}
}

func TestRegistry_ExecuteAssignsFindingIDWhenUnset(t *testing.T) {
	r := New()
	r.Add(Rule{
		RuleID:   "FIN-001",
		Category: claim.CategoryFinancial,
		Severity: claim.SeverityWarning,
		Validate: func(c claim.ClaimData, ctx Context) ([]claim.AuditFinding, error) {
			return []claim.AuditFinding{{Title: "first"}, {Title: "second"}}, nil
		},
	})

	rule, _ := r.Get("FIN-001")
	findings := r.Execute(rule, sampleClaim(t), Context{})
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].FindingID == "" || findings[1].FindingID == "" {
		t.Fatal("expected every finding to receive a minted finding id")
	}
	if findings[0].FindingID == findings[1].FindingID {
		t.Errorf("expected distinct finding ids, got %q twice", findings[0].FindingID)
	}
}

func TestRegistry_NewFindingIDIsMonotonic(t *testing.T) {
	r := New()
	first := r.NewFindingID()
	second := r.NewFindingID()
	if first != "FND-000001" {
		t.Errorf("first id = %q, want FND-000001", first)
	}
	if second != "FND-000002" {
		t.Errorf("second id = %q, want FND-000002", second)
	}
}

func TestRegistry_ExecuteRulesPreservesOrder(t *testing.T) {
	r := New()
	var callOrder []string
	for _, id := range []string{"A", "B", "C"} {
		id := id
		r.Add(Rule{
			RuleID:   id,
			Category: claim.CategoryLeakage,
			Severity: claim.SeverityInfo,
			Validate: func(c claim.ClaimData, ctx Context) ([]claim.AuditFinding, error) {
				callOrder = append(callOrder, id)
				return nil, nil
			},
		})
	}

	r.ExecuteRules([]string{"C", "A", "B"}, sampleClaim(t), Context{})
	want := []string{"C", "A", "B"}
	for i, id := range want {
		if callOrder[i] != id {
			t.Errorf("callOrder[%d] = %q, want %q", i, callOrder[i], id)
		}
	}
}

func TestRegistry_RulesByCategoryOnlyEnabled(t *testing.T) {
	r := New()
	r.Add(Rule{RuleID: "L1", Category: claim.CategoryLeakage, Severity: claim.SeverityWarning})
	r.Add(Rule{RuleID: "L2", Category: claim.CategoryLeakage, Severity: claim.SeverityWarning})
	r.Disable("L2")

	got := r.RulesByCategory(claim.CategoryLeakage)
	if len(got) != 1 || got[0].RuleID != "L1" {
		t.Errorf("RulesByCategory = %+v, want only L1", got)
	}
}
