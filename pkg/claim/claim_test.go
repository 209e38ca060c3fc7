package claim

import "testing"

func mustRoom(t *testing.T, in RoomInput) Room {
	t.Helper()
	r, err := NewRoom(in)
	if err != nil {
		t.Fatalf("NewRoom(%+v) error: %v", in, err)
	}
	return r
}

func TestNewRoom_Validation(t *testing.T) {
	if _, err := NewRoom(RoomInput{Name: "", Sqft: 100}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := NewRoom(RoomInput{Name: "Kitchen", Sqft: 0}); err == nil {
		t.Error("expected error for zero sqft")
	}
	r, err := NewRoom(RoomInput{Name: "Kitchen", Sqft: 150})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.RoomType() != "standard" {
		t.Errorf("RoomType() = %q, want %q", r.RoomType(), "standard")
	}
	if !r.Affected() {
		t.Error("Affected() default should be true")
	}
}

func TestNewPropertyDetails_DerivesTotalSqft(t *testing.T) {
	affected := true
	unaffected := false
	rooms := []Room{
		mustRoom(t, RoomInput{Name: "Kitchen", Sqft: 200, Affected: &affected}),
		mustRoom(t, RoomInput{Name: "Garage", Sqft: 400, Affected: &unaffected}),
		mustRoom(t, RoomInput{Name: "Bathroom", Sqft: 50, Affected: &affected}),
	}

	p, err := NewPropertyDetails(PropertyDetailsInput{
		AffectedRooms: rooms,
		WaterCategory: WaterCategory2,
	})
	if err != nil {
		t.Fatalf("NewPropertyDetails() error: %v", err)
	}

	if got, want := p.TotalAffectedSqft(), 250.0; got != want {
		t.Errorf("TotalAffectedSqft() = %v, want %v", got, want)
	}
	if p.PropertyType() != "residential" {
		t.Errorf("PropertyType() = %q, want default %q", p.PropertyType(), "residential")
	}
}

func TestNewPropertyDetails_ExplicitSqftOverridesDerivation(t *testing.T) {
	explicit := 999.0
	p, err := NewPropertyDetails(PropertyDetailsInput{
		WaterCategory:     WaterCategory1,
		TotalAffectedSqft: &explicit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalAffectedSqft() != 999.0 {
		t.Errorf("TotalAffectedSqft() = %v, want explicit 999.0", p.TotalAffectedSqft())
	}
}

func TestNewPropertyDetails_RejectsInvalidWaterCategory(t *testing.T) {
	if _, err := NewPropertyDetails(PropertyDetailsInput{WaterCategory: WaterCategory(9)}); err == nil {
		t.Error("expected error for invalid water category")
	}
}

func TestNewPolicyCoverage_RejectsNegativeDeductible(t *testing.T) {
	if _, err := NewPolicyCoverage(PolicyCoverageInput{Deductible: NewMoney(-500)}); err == nil {
		t.Error("expected error for negative deductible")
	}
}

func TestNewLineItem_DerivesTotal(t *testing.T) {
	li, err := NewLineItem(LineItemInput{
		Code:      "WTR_AIRF",
		Quantity:  12,
		UnitPrice: NewMoney(35),
	})
	if err != nil {
		t.Fatalf("NewLineItem() error: %v", err)
	}
	want := NewMoney(420)
	if !li.Total().Equal(want) {
		t.Errorf("Total() = %s, want %s", li.Total().String(), want.String())
	}
}

func TestNewLineItem_ExplicitTotalOverridesDerivation(t *testing.T) {
	explicit := NewMoney(50)
	li, err := NewLineItem(LineItemInput{
		Code:      "GEN_MISC",
		Quantity:  2,
		UnitPrice: NewMoney(10),
		Total:     &explicit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !li.Total().Equal(explicit) {
		t.Errorf("Total() = %s, want explicit %s", li.Total().String(), explicit.String())
	}
}

func TestNewLineItem_RejectsMissingCode(t *testing.T) {
	if _, err := NewLineItem(LineItemInput{Quantity: 1, UnitPrice: NewMoney(1)}); err == nil {
		t.Error("expected error for missing code")
	}
}

func TestNewClaimData_DerivesGrossAndNetClaim(t *testing.T) {
	item1, _ := NewLineItem(LineItemInput{Code: "WTR_AIRF", Quantity: 10, UnitPrice: NewMoney(35)})
	item2, _ := NewLineItem(LineItemInput{Code: "WTR_DEHUM", Quantity: 2, UnitPrice: NewMoney(150)})
	policy, _ := NewPolicyCoverage(PolicyCoverageInput{Deductible: NewMoney(500)})

	c, err := NewClaimData(ClaimDataInput{
		ClaimID:   "CLM-1001",
		LineItems: []LineItem{item1, item2},
		Policy:    policy,
	})
	if err != nil {
		t.Fatalf("NewClaimData() error: %v", err)
	}

	wantGross := NewMoney(350 + 300)
	if !c.GrossClaim().Equal(wantGross) {
		t.Errorf("GrossClaim() = %s, want %s", c.GrossClaim().String(), wantGross.String())
	}

	wantNet := wantGross.Sub(NewMoney(500))
	if !c.NetClaim().Equal(wantNet) {
		t.Errorf("NetClaim() = %s, want %s", c.NetClaim().String(), wantNet.String())
	}
}

func TestNewClaimData_NetClaimFlooredAtZero(t *testing.T) {
	item1, _ := NewLineItem(LineItemInput{Code: "GEN_MISC", Quantity: 1, UnitPrice: NewMoney(100)})
	policy, _ := NewPolicyCoverage(PolicyCoverageInput{Deductible: NewMoney(1000)})

	c, err := NewClaimData(ClaimDataInput{
		ClaimID:   "CLM-1002",
		LineItems: []LineItem{item1},
		Policy:    policy,
	})
	if err != nil {
		t.Fatalf("NewClaimData() error: %v", err)
	}
	if !c.NetClaim().Equal(Zero) {
		t.Errorf("NetClaim() = %s, want 0", c.NetClaim().String())
	}
}

func TestNewClaimData_RequiresAtLeastOneLineItem(t *testing.T) {
	if _, err := NewClaimData(ClaimDataInput{ClaimID: "CLM-1003"}); err == nil {
		t.Error("expected error for claim with no line items")
	}
}

func TestClaimData_ItemsWithPrefix(t *testing.T) {
	item1, _ := NewLineItem(LineItemInput{Code: "CNT_SOFA", Quantity: 1, UnitPrice: NewMoney(500)})
	item2, _ := NewLineItem(LineItemInput{Code: "WTR_AIRF", Quantity: 1, UnitPrice: NewMoney(35)})
	item3, _ := NewLineItem(LineItemInput{Code: "CNT_TABLE", Quantity: 1, UnitPrice: NewMoney(200)})

	c, err := NewClaimData(ClaimDataInput{
		ClaimID:   "CLM-1004",
		LineItems: []LineItem{item1, item2, item3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cnt := c.ItemsWithPrefix("CNT")
	if len(cnt) != 2 {
		t.Fatalf("ItemsWithPrefix(\"CNT\") returned %d items, want 2", len(cnt))
	}
}

func sampleClaim(t *testing.T) ClaimData {
	t.Helper()
	item, err := NewLineItem(LineItemInput{Code: "WTR_AIRF", Quantity: 10, UnitPrice: NewMoney(35)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := NewClaimData(ClaimDataInput{ClaimID: "CLM-2000", LineItems: []LineItem{item}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestAuditScorecard_CalculateRiskScoreCapsAt100(t *testing.T) {
	sc := NewAuditScorecard(sampleClaim(t))
	for i := 0; i < 5; i++ {
		sc.AddFinding(AuditFinding{
			FindingID: "FND-000001",
			Category:  CategoryFinancial,
			Severity:  SeverityCritical,
		})
	}
	if got := sc.CalculateRiskScore(); got != 100 {
		t.Errorf("CalculateRiskScore() = %d, want 100 (capped)", got)
	}
}

func TestAuditScorecard_AddFindingUpdatesSummary(t *testing.T) {
	sc := NewAuditScorecard(sampleClaim(t))
	leakageImpact := NewMoney(70)
	supplementImpact := NewMoney(30)
	sc.AddFinding(AuditFinding{
		FindingID:       "FND-000001",
		Category:        CategoryLeakage,
		Severity:        SeverityWarning,
		PotentialImpact: &leakageImpact,
	})
	sc.AddFinding(AuditFinding{
		FindingID:       "FND-000002",
		Category:        CategorySupplementRisk,
		Severity:        SeverityError,
		PotentialImpact: &supplementImpact,
	})

	if sc.Summary.TotalFindings != 2 {
		t.Errorf("TotalFindings = %d, want 2", sc.Summary.TotalFindings)
	}
	if sc.Summary.ByCategory[CategoryLeakage] != 1 {
		t.Errorf("ByCategory[leakage] = %d, want 1", sc.Summary.ByCategory[CategoryLeakage])
	}
	if !sc.Summary.TotalPotentialLeakage.Equal(leakageImpact) {
		t.Errorf("TotalPotentialLeakage = %s, want %s", sc.Summary.TotalPotentialLeakage.String(), leakageImpact.String())
	}
	if !sc.Summary.TotalSupplementRisk.Equal(supplementImpact) {
		t.Errorf("TotalSupplementRisk = %s, want %s", sc.Summary.TotalSupplementRisk.String(), supplementImpact.String())
	}
	if got := sc.CalculateRiskScore(); got != 45 {
		t.Errorf("CalculateRiskScore() = %d, want 45 (15+30)", got)
	}
}

func TestAuditScorecard_AddModuleIsIdempotentAndOrdered(t *testing.T) {
	sc := NewAuditScorecard(sampleClaim(t))
	sc.AddModule("financial")
	sc.AddModule("water_remediation")
	sc.AddModule("financial")

	want := []string{"financial", "water_remediation"}
	if len(sc.ModulesExecuted) != len(want) {
		t.Fatalf("ModulesExecuted = %v, want %v", sc.ModulesExecuted, want)
	}
	for i, m := range want {
		if sc.ModulesExecuted[i] != m {
			t.Errorf("ModulesExecuted[%d] = %q, want %q", i, sc.ModulesExecuted[i], m)
		}
	}
}
