package adjustment

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/claimlens/claimlens/internal/domain/claims"
)

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }

func cleanClaim() *claims.Claim {
	return &claims.Claim{
		ClaimNumber:    "CLM002",
		ChargeAmount:   fPtr(250.00),
		PlaceOfService: "11",
		Provider:       claims.Party{Name: "SUNRISE MEDICAL GROUP", NPI: "1234567890"},
		Payer:          claims.Party{Name: "ACME HEALTH PLAN"},
		LineItems: []claims.LineItem{
			{
				LineNumber:        1,
				ProcedureCode:     strPtr("99213"),
				ProcedureModifier: strPtr("25"),
				DiagnosisCode:     strPtr("J189"),
				Units:             1,
				ChargeAmount:      fPtr(250.00),
				PlaceOfService:    strPtr("11"),
			},
		},
		CPTCodes: []string{"99213"},
	}
}

func TestBuildPlan_CleanClaim(t *testing.T) {
	plan := BuildPlan(cleanClaim(), nil)

	if plan.ReviewStatus != StatusNoIssues {
		t.Errorf("expected %s, got %s", StatusNoIssues, plan.ReviewStatus)
	}
	if len(plan.LineItemsToReview) != 0 {
		t.Errorf("expected no reviews, got %v", plan.LineItemsToReview)
	}
	if len(plan.DocumentationNeeds) != 0 {
		t.Errorf("expected no documentation needs, got %v", plan.DocumentationNeeds)
	}
	if plan.Note != Disclaimer {
		t.Error("expected disclaimer note on every plan")
	}
	if plan.Summary.TotalLineItems != 1 {
		t.Errorf("expected 1 total line item, got %d", plan.Summary.TotalLineItems)
	}
}

func TestBuildPlan_LineIssuesAndPriority(t *testing.T) {
	c := cleanClaim()
	c.LineItems = append(c.LineItems, claims.LineItem{
		LineNumber: 2,
		Units:      1,
		// missing procedure code, diagnosis and charge
	})

	plan := BuildPlan(c, nil)

	if plan.ReviewStatus != StatusPendingReview {
		t.Errorf("expected %s, got %s", StatusPendingReview, plan.ReviewStatus)
	}
	if len(plan.LineItemsToReview) != 1 {
		t.Fatalf("expected 1 line review, got %d", len(plan.LineItemsToReview))
	}

	review := plan.LineItemsToReview[0]
	if review.LineNumber != 2 {
		t.Errorf("expected line 2, got %d", review.LineNumber)
	}
	want := []string{IssueMissingProcedureCode, IssueMissingDiagnosisCode, IssueZeroOrNegativeCharge}
	if !reflect.DeepEqual(review.Issues, want) {
		t.Errorf("issues = %v, want %v", review.Issues, want)
	}
	if review.ReviewPriority != PriorityHigh {
		t.Errorf("expected high priority, got %s", review.ReviewPriority)
	}
	if plan.Summary.HighPriorityIssues != 1 {
		t.Errorf("expected 1 high priority line, got %d", plan.Summary.HighPriorityIssues)
	}
	if plan.Summary.TotalIssuesFound != 3 {
		t.Errorf("expected 3 issues, got %d", plan.Summary.TotalIssuesFound)
	}
}

func TestBuildPlan_MissingModifierIsNormalPriority(t *testing.T) {
	c := cleanClaim()
	c.LineItems[0].ProcedureModifier = nil

	plan := BuildPlan(c, nil)

	if len(plan.LineItemsToReview) != 1 {
		t.Fatalf("expected 1 review, got %d", len(plan.LineItemsToReview))
	}
	review := plan.LineItemsToReview[0]
	if !reflect.DeepEqual(review.Issues, []string{IssueMissingModifier}) {
		t.Errorf("issues = %v", review.Issues)
	}
	if review.ReviewPriority != PriorityNormal {
		t.Errorf("expected normal priority, got %s", review.ReviewPriority)
	}
}

func TestBuildPlan_InvalidCodeSuggestsChange(t *testing.T) {
	c := cleanClaim()
	c.LineItems[0].ProcedureCode = strPtr("BAD!")

	plan := BuildPlan(c, nil)

	if len(plan.SuggestedCodeChanges) != 1 {
		t.Fatalf("expected 1 code change, got %d", len(plan.SuggestedCodeChanges))
	}
	change := plan.SuggestedCodeChanges[0]
	if change.LineNumber != 1 || change.Code != "BAD!" {
		t.Errorf("unexpected change: %+v", change)
	}
	if plan.Summary.SuggestedCodeChangesCount != 1 {
		t.Errorf("expected count 1, got %d", plan.Summary.SuggestedCodeChangesCount)
	}
}

func TestBuildPlan_ClaimLevelCPTSetChecked(t *testing.T) {
	c := cleanClaim()
	c.CPTCodes = []string{"99213", "J1100"}

	plan := BuildPlan(c, nil)

	if len(plan.SuggestedCodeChanges) != 1 {
		t.Fatalf("expected 1 code change, got %d", len(plan.SuggestedCodeChanges))
	}
	if plan.SuggestedCodeChanges[0].Code != "J1100" {
		t.Errorf("unexpected change: %+v", plan.SuggestedCodeChanges[0])
	}
	// Claim-level entries carry no line number.
	if plan.SuggestedCodeChanges[0].LineNumber != 0 {
		t.Errorf("expected no line number, got %d", plan.SuggestedCodeChanges[0].LineNumber)
	}
}

func TestBuildPlan_DocumentationNeeds(t *testing.T) {
	c := cleanClaim()
	c.ClaimNumber = ""
	c.Provider.NPI = ""
	c.Patient = claims.Patient{LastName: "DOE"}

	plan := BuildPlan(c, nil)

	if len(plan.DocumentationNeeds) != 3 {
		t.Fatalf("expected 3 documentation needs, got %v", plan.DocumentationNeeds)
	}
	if plan.Summary.DocumentationNeedsCount != 3 {
		t.Errorf("expected count 3, got %d", plan.Summary.DocumentationNeedsCount)
	}
}

func TestBuildPlan_NoMemberIDNeedWithoutPatientName(t *testing.T) {
	plan := BuildPlan(cleanClaim(), nil)
	for _, need := range plan.DocumentationNeeds {
		if need == "Document the patient member identifier" {
			t.Error("member id need should require a named patient")
		}
	}
}

func TestBuildPlan_PayerRules(t *testing.T) {
	c := cleanClaim()
	c.LineItems = append(c.LineItems, claims.LineItem{
		LineNumber:    2,
		ProcedureCode: strPtr("99284"),
		DiagnosisCode: strPtr("E119"),
		Units:         1,
		ChargeAmount:  fPtr(375.00),
	})

	plan := BuildPlan(c, &PayerRules{RequireModifiers: true, MaxLineItems: 1})

	if len(plan.PotentialIssues) != 2 {
		t.Fatalf("expected 2 potential issues, got %v", plan.PotentialIssues)
	}
	if plan.PotentialIssues[0] != "Claim has 2 line items, exceeding the payer maximum of 1" {
		t.Errorf("unexpected issue: %q", plan.PotentialIssues[0])
	}
	if plan.PotentialIssues[1] != "Payer requires procedure modifiers; missing on line(s) 2" {
		t.Errorf("unexpected issue: %q", plan.PotentialIssues[1])
	}
}

func TestBuildPlan_NilRulesSkipPayerChecks(t *testing.T) {
	c := cleanClaim()
	c.LineItems[0].ProcedureModifier = nil

	plan := BuildPlan(c, nil)
	if len(plan.PotentialIssues) != 0 {
		t.Errorf("expected no potential issues without rules, got %v", plan.PotentialIssues)
	}
}

func TestBuildPlan_DoesNotMutateClaim(t *testing.T) {
	c := cleanClaim()
	c.LineItems[0].ProcedureCode = strPtr("BAD!")
	c.ClaimNumber = ""

	before, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	BuildPlan(c, &PayerRules{RequireModifiers: true, MaxLineItems: 1})

	after, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("BuildPlan must not mutate the claim")
	}
}
