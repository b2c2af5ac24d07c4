// Package adjustment builds prioritized remediation plans for normalized
// claims. The planner is a read-only companion to the risk engine: it never
// mutates the claim it is given and performs no write operations.
package adjustment

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/domain/claims"
)

// Review statuses.
const (
	StatusPendingReview = "pending_review"
	StatusNoIssues      = "no_issues_found"
)

// Review priorities.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// Per-line issue identifiers.
const (
	IssueMissingProcedureCode = "missing_procedure_code"
	IssueMissingDiagnosisCode = "missing_diagnosis_code"
	IssueZeroOrNegativeCharge = "zero_or_negative_charge"
	IssueInconsistentPOS      = "inconsistent_place_of_service"
	IssueMissingModifier      = "missing_modifier"
	IssueInvalidCodeFormat    = "invalid_code_format"
)

// Disclaimer is attached to every emitted plan.
const Disclaimer = "This adjustment plan is advisory and for planning purposes only. " +
	"It performs no write operations; all suggested changes require review by qualified billing staff."

// PayerRules are optional payer-specific constraints that contribute entries
// to the plan's potential_issues when violated.
type PayerRules struct {
	RequireModifiers bool `json:"require_modifiers,omitempty"`
	MaxLineItems     int  `json:"max_line_items,omitempty"`
}

// LineReview is one line item flagged for review.
type LineReview struct {
	LineNumber     int      `json:"line_number"`
	Issues         []string `json:"issues"`
	ReviewPriority string   `json:"review_priority"`
}

// CodeChange is one suggested correction for an invalid-format procedure code.
type CodeChange struct {
	LineNumber int    `json:"line_number,omitempty"`
	Code       string `json:"code"`
	Reason     string `json:"reason"`
}

// PlanSummary aggregates the plan's findings.
type PlanSummary struct {
	TotalLineItems            int `json:"total_line_items"`
	LineItemsRequiringReview  int `json:"line_items_requiring_review"`
	TotalIssuesFound          int `json:"total_issues_found"`
	HighPriorityIssues        int `json:"high_priority_issues"`
	SuggestedCodeChangesCount int `json:"suggested_code_changes_count"`
	DocumentationNeedsCount   int `json:"documentation_needs_count"`
}

// Plan is the complete remediation plan for one claim.
type Plan struct {
	ClaimNumber          string       `json:"claim_number"`
	ReviewStatus         string       `json:"review_status"`
	LineItemsToReview    []LineReview `json:"line_items_to_review"`
	SuggestedCodeChanges []CodeChange `json:"suggested_code_changes"`
	DocumentationNeeds   []string     `json:"documentation_needs"`
	PotentialIssues      []string     `json:"potential_issues"`
	Summary              PlanSummary  `json:"summary"`
	Note                 string       `json:"note"`
}

// BuildPlan evaluates a normalized claim against the planner's defect classes
// and optional payer rules. The claim is strictly read-only: callers can rely
// on structural equality before and after the call.
func BuildPlan(c *claims.Claim, rules *PayerRules) *Plan {
	plan := &Plan{
		ClaimNumber:  c.ClaimNumber,
		ReviewStatus: StatusNoIssues,
		Note:         Disclaimer,
	}
	plan.Summary.TotalLineItems = len(c.LineItems)

	var linesMissingModifiers []int

	for _, li := range c.LineItems {
		var issues []string

		if li.ProcedureCode == nil {
			issues = append(issues, IssueMissingProcedureCode)
		} else if !claims.IsCPT(*li.ProcedureCode) && !claims.IsHCPCS(*li.ProcedureCode) {
			issues = append(issues, IssueInvalidCodeFormat)
			plan.SuggestedCodeChanges = append(plan.SuggestedCodeChanges, CodeChange{
				LineNumber: li.LineNumber,
				Code:       *li.ProcedureCode,
				Reason:     "not a valid CPT or HCPCS code; verify and correct",
			})
		}
		if li.DiagnosisCode == nil {
			issues = append(issues, IssueMissingDiagnosisCode)
		}
		if li.ChargeAmount == nil || *li.ChargeAmount <= 0 {
			issues = append(issues, IssueZeroOrNegativeCharge)
		}
		if li.PlaceOfService != nil && c.PlaceOfService != "" && *li.PlaceOfService != c.PlaceOfService {
			issues = append(issues, IssueInconsistentPOS)
		}
		if li.ProcedureCode != nil && li.ProcedureModifier == nil {
			issues = append(issues, IssueMissingModifier)
			linesMissingModifiers = append(linesMissingModifiers, li.LineNumber)
		}

		if len(issues) > 0 {
			plan.LineItemsToReview = append(plan.LineItemsToReview, LineReview{
				LineNumber:     li.LineNumber,
				Issues:         issues,
				ReviewPriority: priorityFor(issues),
			})
			plan.Summary.TotalIssuesFound += len(issues)
		}
	}

	// Claim-level CPT set entries that slipped in with a malformed shape.
	for _, code := range c.CPTCodes {
		if !isFiveDigits(code) {
			plan.SuggestedCodeChanges = append(plan.SuggestedCodeChanges, CodeChange{
				Code:   code,
				Reason: "tagged as CPT but not a 5-digit code; reclassify or correct",
			})
		}
	}

	// Missing-identity defects become documentation needs.
	if c.Provider.NPI == "" {
		plan.DocumentationNeeds = append(plan.DocumentationNeeds, "Obtain and document the billing provider NPI")
	}
	if c.ClaimNumber == "" {
		plan.DocumentationNeeds = append(plan.DocumentationNeeds, "Assign a claim number before submission")
	}
	if c.Patient.MemberID == "" && (c.Patient.LastName != "" || c.Patient.FirstName != "") {
		plan.DocumentationNeeds = append(plan.DocumentationNeeds, "Document the patient member identifier")
	}

	if rules != nil {
		if rules.MaxLineItems > 0 && len(c.LineItems) > rules.MaxLineItems {
			plan.PotentialIssues = append(plan.PotentialIssues, fmt.Sprintf(
				"Claim has %d line items, exceeding the payer maximum of %d",
				len(c.LineItems), rules.MaxLineItems))
		}
		if rules.RequireModifiers && len(linesMissingModifiers) > 0 {
			plan.PotentialIssues = append(plan.PotentialIssues, fmt.Sprintf(
				"Payer requires procedure modifiers; missing on line(s) %s",
				joinInts(linesMissingModifiers)))
		}
	}

	if len(plan.LineItemsToReview) > 0 {
		plan.ReviewStatus = StatusPendingReview
	}

	for _, lr := range plan.LineItemsToReview {
		if lr.ReviewPriority == PriorityHigh {
			plan.Summary.HighPriorityIssues++
		}
	}
	plan.Summary.LineItemsRequiringReview = len(plan.LineItemsToReview)
	plan.Summary.SuggestedCodeChangesCount = len(plan.SuggestedCodeChanges)
	plan.Summary.DocumentationNeedsCount = len(plan.DocumentationNeeds)

	return plan
}

// priorityFor assigns high priority to lines with missing diagnosis codes or
// zero/negative charges, normal otherwise.
func priorityFor(issues []string) string {
	for _, issue := range issues {
		if issue == IssueMissingDiagnosisCode || issue == IssueZeroOrNegativeCharge {
			return PriorityHigh
		}
	}
	return PriorityNormal
}

func isFiveDigits(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
