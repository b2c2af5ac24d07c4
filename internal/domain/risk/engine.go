// Package risk evaluates normalized claims against a fixed, deterministic
// rule set. Rules are checked independently — several may fire on the same
// claim — and malformed claim data is the subject of analysis, never a
// failure mode.
package risk

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/domain/claims"
)

// Risk flag identifiers. Each fired rule contributes exactly one flag keyword
// plus one or more ordered detail strings.
const (
	FlagMissingProviderNPI   = "missing_provider_npi"
	FlagMissingClaimNumber   = "missing_claim_number"
	FlagMissingProcedureCode = "missing_procedure_code"
	FlagMissingDiagnosisCode = "missing_diagnosis_code"
	FlagZeroOrNegativeCharge = "zero_or_negative_charge"
	FlagInconsistentPOS      = "inconsistent_place_of_service"
	FlagInvalidCPTCodeFormat = "invalid_cpt_code_format"
)

// Assessment is the result of one rule-set evaluation.
type Assessment struct {
	Flags       []string `json:"flags"`
	RiskDetails []string `json:"risk_details"`
	Summary     string   `json:"summary"`
}

type builder struct {
	flags   []string
	seen    map[string]bool
	details []string
}

func (b *builder) add(flag, detail string) {
	if !b.seen[flag] {
		b.seen[flag] = true
		b.flags = append(b.flags, flag)
	}
	b.details = append(b.details, detail)
}

// Evaluate runs the full rule set over a normalized claim. The claim is
// read-only; a fresh Assessment is returned per invocation.
func Evaluate(c *claims.Claim) *Assessment {
	b := &builder{seen: make(map[string]bool)}

	if c.Provider.NPI == "" {
		b.add(FlagMissingProviderNPI, "Provider NPI is missing")
	}
	if c.ClaimNumber == "" {
		b.add(FlagMissingClaimNumber, "Claim number is missing")
	}

	for _, li := range c.LineItems {
		if li.ProcedureCode == nil {
			b.add(FlagMissingProcedureCode, fmt.Sprintf("Line %d: procedure code is missing", li.LineNumber))
		}
		if li.DiagnosisCode == nil {
			b.add(FlagMissingDiagnosisCode, fmt.Sprintf("Line %d: diagnosis code is missing", li.LineNumber))
		}
		// A missing charge counts as non-positive for this check.
		if li.ChargeAmount == nil || *li.ChargeAmount <= 0 {
			b.add(FlagZeroOrNegativeCharge, fmt.Sprintf("Line %d: charge amount is zero, negative, or missing", li.LineNumber))
		}
		if li.PlaceOfService != nil && c.PlaceOfService != "" && *li.PlaceOfService != c.PlaceOfService {
			b.add(FlagInconsistentPOS, fmt.Sprintf(
				"Line %d: place of service %s differs from claim-level place of service %s",
				li.LineNumber, *li.PlaceOfService, c.PlaceOfService))
		}
	}

	// Guards against a malformed value entering the CPT collection upstream:
	// the raw string must be exactly 5 digits.
	for _, code := range c.CPTCodes {
		if !isFiveDigits(code) {
			b.add(FlagInvalidCPTCodeFormat, fmt.Sprintf("CPT code %q is not a valid 5-digit code", code))
		}
	}

	return &Assessment{
		Flags:       b.flags,
		RiskDetails: b.details,
		Summary:     summarize(c),
	}
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

// summarize renders the fixed-structure narrative. Field presence, not exact
// formatting, is the contract.
func summarize(c *claims.Claim) string {
	var sb strings.Builder
	sb.WriteString("Claim Summary:\n")
	sb.WriteString(fmt.Sprintf("Claim Number: %s\n", orMissing(c.ClaimNumber)))

	provider := orMissing(c.Provider.Name)
	if c.Provider.NPI != "" {
		provider += fmt.Sprintf(" (NPI %s)", c.Provider.NPI)
	}
	sb.WriteString(fmt.Sprintf("Provider: %s\n", provider))
	sb.WriteString(fmt.Sprintf("Payer: %s\n", orMissing(c.Payer.Name)))

	if c.ChargeAmount != nil {
		sb.WriteString(fmt.Sprintf("Total Charge: $%.2f\n", *c.ChargeAmount))
	} else {
		sb.WriteString("Total Charge: (missing)\n")
	}
	sb.WriteString(fmt.Sprintf("Line Items: %d", len(c.LineItems)))
	return sb.String()
}

func orMissing(s string) string {
	if s == "" {
		return "(missing)"
	}
	return s
}
