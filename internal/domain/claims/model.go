package claims

// Party is a payer, provider, or payee participating in a transaction.
type Party struct {
	EntityType string `json:"entity_type,omitempty"` // "1" person, "2" non-person
	Name       string `json:"name,omitempty"`
	ID         string `json:"id,omitempty"`  // payer identifier
	NPI        string `json:"npi,omitempty"` // provider National Provider Identifier
}

// Patient identifies the claim subject (837 only).
type Patient struct {
	LastName  string `json:"last_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	MemberID  string `json:"member_id,omitempty"`
}

// LineItem is the canonical service line schema. Optional fields are pointers:
// nil means the source never provided a value, which the analysis engines must
// distinguish from a genuine zero. Units is the one exception — absence
// legitimately defaults to 1.0.
type LineItem struct {
	LineNumber        int      `json:"line_number"`
	ProcedureCode     *string  `json:"procedure_code,omitempty"`
	ProcedureModifier *string  `json:"procedure_modifier,omitempty"`
	DiagnosisCode     *string  `json:"diagnosis_code,omitempty"`
	Units             float64  `json:"units"`
	ChargeAmount      *float64 `json:"charge_amount,omitempty"`
	ServiceDate       *string  `json:"service_date,omitempty"`
	PlaceOfService    *string  `json:"place_of_service,omitempty"`
	Description       *string  `json:"description,omitempty"`
}

// Claim is the normalized claim evaluated by the risk and adjustment engines.
// It is built fresh per invocation — from parsed transaction text or from a
// caller-supplied document — and never mutated once constructed.
type Claim struct {
	ClaimNumber    string     `json:"claim_number"`
	ChargeAmount   *float64   `json:"charge_amount,omitempty"`
	PlaceOfService string     `json:"place_of_service,omitempty"`
	Provider       Party      `json:"provider"`
	Payer          Party      `json:"payer"`
	Patient        Patient    `json:"patient"`
	LineItems      []LineItem `json:"line_items"`
	CPTCodes       []string   `json:"cpt_codes,omitempty"`
	HCPCSCodes     []string   `json:"hcpcs_codes,omitempty"`
}

// ParsedClaim is the structured result of parsing an 837 professional claim.
// Extractor-level fields keep their positional defaults (empty string, 0.0);
// ToClaim applies the missing-value normalization the engines rely on.
type ParsedClaim struct {
	TransactionID   string     `json:"transaction_id"`
	SubmissionDate  string     `json:"submission_date,omitempty"`
	Payer           Party      `json:"payer"`
	Provider        Party      `json:"provider"`
	Patient         Patient    `json:"patient"`
	ClaimNumber     string     `json:"claim_number"`
	ChargeAmount    float64    `json:"charge_amount"`
	PlaceOfService  string     `json:"place_of_service,omitempty"`
	LineItems       []LineItem `json:"line_items"`
	CPTCodes        []string   `json:"cpt_codes"`
	HCPCSCodes      []string   `json:"hcpcs_codes"`
	RawSegmentCount int        `json:"raw_segment_count"`
}

// ToClaim converts the parsed 837 into the canonical claim the engines
// evaluate. A zero claim-level charge is normalized to missing.
func (p *ParsedClaim) ToClaim() *Claim {
	return &Claim{
		ClaimNumber:    p.ClaimNumber,
		ChargeAmount:   amountPtr(p.ChargeAmount),
		PlaceOfService: p.PlaceOfService,
		Provider:       p.Provider,
		Payer:          p.Payer,
		Patient:        p.Patient,
		LineItems:      p.LineItems,
		CPTCodes:       p.CPTCodes,
		HCPCSCodes:     p.HCPCSCodes,
	}
}

// RemitClaim is one claim payment entry from an 835 CLP segment.
type RemitClaim struct {
	ClaimNumber           string  `json:"claim_number"`
	ClaimStatus           string  `json:"claim_status"`
	ChargeAmount          float64 `json:"charge_amount"`
	PaidAmount            float64 `json:"paid_amount"`
	PatientResponsibility float64 `json:"patient_responsibility"`
	ClaimFilingIndicator  string  `json:"claim_filing_indicator"`
}

// RemitSummary aggregates an 835 remittance.
type RemitSummary struct {
	TotalClaims              int     `json:"total_claims"`
	TransactionControlNumber string  `json:"transaction_control_number"`
	TotalPaymentAmount       float64 `json:"total_payment_amount"`
}

// ParsedRemittance is the structured result of parsing an 835 remittance advice.
type ParsedRemittance struct {
	TransactionID   string       `json:"transaction_id"`
	PaymentDate     string       `json:"payment_date,omitempty"`
	Payer           Party        `json:"payer"`
	Payee           Party        `json:"payee"`
	Claims          []RemitClaim `json:"claims"`
	Summary         RemitSummary `json:"summary"`
	RawSegmentCount int          `json:"raw_segment_count"`
}

// Transaction kinds reported by ParseResult.
const (
	KindClaim      = "837"
	KindRemittance = "835"
	KindNormalized = "claim" // caller supplied an already-normalized claim
)

// ParseResult wraps the outcome of a parse invocation; exactly one of the
// payload fields is set according to Kind.
type ParseResult struct {
	Kind       string            `json:"kind"`
	Claim      *ParsedClaim      `json:"claim,omitempty"`
	Remittance *ParsedRemittance `json:"remittance,omitempty"`
	Normalized *Claim            `json:"normalized,omitempty"`
}

// SegmentCount returns the raw segment count of the parsed transaction, or 0
// for normalized-claim results.
func (r *ParseResult) SegmentCount() int {
	switch {
	case r.Claim != nil:
		return r.Claim.RawSegmentCount
	case r.Remittance != nil:
		return r.Remittance.RawSegmentCount
	}
	return 0
}

// stringPtr normalizes an extracted string: empty resolves to missing.
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// amountPtr normalizes an extracted amount: exactly 0.0 resolves to missing.
// Zero charge is analytically distinct from unknown charge; callers that need
// to declare a genuine zero must supply an explicit marker upstream.
func amountPtr(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
