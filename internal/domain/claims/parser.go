package claims

import (
	"strconv"
	"strings"

	"github.com/claimlens/claimlens/internal/platform/x12"
)

// ParseText tokenizes raw transaction text and builds the structured result
// for the transaction set identified by ST01: 835 parses as a remittance,
// anything else as an 837-shaped claim. Parsing never fails once text is in
// hand — zero segments is a valid (if useless) result.
func ParseText(raw string) *ParseResult {
	segments := x12.Tokenize(raw)

	kind := KindClaim
	if st, ok := x12.FindFirst(segments, "ST"); ok && st.Element(1) == "835" {
		kind = KindRemittance
	}

	if kind == KindRemittance {
		return &ParseResult{Kind: KindRemittance, Remittance: parse835(segments)}
	}
	return &ParseResult{Kind: KindClaim, Claim: parse837(segments)}
}

// ParseClaimText extracts raw text with the 837 claim-shaped contracts
// regardless of the declared transaction set. Used by the analysis engines,
// which treat any document as claim material.
func ParseClaimText(raw string) *ParsedClaim {
	return parse837(x12.Tokenize(raw))
}

func parse837(segments []x12.Segment) *ParsedClaim {
	p := &ParsedClaim{RawSegmentCount: len(segments)}

	if st, ok := x12.FindFirst(segments, "ST"); ok {
		p.TransactionID = st.Element(2)
	}
	if bht, ok := x12.FindFirst(segments, "BHT"); ok {
		p.SubmissionDate = bht.Element(4)
	}

	if payer, ok := x12.FindEntity(segments, x12.EntityPayer); ok {
		p.Payer = Party{EntityType: payer.EntityType, Name: payer.Name(), ID: payer.ID}
	}
	if provider, ok := x12.FindEntity(segments, x12.EntityBillingProvider); ok {
		p.Provider = Party{EntityType: provider.EntityType, Name: provider.Name(), NPI: provider.ID}
	}
	if patient, ok := x12.FindEntity(segments, x12.EntityPatient); ok {
		p.Patient = Patient{LastName: patient.LastName, FirstName: patient.FirstName, MemberID: patient.ID}
	}

	if clm, ok := x12.FindFirst(segments, "CLM"); ok {
		p.ClaimNumber = clm.Element(1)
		p.ChargeAmount = clm.Float(2)
		// CLM05 is a composite; the place-of-service code is its first component.
		p.PlaceOfService = clm.Component(5, 0)
	}

	diagnoses := x12.DiagnosisCodes(segments)
	for _, sl := range x12.ServiceLines(segments) {
		p.LineItems = append(p.LineItems, lineItemFromX12(sl, diagnoses))
	}

	var codes []string
	for _, li := range p.LineItems {
		if li.ProcedureCode != nil {
			codes = append(codes, *li.ProcedureCode)
		}
	}
	p.CPTCodes, p.HCPCSCodes = classifyCodes(codes)

	return p
}

// lineItemFromX12 normalizes an extracted service line into the canonical
// schema: empty strings and zero charges resolve to missing, absent units
// default to 1.0, and the diagnosis pointer is resolved against the claim's
// HI diagnosis list.
func lineItemFromX12(sl x12.ServiceLine, diagnoses []string) LineItem {
	li := LineItem{
		LineNumber:        sl.LineNumber,
		ProcedureCode:     stringPtr(sl.ProcedureCode),
		ProcedureModifier: stringPtr(sl.Modifier),
		ChargeAmount:      amountPtr(sl.Charge),
		ServiceDate:       stringPtr(sl.ServiceDate),
		PlaceOfService:    stringPtr(sl.PlaceOfService),
	}

	li.Units = 1.0
	if raw := strings.TrimSpace(sl.Units); raw != "" {
		if u, err := strconv.ParseFloat(raw, 64); err == nil && u >= 0 {
			li.Units = u
		}
	}

	if sl.DiagnosisPointer >= 1 && sl.DiagnosisPointer <= len(diagnoses) {
		li.DiagnosisCode = stringPtr(diagnoses[sl.DiagnosisPointer-1])
	}

	return li
}

func parse835(segments []x12.Segment) *ParsedRemittance {
	p := &ParsedRemittance{RawSegmentCount: len(segments)}

	if st, ok := x12.FindFirst(segments, "ST"); ok {
		p.TransactionID = st.Element(2)
		p.Summary.TransactionControlNumber = st.Element(2)
	}
	if bpr, ok := x12.FindFirst(segments, "BPR"); ok {
		p.PaymentDate = bpr.Element(16)
		p.Summary.TotalPaymentAmount = bpr.Float(2)
	}

	if payer, ok := x12.FindEntity(segments, x12.EntityPayer); ok {
		p.Payer = Party{EntityType: payer.EntityType, Name: payer.Name(), ID: payer.ID}
	}
	if payee, ok := x12.FindEntity(segments, x12.EntityPayee); ok {
		p.Payee = Party{EntityType: payee.EntityType, Name: payee.Name(), NPI: payee.ID}
	}

	for _, clp := range x12.FindAll(segments, "CLP") {
		p.Claims = append(p.Claims, RemitClaim{
			ClaimNumber:           clp.Element(1),
			ClaimStatus:           clp.Element(2),
			ChargeAmount:          clp.Float(3),
			PaidAmount:            clp.Float(4),
			PatientResponsibility: clp.Float(5),
			ClaimFilingIndicator:  clp.Element(6),
		})
	}
	p.Summary.TotalClaims = len(p.Claims)

	return p
}
