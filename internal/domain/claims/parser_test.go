package claims

import (
	"reflect"
	"testing"
)

const sample837 = "ISA*00*          *00*          *ZZ*SUBMITTER      *ZZ*RECEIVER       *240115*1200*^*00501*000000001*0*P*:~" +
	"ST*837*0001~" +
	"BHT*0019*00*REF123*20240115*1200*CH~" +
	"NM1*PR*2*ACME HEALTH PLAN*****PI*66666~" +
	"NM1*85*2*SUNRISE MEDICAL GROUP*****XX*1234567890~" +
	"NM1*QC*1*DOE*JANE****MI*MBR001~" +
	"CLM*CLM001*500.00***11:B:1~" +
	"HI*ABK:J189*ABF:E119~" +
	"LX*1~" +
	"SV1*HC:99213:25*125.00*UN*1*11**1~" +
	"DTP*472*D8*20240110~" +
	"LX*2~" +
	"SV2*0450*HC:99284*375.00*UN*2~" +
	"SE*13*0001~"

const sample835 = "ISA*00*          *00*          *ZZ*PAYERX         *ZZ*PROVIDERY      *240201*0900*^*00501*000000002*0*P*:~" +
	"ST*835*2001~" +
	"BPR*I*905.00*C*ACH*CCP***********20240201~" +
	"NM1*PR*2*ACME HEALTH PLAN*****PI*66666~" +
	"NM1*PE*2*SUNRISE MEDICAL GROUP*****XX*1234567890~" +
	"CLP*CLM001*1*500.00*400.00*100.00*MC~" +
	"CLP*CLM002*2*600.00*505.00*95.00*MC~" +
	"SE*7*2001~"

func TestParseText_Detects837(t *testing.T) {
	result := ParseText(sample837)

	if result.Kind != KindClaim {
		t.Fatalf("expected kind %q, got %q", KindClaim, result.Kind)
	}
	if result.Claim == nil || result.Remittance != nil {
		t.Fatal("expected claim payload only")
	}

	p := result.Claim
	if p.TransactionID != "0001" {
		t.Errorf("expected transaction id 0001, got %q", p.TransactionID)
	}
	if p.SubmissionDate != "20240115" {
		t.Errorf("expected submission date 20240115, got %q", p.SubmissionDate)
	}
	if p.ClaimNumber != "CLM001" {
		t.Errorf("expected claim number CLM001, got %q", p.ClaimNumber)
	}
	if p.ChargeAmount != 500.00 {
		t.Errorf("expected charge 500.00, got %g", p.ChargeAmount)
	}
	if p.PlaceOfService != "11" {
		t.Errorf("expected place of service 11, got %q", p.PlaceOfService)
	}
	if p.Payer.Name != "ACME HEALTH PLAN" || p.Payer.ID != "66666" {
		t.Errorf("unexpected payer: %+v", p.Payer)
	}
	if p.Provider.Name != "SUNRISE MEDICAL GROUP" || p.Provider.NPI != "1234567890" {
		t.Errorf("unexpected provider: %+v", p.Provider)
	}
	if p.Patient.LastName != "DOE" || p.Patient.MemberID != "MBR001" {
		t.Errorf("unexpected patient: %+v", p.Patient)
	}
	if p.RawSegmentCount != 14 {
		t.Errorf("expected 14 segments, got %d", p.RawSegmentCount)
	}
}

func TestParse837_LineItems(t *testing.T) {
	p := ParseClaimText(sample837)

	if len(p.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(p.LineItems))
	}

	first := p.LineItems[0]
	if first.LineNumber != 1 {
		t.Errorf("expected line 1, got %d", first.LineNumber)
	}
	if first.ProcedureCode == nil || *first.ProcedureCode != "99213" {
		t.Errorf("expected procedure 99213, got %v", first.ProcedureCode)
	}
	if first.ProcedureModifier == nil || *first.ProcedureModifier != "25" {
		t.Errorf("expected modifier 25, got %v", first.ProcedureModifier)
	}
	if first.ChargeAmount == nil || *first.ChargeAmount != 125.00 {
		t.Errorf("expected charge 125.00, got %v", first.ChargeAmount)
	}
	if first.Units != 1 {
		t.Errorf("expected units 1, got %g", first.Units)
	}
	if first.ServiceDate == nil || *first.ServiceDate != "20240110" {
		t.Errorf("expected service date 20240110, got %v", first.ServiceDate)
	}
	// Diagnosis pointer 1 resolves to the first HI composite code.
	if first.DiagnosisCode == nil || *first.DiagnosisCode != "J189" {
		t.Errorf("expected diagnosis J189, got %v", first.DiagnosisCode)
	}

	second := p.LineItems[1]
	if second.ProcedureCode == nil || *second.ProcedureCode != "99284" {
		t.Errorf("expected procedure 99284, got %v", second.ProcedureCode)
	}
	if second.ChargeAmount == nil || *second.ChargeAmount != 375.00 {
		t.Errorf("expected charge 375.00, got %v", second.ChargeAmount)
	}
	if second.Units != 2 {
		t.Errorf("expected units 2, got %g", second.Units)
	}
	// SV2 carries no diagnosis pointer.
	if second.DiagnosisCode != nil {
		t.Errorf("expected missing diagnosis, got %v", *second.DiagnosisCode)
	}
	if second.ServiceDate != nil {
		t.Errorf("expected missing service date, got %v", *second.ServiceDate)
	}
}

func TestParse837_CodeSets(t *testing.T) {
	p := ParseClaimText(sample837)

	if want := []string{"99213", "99284"}; !reflect.DeepEqual(p.CPTCodes, want) {
		t.Errorf("cpt = %v, want %v", p.CPTCodes, want)
	}
	if len(p.HCPCSCodes) != 0 {
		t.Errorf("expected no hcpcs codes, got %v", p.HCPCSCodes)
	}
}

func TestParseText_Detects835(t *testing.T) {
	result := ParseText(sample835)

	if result.Kind != KindRemittance {
		t.Fatalf("expected kind %q, got %q", KindRemittance, result.Kind)
	}
	r := result.Remittance
	if r == nil {
		t.Fatal("expected remittance payload")
	}
	if r.TransactionID != "2001" {
		t.Errorf("expected transaction id 2001, got %q", r.TransactionID)
	}
	if r.PaymentDate != "20240201" {
		t.Errorf("expected payment date 20240201, got %q", r.PaymentDate)
	}
	if r.Payer.Name != "ACME HEALTH PLAN" {
		t.Errorf("unexpected payer: %+v", r.Payer)
	}
	if r.Payee.Name != "SUNRISE MEDICAL GROUP" || r.Payee.NPI != "1234567890" {
		t.Errorf("unexpected payee: %+v", r.Payee)
	}

	if len(r.Claims) != 2 {
		t.Fatalf("expected 2 claim payments, got %d", len(r.Claims))
	}
	first := r.Claims[0]
	if first.ClaimNumber != "CLM001" || first.ClaimStatus != "1" {
		t.Errorf("unexpected first claim: %+v", first)
	}
	if first.ChargeAmount != 500.00 || first.PaidAmount != 400.00 || first.PatientResponsibility != 100.00 {
		t.Errorf("unexpected first claim amounts: %+v", first)
	}
	if first.ClaimFilingIndicator != "MC" {
		t.Errorf("expected filing indicator MC, got %q", first.ClaimFilingIndicator)
	}

	if r.Summary.TotalClaims != 2 {
		t.Errorf("expected 2 total claims, got %d", r.Summary.TotalClaims)
	}
	if r.Summary.TotalPaymentAmount != 905.00 {
		t.Errorf("expected total payment 905.00, got %g", r.Summary.TotalPaymentAmount)
	}
	if r.Summary.TransactionControlNumber != "2001" {
		t.Errorf("expected control number 2001, got %q", r.Summary.TransactionControlNumber)
	}
}

func TestParseClaimText_RemittanceYieldsSparseClaim(t *testing.T) {
	// The engines extract any document 837-shaped; an 835 produces a claim
	// full of missing fields rather than an error.
	p := ParseClaimText(sample835)

	if p.ClaimNumber != "" {
		t.Errorf("expected no claim number, got %q", p.ClaimNumber)
	}
	if len(p.LineItems) != 0 {
		t.Errorf("expected no line items, got %d", len(p.LineItems))
	}
	// The PR entity is still found since 835s carry one too.
	if p.Payer.Name != "ACME HEALTH PLAN" {
		t.Errorf("expected payer extraction to still work, got %+v", p.Payer)
	}
}

func TestParseText_EmptyInput(t *testing.T) {
	result := ParseText("")

	if result.Kind != KindClaim {
		t.Fatalf("expected default kind %q, got %q", KindClaim, result.Kind)
	}
	if result.Claim.RawSegmentCount != 0 {
		t.Errorf("expected 0 segments, got %d", result.Claim.RawSegmentCount)
	}
}

func TestToClaim_NormalizesMissing(t *testing.T) {
	p := &ParsedClaim{ClaimNumber: "CLM003", ChargeAmount: 0}
	c := p.ToClaim()

	if c.ChargeAmount != nil {
		t.Errorf("expected zero charge normalized to missing, got %v", *c.ChargeAmount)
	}
	if c.ClaimNumber != "CLM003" {
		t.Errorf("expected claim number preserved, got %q", c.ClaimNumber)
	}
}
