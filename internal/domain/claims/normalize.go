package claims

import (
	"strconv"
	"strings"
)

// Candidate source keys per canonical field, tried in order; the first
// populated key wins, so precedence is statically checkable.
var (
	aliasLineNumber     = []string{"line_number", "line", "sequence"}
	aliasProcedureCode  = []string{"procedure_code", "cpt_code", "hcpcs_code", "code"}
	aliasModifier       = []string{"procedure_modifier", "modifier"}
	aliasDiagnosisCode  = []string{"diagnosis_code", "dx_code", "diagnosis"}
	aliasUnits          = []string{"units", "quantity"}
	aliasChargeAmount   = []string{"charge_amount", "amount", "charge"}
	aliasServiceDate    = []string{"service_date", "date_of_service", "dos"}
	aliasPlaceOfService = []string{"place_of_service", "pos"}
	aliasDescription    = []string{"description", "procedure_description"}

	aliasClaimNumber      = []string{"claim_number", "claim_id"}
	aliasClaimCharge      = []string{"charge_amount", "total_charge", "amount"}
	aliasClaimPOS         = []string{"place_of_service", "pos"}
	aliasLineItems        = []string{"line_items", "lines", "services", "items"}
	aliasProviderNPI      = []string{"npi", "provider_npi", "id"}
	aliasPartyName        = []string{"name", "organization_name", "last_name"}
	aliasPayerID          = []string{"id", "payer_id"}
	aliasPatientLastName  = []string{"last_name", "family_name"}
	aliasPatientFirstName = []string{"first_name", "given_name"}
	aliasPatientMemberID  = []string{"member_id", "subscriber_id"}
)

// firstString resolves the first candidate key holding a non-empty string.
func firstString(raw map[string]interface{}, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		}
	}
	return ""
}

// firstFloat resolves the first candidate key holding a numeric value,
// coercing numeric strings. The second return reports whether any candidate
// key was present at all, so callers can distinguish absent from zero.
func firstFloat(raw map[string]interface{}, keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// NormalizeLineItem maps a raw line-item document onto the canonical schema.
// After alias resolution, empty strings and zero amounts resolve to missing;
// units defaults to 1.0 when no candidate key is present.
func NormalizeLineItem(raw map[string]interface{}, ordinal int) LineItem {
	li := LineItem{
		ProcedureCode:     stringPtr(firstString(raw, aliasProcedureCode)),
		ProcedureModifier: stringPtr(firstString(raw, aliasModifier)),
		DiagnosisCode:     stringPtr(firstString(raw, aliasDiagnosisCode)),
		ServiceDate:       stringPtr(firstString(raw, aliasServiceDate)),
		PlaceOfService:    stringPtr(firstString(raw, aliasPlaceOfService)),
		Description:       stringPtr(firstString(raw, aliasDescription)),
	}

	if n, ok := firstFloat(raw, aliasLineNumber); ok && n > 0 {
		li.LineNumber = int(n)
	} else {
		li.LineNumber = ordinal
	}

	if units, ok := firstFloat(raw, aliasUnits); ok && units >= 0 {
		li.Units = units
	} else {
		li.Units = 1.0
	}

	if charge, ok := firstFloat(raw, aliasChargeAmount); ok {
		li.ChargeAmount = amountPtr(charge)
	}

	return li
}

// NormalizeClaim maps a caller-supplied claim document onto the canonical
// Claim, resolving field aliases at both the claim and line level. Code sets
// are taken from the document when present and otherwise derived from the
// line-item procedure codes.
func NormalizeClaim(raw map[string]interface{}) *Claim {
	c := &Claim{
		ClaimNumber:    firstString(raw, aliasClaimNumber),
		PlaceOfService: firstString(raw, aliasClaimPOS),
	}
	if charge, ok := firstFloat(raw, aliasClaimCharge); ok {
		c.ChargeAmount = amountPtr(charge)
	}

	if provider, ok := subDocument(raw, "provider"); ok {
		c.Provider = Party{
			Name: firstString(provider, aliasPartyName),
			NPI:  firstString(provider, aliasProviderNPI),
		}
	} else {
		c.Provider = Party{
			Name: firstString(raw, []string{"provider_name"}),
			NPI:  firstString(raw, []string{"provider_npi"}),
		}
	}

	if payer, ok := subDocument(raw, "payer"); ok {
		c.Payer = Party{
			Name: firstString(payer, aliasPartyName),
			ID:   firstString(payer, aliasPayerID),
		}
	} else {
		c.Payer = Party{Name: firstString(raw, []string{"payer_name"})}
	}

	if patient, ok := subDocument(raw, "patient"); ok {
		c.Patient = Patient{
			LastName:  firstString(patient, aliasPatientLastName),
			FirstName: firstString(patient, aliasPatientFirstName),
			MemberID:  firstString(patient, aliasPatientMemberID),
		}
	}

	for _, key := range aliasLineItems {
		list, ok := raw[key].([]interface{})
		if !ok {
			continue
		}
		for i, entry := range list {
			doc, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			c.LineItems = append(c.LineItems, NormalizeLineItem(doc, i+1))
		}
		break
	}

	c.CPTCodes = stringList(raw, "cpt_codes")
	c.HCPCSCodes = stringList(raw, "hcpcs_codes")
	if c.CPTCodes == nil && c.HCPCSCodes == nil {
		var codes []string
		for _, li := range c.LineItems {
			if li.ProcedureCode != nil {
				codes = append(codes, *li.ProcedureCode)
			}
		}
		c.CPTCodes, c.HCPCSCodes = classifyCodes(codes)
	}

	return c
}

func subDocument(raw map[string]interface{}, key string) (map[string]interface{}, bool) {
	doc, ok := raw[key].(map[string]interface{})
	return doc, ok
}

func stringList(raw map[string]interface{}, key string) []string {
	list, ok := raw[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
