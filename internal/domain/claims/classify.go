package claims

import "strings"

// stripModifier removes a trailing "-modifier" suffix (e.g. "99213-25").
func stripModifier(code string) string {
	if i := strings.Index(code, "-"); i >= 0 {
		return code[:i]
	}
	return code
}

// IsCPT reports whether code is a CPT procedure code: after stripping any
// modifier suffix, exactly 5 digits.
func IsCPT(code string) bool {
	c := stripModifier(code)
	if len(c) != 5 {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsHCPCS reports whether code is an HCPCS Level II code: after stripping any
// modifier suffix, 5 characters, alphabetic first character, alphanumeric
// remainder.
func IsHCPCS(code string) bool {
	c := stripModifier(code)
	if len(c) != 5 {
		return false
	}
	if !isAlpha(c[0]) {
		return false
	}
	for i := 1; i < len(c); i++ {
		if !isAlpha(c[i]) && !isDigit(c[i]) {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// classifyCodes partitions procedure codes into ordered, de-duplicated CPT and
// HCPCS sets. Codes satisfying neither predicate are excluded from both; the
// risk engine, not the classifier, is responsible for flagging malformed codes.
func classifyCodes(codes []string) (cpt, hcpcs []string) {
	seenCPT := map[string]bool{}
	seenHCPCS := map[string]bool{}
	for _, code := range codes {
		switch {
		case IsCPT(code):
			if !seenCPT[code] {
				seenCPT[code] = true
				cpt = append(cpt, code)
			}
		case IsHCPCS(code):
			if !seenHCPCS[code] {
				seenHCPCS[code] = true
				hcpcs = append(hcpcs, code)
			}
		}
	}
	return cpt, hcpcs
}
