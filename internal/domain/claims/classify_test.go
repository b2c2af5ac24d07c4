package claims

import (
	"reflect"
	"testing"
)

func TestIsCPT(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"99213", true},
		{"00100", true},
		{"99213-25", true}, // modifier stripped before the check
		{"9921", false},    // too short
		{"992134", false},  // too long
		{"J1100", false},   // HCPCS shape
		{"99A13", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsCPT(tc.code); got != tc.want {
			t.Errorf("IsCPT(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestIsHCPCS(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"J1100", true},
		{"A0428", true},
		{"G0008", true},
		{"J1100-59", true}, // modifier stripped
		{"j1100", true},    // lowercase alpha accepted
		{"99213", false},   // digit first
		{"J110", false},    // too short
		{"J11000", false},  // too long
		{"J11#0", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsHCPCS(tc.code); got != tc.want {
			t.Errorf("IsHCPCS(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestStripModifier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"99213-25", "99213"},
		{"99213", "99213"},
		{"J1100-59-76", "J1100"}, // everything after the first dash goes
		{"-25", ""},
	}
	for _, tc := range cases {
		if got := stripModifier(tc.in); got != tc.want {
			t.Errorf("stripModifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassifyCodes(t *testing.T) {
	cpt, hcpcs := classifyCodes([]string{"99213", "J1100", "99284", "99213", "BAD1", "A0428"})

	if want := []string{"99213", "99284"}; !reflect.DeepEqual(cpt, want) {
		t.Errorf("cpt = %v, want %v", cpt, want)
	}
	if want := []string{"J1100", "A0428"}; !reflect.DeepEqual(hcpcs, want) {
		t.Errorf("hcpcs = %v, want %v", hcpcs, want)
	}
}

func TestClassifyCodes_ExcludesUnrecognized(t *testing.T) {
	cpt, hcpcs := classifyCodes([]string{"XYZ", "1234", "12A45"})
	if cpt != nil || hcpcs != nil {
		t.Errorf("expected both sets empty, got cpt=%v hcpcs=%v", cpt, hcpcs)
	}
}
