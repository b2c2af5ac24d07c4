package x12

import "testing"

func TestTokenize_SplitsSegmentsAndElements(t *testing.T) {
	raw := "ST*837*0001~BHT*0019*00*REF1*20240115*1200~CLM*CLM001*500.00***11~"
	segs := Tokenize(raw)

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].ID() != "ST" {
		t.Errorf("expected first segment ST, got %q", segs[0].ID())
	}
	if got := segs[0].Element(2); got != "0001" {
		t.Errorf("expected ST element 2 = 0001, got %q", got)
	}
	if got := segs[2].Element(1); got != "CLM001" {
		t.Errorf("expected CLM element 1 = CLM001, got %q", got)
	}
}

func TestTokenize_StripsWhitespaceAndBlankSegments(t *testing.T) {
	raw := "ST*837*0001~\n\nBHT*0019*00~~\n  ~SE*10*0001~\n"
	segs := Tokenize(raw)

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	for i, seg := range segs {
		if seg.ID() == "" {
			t.Errorf("segment %d has empty identifier", i)
		}
	}
}

func TestTokenize_PreservesSpacesInsideElements(t *testing.T) {
	raw := "ST*837*0001~\nNM1*PR*2*ACME HEALTH PLAN*****PI*66666~\n  NM1*85*2*SUNRISE MEDICAL GROUP*****XX*1234567890~\n"
	segs := Tokenize(raw)

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if got := segs[1].Element(3); got != "ACME HEALTH PLAN" {
		t.Errorf("expected payer name with spaces intact, got %q", got)
	}
	// Indentation before a segment must not leak into its identifier.
	if got := segs[2].ID(); got != "NM1" {
		t.Errorf("expected identifier NM1, got %q", got)
	}
	if got := segs[2].Element(3); got != "SUNRISE MEDICAL GROUP" {
		t.Errorf("expected provider name with spaces intact, got %q", got)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	if segs := Tokenize(""); len(segs) != 0 {
		t.Errorf("expected no segments for empty input, got %d", len(segs))
	}
	if segs := Tokenize("   \n\t "); len(segs) != 0 {
		t.Errorf("expected no segments for whitespace input, got %d", len(segs))
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	raw := "ST*837*0001~NM1*PR*2*ACME HEALTH*****PI*12345~CLM*C1*100~"
	a := Tokenize(raw)
	b := Tokenize(raw)

	if len(a) != len(b) {
		t.Fatalf("segment counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Elements) != len(b[i].Elements) {
			t.Fatalf("segment %d element counts differ", i)
		}
		for j := range a[i].Elements {
			if a[i].Elements[j] != b[i].Elements[j] {
				t.Errorf("segment %d element %d differs: %q vs %q", i, j, a[i].Elements[j], b[i].Elements[j])
			}
		}
	}
}

func TestSegment_BoundsCheckedAccess(t *testing.T) {
	seg := Segment{Elements: []string{"CLM", "CLM001"}}

	if got := seg.Element(5); got != "" {
		t.Errorf("expected empty string for out-of-range element, got %q", got)
	}
	if got := seg.Element(-1); got != "" {
		t.Errorf("expected empty string for negative index, got %q", got)
	}
	if got := seg.Float(2); got != 0 {
		t.Errorf("expected 0.0 for absent float element, got %v", got)
	}
}

func TestSegment_Float(t *testing.T) {
	seg := Segment{Elements: []string{"CLM", "C1", "500.25", "abc"}}

	if got := seg.Float(2); got != 500.25 {
		t.Errorf("expected 500.25, got %v", got)
	}
	if got := seg.Float(3); got != 0 {
		t.Errorf("expected 0.0 for unparseable element, got %v", got)
	}
}

func TestSegment_Component(t *testing.T) {
	seg := Segment{Elements: []string{"SV1", "HC:99213:25", "125.00"}}

	if got := seg.Component(1, 1); got != "99213" {
		t.Errorf("expected component 99213, got %q", got)
	}
	if got := seg.Component(1, 2); got != "25" {
		t.Errorf("expected modifier component 25, got %q", got)
	}
	if got := seg.Component(1, 5); got != "" {
		t.Errorf("expected empty string for missing component, got %q", got)
	}
	if got := seg.Component(2, 0); got != "125.00" {
		t.Errorf("expected whole element for component 0, got %q", got)
	}
}
