package x12

import "strings"

// NM1 entity identifier qualifiers used by the 837/835 transactions handled
// here. The NM1 segment is multi-role; element 1 discriminates which party the
// segment describes.
const (
	EntityPayer           = "PR" // payer
	EntityBillingProvider = "85" // billing provider
	EntityReceiver        = "40" // receiving entity
	EntityPatient         = "QC" // patient (837)
	EntityPayee           = "PE" // payee (835)
)

// Entity is a party extracted from an NM1 segment.
//
// NM1 layout: NM1*<qualifier>*<entity type>*<last or org name>*<first>*...*<id qualifier>*<id>
type Entity struct {
	Qualifier   string `json:"-"`
	EntityType  string `json:"entity_type"` // "1" person, "2" non-person
	LastName    string `json:"last_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	IDQualifier string `json:"-"`
	ID          string `json:"id,omitempty"`
}

// Name renders the entity name: the organization name for non-person entities,
// "First Last" for persons.
func (e Entity) Name() string {
	if e.EntityType == "1" && e.FirstName != "" {
		return strings.TrimSpace(e.FirstName + " " + e.LastName)
	}
	return e.LastName
}

// FindFirst returns the first segment with the given identifier.
func FindFirst(segments []Segment, id string) (Segment, bool) {
	for _, seg := range segments {
		if seg.ID() == id {
			return seg, true
		}
	}
	return Segment{}, false
}

// FindAll returns every segment with the given identifier, in document order.
func FindAll(segments []Segment, id string) []Segment {
	var out []Segment
	for _, seg := range segments {
		if seg.ID() == id {
			out = append(out, seg)
		}
	}
	return out
}

// FindEntity locates the first NM1 segment whose entity identifier qualifier
// (element 1) matches and extracts the party fields positionally.
func FindEntity(segments []Segment, qualifier string) (Entity, bool) {
	for _, seg := range segments {
		if seg.ID() != "NM1" || seg.Element(1) != qualifier {
			continue
		}
		return Entity{
			Qualifier:   qualifier,
			EntityType:  seg.Element(2),
			LastName:    seg.Element(3),
			FirstName:   seg.Element(4),
			IDQualifier: seg.Element(8),
			ID:          seg.Element(9),
		}, true
	}
	return Entity{}, false
}

// ServiceLine is one claim service line assembled from an LX segment and the
// SV1/SV2 and DTP segments that follow it.
type ServiceLine struct {
	LineNumber       int
	ProcedureCode    string
	Modifier         string
	Charge           float64
	Units            string // raw units element, "" when absent
	ServiceDate      string
	PlaceOfService   string
	DiagnosisPointer int // 1-based pointer into the claim HI diagnosis list, 0 when absent
}

// ServiceLines walks the segment list and associates each LX segment with the
// service-line segment that logically follows it: the first SV1
// (professional) or SV2 (institutional) before the next LX or CLM supplies
// procedure code, modifier, charge, and units, and a DTP*472 in the same span
// supplies the service date. A malformed span degrades that line only.
func ServiceLines(segments []Segment) []ServiceLine {
	var lines []ServiceLine
	var current *ServiceLine

	flush := func() {
		if current != nil {
			lines = append(lines, *current)
			current = nil
		}
	}

	for _, seg := range segments {
		switch seg.ID() {
		case "LX":
			flush()
			num := seg.Int(1)
			if num == 0 {
				num = len(lines) + 1
			}
			current = &ServiceLine{LineNumber: num}
		case "SV1":
			if current == nil || current.ProcedureCode != "" {
				continue
			}
			// SV1-1 is a composite: qualifier:code:modifier
			current.ProcedureCode = seg.Component(1, 1)
			current.Modifier = seg.Component(1, 2)
			current.Charge = seg.Float(2)
			current.Units = seg.Element(4)
			current.PlaceOfService = seg.Element(5)
			current.DiagnosisPointer = atoiComponent(seg, 7)
		case "SV2":
			if current == nil || current.ProcedureCode != "" {
				continue
			}
			// SV2-2 is the composite; charge and units shift one position right.
			current.ProcedureCode = seg.Component(2, 1)
			current.Modifier = seg.Component(2, 2)
			current.Charge = seg.Float(3)
			current.Units = seg.Element(5)
		case "DTP":
			// DTP*472 carries the service date for the open line.
			if current != nil && seg.Element(1) == "472" && current.ServiceDate == "" {
				current.ServiceDate = seg.Element(3)
			}
		case "CLM", "SE":
			flush()
		}
	}
	flush()
	return lines
}

// DiagnosisCodes collects claim-level diagnosis codes from HI segments. Each
// HI element is a composite qualifier:code pair; codes are returned in
// document order so SV1 diagnosis pointers index into them 1-based.
func DiagnosisCodes(segments []Segment) []string {
	var codes []string
	for _, seg := range FindAll(segments, "HI") {
		for i := 1; i < len(seg.Elements); i++ {
			if code := seg.Component(i, 1); code != "" {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

// atoiComponent reads the first component of a composite element as an int,
// tolerating a bare pointer ("1") and a composite pointer list ("1:2:3").
func atoiComponent(seg Segment, i int) int {
	first := seg.Component(i, 0)
	if first == "" {
		return 0
	}
	n := 0
	for _, r := range first {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
