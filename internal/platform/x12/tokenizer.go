// Package x12 implements tokenizing and positional field extraction for ANSI
// X12 healthcare transactions (837 professional claims, 835 remittance advice).
// It deals only in segments and elements; mapping to domain claim structures
// lives in the claims domain package.
package x12

import (
	"strconv"
	"strings"
)

// Fixed X12 delimiters. Interchange-negotiated delimiters (ISA positions) are
// not supported; the transactions handled here always use the defaults.
const (
	SegmentTerminator   = "~"
	ElementSeparator    = "*"
	SubElementSeparator = ":"
	RepetitionSeparator = "^"
)

// Segment is one delimited X12 record. Elements[0] is the segment identifier
// (e.g. "ST", "CLM"); the remaining elements are positional fields.
type Segment struct {
	Elements []string
}

// ID returns the segment identifier, or "" for an empty segment.
func (s Segment) ID() string {
	return s.Element(0)
}

// Element returns the element at index i, or "" when the segment is shorter
// than expected. Extraction is always bounds-checked so a truncated segment
// degrades the specific field instead of aborting the transaction.
func (s Segment) Element(i int) string {
	if i < 0 || i >= len(s.Elements) {
		return ""
	}
	return s.Elements[i]
}

// Float returns the element at index i parsed as a float, or 0.0 when the
// element is absent or unparseable.
func (s Segment) Float(i int) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s.Element(i)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Int returns the element at index i parsed as an int, or 0 when absent or
// unparseable.
func (s Segment) Int(i int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.Element(i)))
	if err != nil {
		return 0
	}
	return n
}

// Component returns the 0-based component of a composite element, splitting on
// the sub-element separator. Component(i, 0) of a non-composite element is the
// element itself.
func (s Segment) Component(i, comp int) string {
	parts := strings.Split(s.Element(i), SubElementSeparator)
	if comp < 0 || comp >= len(parts) {
		return ""
	}
	return parts[comp]
}

// Tokenize splits raw transaction text into an ordered list of segments. The
// text is split on the segment terminator, whitespace around each segment
// (line breaks and indentation between segments) is trimmed, blank results
// are discarded, and each segment is split on the element separator.
// Whitespace inside an element is preserved — entity names carry meaningful
// spaces. Tokenize never fails; unusable input simply yields zero segments.
func Tokenize(raw string) []Segment {
	var segments []Segment
	for _, chunk := range strings.Split(raw, SegmentTerminator) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		segments = append(segments, Segment{Elements: strings.Split(chunk, ElementSeparator)})
	}
	return segments
}
