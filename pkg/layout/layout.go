package layout

import (
	"fmt"
	"sort"

	"github.com/regview/regview-go/pkg/bitrange"
	"github.com/regview/regview-go/pkg/periph"
)

// DefaultWordWidth is the word every register is laid out in. A declared
// register size does not change it.
const DefaultWordWidth = 32

// SegmentKind distinguishes declared fields from synthesized gaps.
type SegmentKind uint8

const (
	// SegmentField covers a declared field.
	SegmentField SegmentKind = iota
	// SegmentReserved covers bits no field declares.
	SegmentReserved
)

// String returns the kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentField:
		return "field"
	case SegmentReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// Segment is a contiguous run of bits within the register word.
type Segment struct {
	Kind  SegmentKind
	Range bitrange.Range

	// Field is set for field segments only.
	Field *periph.Field

	// ColorIndex is the field's position in descending-MSB order.
	// Zero for reserved segments.
	ColorIndex int
}

// IsReserved reports whether the segment is a synthesized gap.
func (s Segment) IsReserved() bool {
	return s.Kind == SegmentReserved
}

// Key returns the identifier shared with the matching FieldRow.
// Reserved segments have no key.
func (s Segment) Key() string {
	if s.Field == nil {
		return ""
	}
	return s.Field.Name
}

// Label is the inline text for the segment: the field name when the field is
// wider than one bit, otherwise empty.
func (s Segment) Label() string {
	if s.Field == nil || s.Range.Width() <= 1 {
		return ""
	}
	return s.Field.Name
}

// Title is the tooltip text, set for every segment.
func (s Segment) Title() string {
	if s.Field == nil {
		return "Reserved " + s.Range.Span()
	}
	return s.Field.Name + " " + s.Range.Span()
}

// Fraction returns the share of the word the segment occupies.
func (s Segment) Fraction(wordWidth int) float64 {
	return s.Range.Fraction(wordWidth)
}

// Layout partitions a word of wordWidth bits into field and reserved
// segments, ordered from the most significant bit to bit zero.
// An empty field list yields a single reserved segment covering the word.
func Layout(fields []periph.Field, wordWidth int) ([]Segment, error) {
	sorted, err := sortFields(fields, wordWidth)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, 2*len(sorted)+1)
	current := wordWidth - 1

	for i := range sorted {
		f := &sorted[i]
		r := bitrange.FromField(f.BitOffset, f.BitWidth)

		if current > r.MSB {
			segments = append(segments, Segment{
				Kind:  SegmentReserved,
				Range: bitrange.Range{MSB: current, LSB: r.MSB + 1},
			})
		}
		segments = append(segments, Segment{
			Kind:       SegmentField,
			Range:      r,
			Field:      f,
			ColorIndex: i,
		})
		current = r.LSB - 1
	}

	if current >= 0 {
		segments = append(segments, Segment{
			Kind:  SegmentReserved,
			Range: bitrange.Range{MSB: current, LSB: 0},
		})
	}

	return segments, nil
}

// sortFields validates the field list and returns a copy sorted by
// descending MSB.
func sortFields(fields []periph.Field, wordWidth int) ([]periph.Field, error) {
	if wordWidth < 1 {
		return nil, &LayoutError{
			Kind:      KindInvalidField,
			WordWidth: wordWidth,
			Detail:    fmt.Sprintf("word width %d", wordWidth),
		}
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, &LayoutError{Kind: KindInvalidField, WordWidth: wordWidth, Detail: "missing name"}
		}
		if f.BitOffset < 0 || f.BitWidth < 1 {
			return nil, &LayoutError{
				Kind:      KindInvalidField,
				Field:     f.Name,
				WordWidth: wordWidth,
				Detail:    fmt.Sprintf("offset %d, width %d", f.BitOffset, f.BitWidth),
			}
		}
		if f.BitOffset+f.BitWidth > wordWidth {
			return nil, &LayoutError{
				Kind:      KindExceedsWord,
				Field:     f.Name,
				WordWidth: wordWidth,
				Detail:    fmt.Sprintf("bits %d:%d in %d-bit word", f.MSB(), f.BitOffset, wordWidth),
			}
		}
		if _, dup := seen[f.Name]; dup {
			return nil, &LayoutError{Kind: KindDuplicateName, Field: f.Name, Other: f.Name, WordWidth: wordWidth}
		}
		seen[f.Name] = struct{}{}
	}

	sorted := make([]periph.Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MSB() > sorted[j].MSB()
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.MSB() >= prev.BitOffset {
			return nil, &LayoutError{
				Kind:      KindOverlap,
				Field:     prev.Name,
				Other:     cur.Name,
				WordWidth: wordWidth,
				Detail: fmt.Sprintf("%s and %s",
					bitrange.FromField(prev.BitOffset, prev.BitWidth).Span(),
					bitrange.FromField(cur.BitOffset, cur.BitWidth).Span()),
			}
		}
	}

	return sorted, nil
}
