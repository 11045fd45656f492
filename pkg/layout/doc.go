// Package layout turns a register's declared bit fields into a complete,
// gap-filled partition of the register word.
//
// Layout returns segments ordered from the most significant bit down to bit
// zero. Every bit of the word belongs to exactly one segment: either a field
// segment or a reserved segment synthesized for an undeclared gap. Rows
// returns the matching field-detail rows; a segment and its row share the
// same Key so presentation code can join them for cross-highlighting.
//
// Malformed input fails fast with a *LayoutError instead of producing a
// corrupted partition:
//
//	segs, err := layout.Layout(reg.Fields, layout.DefaultWordWidth)
//	if errors.Is(err, layout.ErrOverlappingFields) {
//	    ...
//	}
package layout
