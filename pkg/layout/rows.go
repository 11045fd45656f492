package layout

import (
	"strconv"

	"github.com/regview/regview-go/pkg/bitrange"
	"github.com/regview/regview-go/pkg/periph"
)

// Register detail defaults for values the source data omits.
const (
	DefaultAccess     = "R/W"
	DefaultResetValue = "0x0"
)

// FieldRow is one line of the field-detail table.
type FieldRow struct {
	// Key joins the row with its Segment (the field name).
	Key         string
	Name        string
	Range       bitrange.Range
	Label       string // "MSB" or "MSB:LSB"
	Description string
	Access      string
	ReadAction  string

	// Values lists enumerated values in declaration order; nil when the
	// field declares none.
	Values []EnumRow

	// ResetBits is the field's slice of the register reset value, when the
	// reset value is known.
	ResetBits *uint64
}

// EnumRow is one enumerated value of a field.
type EnumRow struct {
	Value       *int64
	Name        string
	Description string
}

// ValueLabel formats the value, or "?" when the source declared none.
func (e EnumRow) ValueLabel() string {
	if e.Value == nil {
		return "?"
	}
	return strconv.FormatInt(*e.Value, 10)
}

// Rows returns field-detail rows ordered by descending MSB. The field list
// is validated with the same rules as Layout.
func Rows(fields []periph.Field, wordWidth int) ([]FieldRow, error) {
	sorted, err := sortFields(fields, wordWidth)
	if err != nil {
		return nil, err
	}

	rows := make([]FieldRow, len(sorted))
	for i, f := range sorted {
		r := bitrange.FromField(f.BitOffset, f.BitWidth)
		rows[i] = FieldRow{
			Key:         f.Name,
			Name:        f.Name,
			Range:       r,
			Label:       r.Label(),
			Description: f.Description,
			Access:      f.Access,
			ReadAction:  f.ReadAction,
		}
		if len(f.EnumeratedValues) > 0 {
			values := make([]EnumRow, len(f.EnumeratedValues))
			for j, ev := range f.EnumeratedValues {
				values[j] = EnumRow{Value: ev.Value, Name: ev.Name, Description: ev.Description}
			}
			rows[i].Values = values
		}
	}
	return rows, nil
}

// RegisterDetail is everything needed to draw one register: header, bit
// diagram segments and field table.
type RegisterDetail struct {
	Name        string
	OffsetLabel string
	Description string
	Access      string
	ResetValue  string
	WordWidth   int
	Segments    []Segment
	Rows        []FieldRow

	// Size is the declared register size in bits, zero when undeclared.
	// It is informational; the layout always spans WordWidth.
	Size int

	// Empty is set when the register declares no fields.
	Empty bool
}

// Detail lays out a register in a DefaultWordWidth word and builds its field
// table.
func Detail(reg periph.Register) (*RegisterDetail, error) {
	width := DefaultWordWidth

	segments, err := Layout(reg.Fields, width)
	if err != nil {
		return nil, err
	}
	rows, err := Rows(reg.Fields, width)
	if err != nil {
		return nil, err
	}

	d := &RegisterDetail{
		Name:        reg.Name,
		OffsetLabel: bitrange.FormatOffset(reg.AddressOffset),
		Description: reg.Description,
		Access:      reg.Access,
		ResetValue:  reg.ResetValue,
		WordWidth:   width,
		Segments:    segments,
		Rows:        rows,
		Empty:       len(reg.Fields) == 0,
		Size:        int(reg.Size),
	}
	if d.Access == "" {
		d.Access = DefaultAccess
	}
	if d.ResetValue == "" {
		d.ResetValue = DefaultResetValue
	}

	if reset, err := bitrange.ParseHex(reg.ResetValue); err == nil {
		for i := range d.Rows {
			bits := d.Rows[i].Range.Extract(reset)
			d.Rows[i].ResetBits = &bits
		}
	}

	return d, nil
}
