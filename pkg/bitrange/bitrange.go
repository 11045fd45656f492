// Package bitrange provides arithmetic over inclusive bit ranges of a
// register word.
package bitrange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned by ParseHex for malformed input.
var ErrInvalidNumber = errors.New("invalid numeric value")

// Range is an inclusive bit range [MSB..LSB] with MSB >= LSB.
type Range struct {
	MSB int `json:"msb"`
	LSB int `json:"lsb"`
}

// FromField returns the range covered by a field at offset with width bits.
func FromField(offset, width int) Range {
	return Range{MSB: offset + width - 1, LSB: offset}
}

// Word returns the range covering a whole word of the given width.
func Word(width int) Range {
	return Range{MSB: width - 1, LSB: 0}
}

// Width returns the number of bits in the range.
func (r Range) Width() int {
	return r.MSB - r.LSB + 1
}

// Contains reports whether bit lies within the range.
func (r Range) Contains(bit int) bool {
	return bit >= r.LSB && bit <= r.MSB
}

// Overlaps reports whether the two ranges share at least one bit.
func (r Range) Overlaps(o Range) bool {
	return r.LSB <= o.MSB && o.LSB <= r.MSB
}

// Label formats the range as "MSB" for single bits and "MSB:LSB" otherwise.
func (r Range) Label() string {
	if r.MSB == r.LSB {
		return strconv.Itoa(r.MSB)
	}
	return fmt.Sprintf("%d:%d", r.MSB, r.LSB)
}

// String returns the label in brackets, e.g. "[11:8]" or "[3]".
func (r Range) String() string {
	return "[" + r.Label() + "]"
}

// Span always uses the two-number form, e.g. "[3:3]".
func (r Range) Span() string {
	return fmt.Sprintf("[%d:%d]", r.MSB, r.LSB)
}

// Fraction returns the share of a word of wordWidth bits the range occupies.
func (r Range) Fraction(wordWidth int) float64 {
	if wordWidth <= 0 {
		return 0
	}
	return float64(r.Width()) / float64(wordWidth)
}

// Mask returns the bit mask selecting the range. Ranges wider than 64 bits
// are clamped.
func (r Range) Mask() uint64 {
	w := r.Width()
	if w <= 0 {
		return 0
	}
	if w >= 64 {
		return ^uint64(0) << uint(r.LSB)
	}
	return ((uint64(1) << uint(w)) - 1) << uint(r.LSB)
}

// Extract returns the value of the range within v, shifted down to bit 0.
func (r Range) Extract(v uint64) uint64 {
	return (v & r.Mask()) >> uint(r.LSB)
}

// FormatOffset formats a register offset as uppercase hex with at least two
// digits, e.g. 0x0C or 0x1A4.
func FormatOffset(offset uint32) string {
	return fmt.Sprintf("0x%02X", offset)
}

// ParseHex parses "0x" prefixed hex, "#" prefixed hex or decimal values.
// Commas and surrounding space are ignored.
func ParseHex(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, ErrInvalidNumber
	}

	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 64)
	case strings.HasPrefix(s, "#"):
		v, err = strconv.ParseUint(s[1:], 16, 64)
	default:
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}
