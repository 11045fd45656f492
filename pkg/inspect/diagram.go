package inspect

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/regview/regview-go/pkg/layout"
)

// BitDiagram draws segments as a boxed row of bit cells, MSB on the left:
//
//	 31 30 29 ...
//	+--------+--------
//	|  MODE  |--------
//	+--------+--------
//
// Fields wider than one bit carry their centered name, or "*" when it does
// not fit. One-bit fields are left blank and reserved segments are filled
// with "-".
func (f *Formatter) BitDiagram(segments []layout.Segment, wordWidth int) string {
	cell := max(f.CellWidth, 3)

	var numbers, border, labels strings.Builder
	numbers.WriteString(" ")
	for bit := wordWidth - 1; bit >= 0; bit-- {
		fmt.Fprintf(&numbers, "%*d ", cell-1, bit)
	}

	border.WriteString("+")
	labels.WriteString("|")
	for _, s := range segments {
		inner := s.Range.Width()*cell - 1
		border.WriteString(strings.Repeat("-", inner) + "+")
		labels.WriteString(segmentLabel(s, inner) + "|")
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(numbers.String(), " ") + "\n")
	sb.WriteString(border.String() + "\n")
	sb.WriteString(labels.String() + "\n")
	sb.WriteString(border.String() + "\n")
	return sb.String()
}

func segmentLabel(s layout.Segment, width int) string {
	if s.IsReserved() {
		return strings.Repeat("-", width)
	}
	name := s.Label()
	if utf8.RuneCountInString(name) > width {
		name = "*"
	}
	return center(name, width)
}

// center pads s to width runes.
func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
