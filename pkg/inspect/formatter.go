package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/regview/regview-go/pkg/browse"
	"github.com/regview/regview-go/pkg/layout"
	"github.com/regview/regview-go/pkg/nav"
)

// Formatter formats pages for terminal output.
type Formatter struct {
	// ShowDescriptions includes description text in lists and tables.
	ShowDescriptions bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int

	// CellWidth is the number of columns per bit in the bit diagram,
	// including the separator. Minimum 3.
	CellWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowDescriptions: true,
		IndentWidth:      2,
		CellWidth:        3,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatPage renders a page with its breadcrumb line.
func (f *Formatter) FormatPage(p *browse.Page) string {
	var sb strings.Builder
	sb.WriteString(nav.BreadcrumbText(p.State))
	sb.WriteString("\n\n")

	switch {
	case p.Dashboard != nil:
		sb.WriteString(f.FormatDashboard(*p.Dashboard))
	case p.Instances != nil:
		sb.WriteString(f.FormatInstances(*p.Instances))
	case p.Registers != nil:
		sb.WriteString(f.FormatRegisters(*p.Registers))
	case p.Detail != nil:
		sb.WriteString(f.FormatDetail(p.Detail))
	}
	return sb.String()
}

// FormatDashboard renders the category tree.
func (f *Formatter) FormatDashboard(v browse.DashboardView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d peripherals in %d groups\n", v.PeripheralCount, v.GroupCount)

	section := func(name string, cards []browse.ModuleCard) {
		sb.WriteString("\n" + name + "\n")
		for _, c := range cards {
			sb.WriteString(f.Indent(1, fmt.Sprintf("%-16s %d\n", c.Group, c.Count)))
		}
	}
	for _, c := range v.Categories {
		section(c.Name, c.Cards)
	}
	if len(v.Uncategorized) > 0 {
		section("Uncategorized", v.Uncategorized)
	}
	return sb.String()
}

// FormatInstances renders the instance list of a group.
func (f *Formatter) FormatInstances(v browse.InstancesView) string {
	var sb strings.Builder
	sb.WriteString(v.Group)
	if v.Category != "" {
		sb.WriteString(" (" + v.Category + ")")
	}
	sb.WriteString("\n")

	if len(v.Instances) == 0 {
		sb.WriteString(f.Indent(1, "(no instances)\n"))
		return sb.String()
	}
	for _, p := range v.Instances {
		line := fmt.Sprintf("%-16s %-12s %3d registers", p.Name, p.BaseAddress, len(p.Registers))
		sb.WriteString(f.Indent(1, line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatRegisters renders the peripheral header and register table.
func (f *Formatter) FormatRegisters(v browse.RegistersView) string {
	var sb strings.Builder
	p := v.Peripheral
	sb.WriteString(p.Name)
	if p.BaseAddress != "" {
		sb.WriteString(" @ " + p.BaseAddress)
	}
	sb.WriteString("\n")
	if f.ShowDescriptions && p.Description != "" {
		sb.WriteString(f.Indent(1, p.Description) + "\n")
	}
	sb.WriteString("\n")

	if len(v.Rows) == 0 {
		sb.WriteString(f.Indent(1, "(no registers)\n"))
		return sb.String()
	}

	nameWidth := len("REGISTER")
	for _, r := range v.Rows {
		nameWidth = max(nameWidth, len(r.Name))
	}
	sb.WriteString(f.Indent(1, fmt.Sprintf("%-7s %-*s %6s", "OFFSET", nameWidth, "REGISTER", "FIELDS")))
	if f.ShowDescriptions {
		sb.WriteString("  DESCRIPTION")
	}
	sb.WriteString("\n")
	for _, r := range v.Rows {
		line := fmt.Sprintf("%-7s %-*s %6d", r.OffsetLabel, nameWidth, r.Name, r.FieldCount)
		if f.ShowDescriptions && r.Description != "" {
			line += "  " + firstLine(r.Description)
		}
		sb.WriteString(f.Indent(1, line) + "\n")
	}
	return sb.String()
}

// FormatDetail renders the register header, bit diagram and field table.
func (f *Formatter) FormatDetail(d *layout.RegisterDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  offset %s  access %s  reset %s  (%d bits", d.Name, d.OffsetLabel, d.Access, d.ResetValue, d.WordWidth)
	if d.Size != 0 && d.Size != d.WordWidth {
		fmt.Fprintf(&sb, ", declared size %d", d.Size)
	}
	sb.WriteString(")\n")
	if f.ShowDescriptions && d.Description != "" {
		sb.WriteString(f.Indent(1, d.Description) + "\n")
	}
	sb.WriteString("\n")

	if d.Empty {
		sb.WriteString(f.Indent(1, "(no fields)\n"))
		return sb.String()
	}

	sb.WriteString(f.BitDiagram(d.Segments, d.WordWidth))
	sb.WriteString("\n")
	sb.WriteString(f.FieldTable(d.Rows))
	return sb.String()
}

// FieldTable renders one line per field with enumerated values indented
// beneath it.
func (f *Formatter) FieldTable(rows []layout.FieldRow) string {
	if len(rows) == 0 {
		return f.Indent(1, "(no fields)\n")
	}

	nameWidth := len("FIELD")
	for _, r := range rows {
		nameWidth = max(nameWidth, len(r.Name))
	}

	var sb strings.Builder
	header := fmt.Sprintf("%-7s %-*s %-6s %-8s", "BITS", nameWidth, "FIELD", "ACCESS", "RESET")
	if f.ShowDescriptions {
		header += " DESCRIPTION"
	}
	sb.WriteString(f.Indent(1, strings.TrimRight(header, " ")) + "\n")

	for _, r := range rows {
		reset := "-"
		if r.ResetBits != nil {
			reset = fmt.Sprintf("0x%X", *r.ResetBits)
		}
		access := r.Access
		if access == "" {
			access = "-"
		}
		line := fmt.Sprintf("%-7s %-*s %-6s %-8s", r.Label, nameWidth, r.Name, access, reset)
		if f.ShowDescriptions && r.Description != "" {
			line += " " + firstLine(r.Description)
		}
		sb.WriteString(f.Indent(1, strings.TrimRight(line, " ")) + "\n")
		if r.ReadAction != "" {
			sb.WriteString(f.Indent(3, "read action: "+r.ReadAction) + "\n")
		}
		for _, e := range r.Values {
			val := fmt.Sprintf("%4s = %s", e.ValueLabel(), e.Name)
			if f.ShowDescriptions && e.Description != "" {
				val += "  " + firstLine(e.Description)
			}
			sb.WriteString(f.Indent(3, val) + "\n")
		}
	}
	return sb.String()
}

// FormatError renders an error for the terminal. Layout errors name the
// offending fields.
func (f *Formatter) FormatError(err error) string {
	var le *layout.LayoutError
	if errors.As(err, &le) {
		var sb strings.Builder
		sb.WriteString("cannot lay out register: " + le.Kind.String() + "\n")
		if le.Field != "" {
			sb.WriteString(f.Indent(1, "field: "+le.Field) + "\n")
		}
		if le.Other != "" {
			sb.WriteString(f.Indent(1, "conflicts with: "+le.Other) + "\n")
		}
		if le.Detail != "" {
			sb.WriteString(f.Indent(1, le.Detail) + "\n")
		}
		return sb.String()
	}
	return "error: " + err.Error() + "\n"
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
