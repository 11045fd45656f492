package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/regview/regview-go/pkg/inspect"
	"github.com/regview/regview-go/pkg/layout"
)

// GenerateIndexPage produces the site index: categories and their groups.
func GenerateIndexPage(m *DocModel) (string, error) {
	return renderTemplate("index.md.tmpl", m)
}

// GenerateGroupPage produces the instance list of one group.
func GenerateGroupPage(g *GroupDoc) (string, error) {
	return renderTemplate("group.md.tmpl", g)
}

// GeneratePeripheralPage produces the Markdown content for one peripheral:
// header, register table and one section per register.
func GeneratePeripheralPage(pd *PeripheralDoc) string {
	var b strings.Builder
	f := inspect.NewFormatter()

	writePeripheralHeader(&b, pd)
	writeRegisterTable(&b, pd)

	for _, r := range pd.Registers {
		writeRegisterSection(&b, f, r)
	}

	return b.String()
}

func writePeripheralHeader(b *strings.Builder, pd *PeripheralDoc) {
	p := pd.Peripheral
	fmt.Fprintf(b, "# %s\n\n", p.Name)

	if p.Description != "" {
		fmt.Fprintf(b, "> %s\n\n", cell(p.Description))
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(b, "| **Group** | [%s](../%s) |\n", pd.Group, groupPath(pd.Group))
	fmt.Fprintf(b, "| **Base address** | `%s` |\n", orDash(p.BaseAddress))
	if ab := p.AddressBlock; ab != nil {
		fmt.Fprintf(b, "| **Address block** | offset `%s`, size `%s` %s |\n",
			orDash(ab.Offset), orDash(ab.Size), ab.Usage)
	}
	fmt.Fprintf(b, "| **Registers** | %d |\n", len(pd.Registers))
	b.WriteString("\n")
}

func writeRegisterTable(b *strings.Builder, pd *PeripheralDoc) {
	if len(pd.Registers) == 0 {
		b.WriteString("This peripheral declares no registers.\n")
		return
	}

	b.WriteString("## Registers\n\n")
	b.WriteString("| Offset | Register | Fields | Description |\n")
	b.WriteString("|-------:|----------|-------:|-------------|\n")
	for _, r := range pd.Registers {
		fmt.Fprintf(b, "| `%s` | [%s](#%s) | %d | %s |\n",
			r.Row.OffsetLabel,
			r.Row.Name,
			registerAnchor(r.Row.Name),
			r.Row.FieldCount,
			cell(r.Row.Description),
		)
	}
	b.WriteString("\n")
}

func writeRegisterSection(b *strings.Builder, f *inspect.Formatter, r RegisterDoc) {
	fmt.Fprintf(b, "### %s {#%s}\n\n", r.Row.Name, registerAnchor(r.Row.Name))
	if r.Row.Description != "" {
		fmt.Fprintf(b, "%s\n\n", cell(r.Row.Description))
	}

	if r.Err != nil {
		b.WriteString("!!! failure \"Cannot lay out register\"\n\n")
		for _, line := range strings.Split(strings.TrimRight(f.FormatError(r.Err), "\n"), "\n") {
			fmt.Fprintf(b, "    %s\n", line)
		}
		b.WriteString("\n")
		return
	}

	d := r.Detail
	fmt.Fprintf(b, "Offset `%s` · Access `%s` · Reset `%s` · %d bits",
		r.Row.OffsetLabel, d.Access, d.ResetValue, d.WordWidth)
	if d.Size != 0 && d.Size != d.WordWidth {
		fmt.Fprintf(b, " (declared %d)", d.Size)
	}
	b.WriteString("\n\n")

	b.WriteString("```text\n")
	b.WriteString(f.BitDiagram(d.Segments, d.WordWidth))
	b.WriteString("```\n\n")

	if d.Empty {
		b.WriteString("This register declares no fields.\n\n")
		return
	}
	writeFieldTable(b, d.Rows)
	writeFieldValues(b, d.Rows)
}

func writeFieldTable(b *strings.Builder, rows []layout.FieldRow) {
	b.WriteString("| Bits | Field | Access | Reset | Description |\n")
	b.WriteString("|-----:|-------|--------|------:|-------------|\n")
	for _, row := range rows {
		reset := "-"
		if row.ResetBits != nil {
			reset = fmt.Sprintf("0x%X", *row.ResetBits)
		}
		desc := cell(row.Description)
		if row.ReadAction != "" {
			desc = strings.TrimSpace(desc + " Read action: `" + row.ReadAction + "`.")
		}
		fmt.Fprintf(b, "| %s | `%s` | %s | %s | %s |\n",
			row.Label, row.Name, orDash(row.Access), reset, desc)
	}
	b.WriteString("\n")
}

func writeFieldValues(b *strings.Builder, rows []layout.FieldRow) {
	for _, row := range rows {
		if len(row.Values) == 0 {
			continue
		}
		fmt.Fprintf(b, "**%s values**\n\n", row.Name)
		b.WriteString("| Value | Name | Description |\n")
		b.WriteString("|------:|------|-------------|\n")
		for _, v := range row.Values {
			fmt.Fprintf(b, "| %s | `%s` | %s |\n", v.ValueLabel(), v.Name, cell(v.Description))
		}
		b.WriteString("\n")
	}
}

// generateAll writes the index, every group page and every peripheral page
// below outputDir.
func generateAll(m *DocModel, outputDir string) error {
	if err := generateIndexPage(m, outputDir); err != nil {
		return err
	}
	if err := generateAllGroupPages(m, outputDir); err != nil {
		return err
	}
	return generateAllPeripheralPages(m, outputDir)
}

func generateIndexPage(m *DocModel, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	content, err := GenerateIndexPage(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "index.md"), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

func generateAllGroupPages(m *DocModel, outputDir string) error {
	groupDir := filepath.Join(outputDir, "groups")
	if err := os.MkdirAll(groupDir, 0o755); err != nil {
		return fmt.Errorf("creating groups dir: %w", err)
	}

	for _, g := range m.Groups {
		content, err := GenerateGroupPage(g)
		if err != nil {
			return err
		}
		path := filepath.Join(outputDir, groupPath(g.Name))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing group %s: %w", g.Name, err)
		}
	}
	return nil
}

func generateAllPeripheralPages(m *DocModel, outputDir string) error {
	periphDir := filepath.Join(outputDir, "peripherals")
	if err := os.MkdirAll(periphDir, 0o755); err != nil {
		return fmt.Errorf("creating peripherals dir: %w", err)
	}

	for _, pd := range m.Peripherals {
		path := filepath.Join(outputDir, peripheralPath(pd.Peripheral.Name))
		if err := os.WriteFile(path, []byte(GeneratePeripheralPage(pd)), 0o644); err != nil {
			return fmt.Errorf("writing peripheral %s: %w", pd.Peripheral.Name, err)
		}
	}
	return nil
}
