package main

import (
	"strings"
	"unicode"
)

// slug converts "GPIO_A 1" to "gpio-a-1".
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "unnamed"
	}
	return s
}

// groupPath is the docs-relative path of a group page.
func groupPath(name string) string {
	return "groups/" + slug(name) + ".md"
}

// peripheralPath is the docs-relative path of a peripheral page.
func peripheralPath(name string) string {
	return "peripherals/" + slug(name) + ".md"
}

// registerAnchor is the heading id of a register section.
func registerAnchor(name string) string {
	return "reg-" + slug(name)
}

// cell makes text safe for a single Markdown table cell.
func cell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// orDash returns "-" for empty strings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
