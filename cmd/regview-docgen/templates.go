package main

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"cell":           cell,
	"orDash":         orDash,
	"groupPath":      groupPath,
	"peripheralPath": peripheralPath,
}).ParseFS(templateFS, "templates/*.tmpl"))

// renderTemplate executes a named template with the given data.
func renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
