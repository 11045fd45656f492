package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type mkdocsConfig struct {
	SiteName           string      `yaml:"site_name"`
	SiteDescription    string      `yaml:"site_description,omitempty"`
	DocsDir            string      `yaml:"docs_dir"`
	Theme              mkdocsTheme `yaml:"theme"`
	MarkdownExtensions []any       `yaml:"markdown_extensions"`
	Nav                []navEntry  `yaml:"nav"`
}

type mkdocsTheme struct {
	Name     string   `yaml:"name"`
	Features []string `yaml:"features,omitempty"`
}

// navEntry is one "Title: target" item; target is a page path or a nested
// list of entries.
type navEntry map[string]any

// buildMkDocsConfig assembles the site configuration. The nav mirrors the
// index: categories, then uncategorized groups, then every peripheral.
func buildMkDocsConfig(m *DocModel, docsDir string) mkdocsConfig {
	nav := []navEntry{{"Home": "index.md"}}

	for _, c := range m.Dashboard.Categories {
		var groups []navEntry
		for _, card := range c.Cards {
			groups = append(groups, navEntry{card.Group: groupPath(card.Group)})
		}
		nav = append(nav, navEntry{c.Name: groups})
	}
	if len(m.Dashboard.Uncategorized) > 0 {
		var groups []navEntry
		for _, card := range m.Dashboard.Uncategorized {
			groups = append(groups, navEntry{card.Group: groupPath(card.Group)})
		}
		nav = append(nav, navEntry{"Uncategorized": groups})
	}

	var peripherals []navEntry
	for _, pd := range m.Peripherals {
		peripherals = append(peripherals, navEntry{pd.Peripheral.Name: peripheralPath(pd.Peripheral.Name)})
	}
	if len(peripherals) > 0 {
		nav = append(nav, navEntry{"Peripherals": peripherals})
	}

	return mkdocsConfig{
		SiteName:        m.Title,
		SiteDescription: fmt.Sprintf("%d peripherals in %d groups", m.Dashboard.PeripheralCount, m.Dashboard.GroupCount),
		DocsDir:         docsDir,
		Theme: mkdocsTheme{
			Name: "material",
			Features: []string{
				"navigation.sections",
				"navigation.indexes",
				"navigation.top",
				"search.highlight",
				"content.code.copy",
			},
		},
		MarkdownExtensions: []any{
			"tables",
			"admonition",
			"attr_list",
			map[string]any{"toc": map[string]any{"permalink": true}},
		},
		Nav: nav,
	}
}

// GenerateMkDocsYAML produces the mkdocs.yml content for the site.
func GenerateMkDocsYAML(m *DocModel, docsDir string) (string, error) {
	out, err := yaml.Marshal(buildMkDocsConfig(m, docsDir))
	if err != nil {
		return "", fmt.Errorf("encoding mkdocs.yml: %w", err)
	}
	return string(out), nil
}

// writeMkDocsConfig writes mkdocs.yml to projectRoot, pointing at docsDir
// (relative to projectRoot).
func writeMkDocsConfig(m *DocModel, projectRoot, docsDir string) error {
	content, err := GenerateMkDocsYAML(m, docsDir)
	if err != nil {
		return err
	}
	path := filepath.Join(projectRoot, "mkdocs.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing mkdocs.yml: %w", err)
	}
	return nil
}
