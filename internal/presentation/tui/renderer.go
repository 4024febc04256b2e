package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/dropzone/pkg/catalog"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// When stdout is not a terminal the markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	if !IsTerminal(os.Stdout) {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// CatalogMarkdown lists the catalog as one table per category.
// An empty category lists every category.
func CatalogMarkdown(cat *catalog.Catalog, category string) string {
	var sb strings.Builder
	sb.WriteString("# Components\n")
	for _, c := range cat.Categories() {
		if category != "" && c != category {
			continue
		}
		defs := cat.ByCategory(c)
		fmt.Fprintf(&sb, "\n## %s (%d)\n\n", c, len(defs))
		sb.WriteString("| ID | Name | Icon |\n|---|---|---|\n")
		for _, d := range defs {
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", d.ID, d.Name, d.Icon)
		}
	}
	return sb.String()
}

// DefinitionMarkdown describes one catalog entry.
func DefinitionMarkdown(d catalog.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Name)
	fmt.Fprintf(&sb, "- **ID:** `%s`\n- **Category:** %s\n- **Icon:** %s\n", d.ID, d.Category, d.Icon)
	sb.WriteString("\n## Default content\n\n```html\n")
	sb.WriteString(d.DefaultContent)
	sb.WriteString("\n```\n")
	if len(d.DefaultStyles) > 0 {
		sb.WriteString("\n## Default styles\n\n| Property | Value |\n|---|---|\n")
		for _, k := range sortedKeys(d.DefaultStyles) {
			fmt.Fprintf(&sb, "| `%s` | `%s` |\n", k, d.DefaultStyles[k])
		}
	}
	return sb.String()
}
