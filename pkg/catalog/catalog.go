// Package catalog holds the component templates listed by the palette.
//
// The default catalog is embedded (components.yaml) and can be extended or
// overridden per deployment with a YAML or JSON file of the same shape.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/dropzone/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed components.yaml
var defaultData []byte

// Definition is one palette entry.
type Definition struct {
	ID             string            `yaml:"id" json:"id"`
	Name           string            `yaml:"name" json:"name"`
	Category       string            `yaml:"category" json:"category"`
	Icon           string            `yaml:"icon" json:"icon"`
	DefaultContent string            `yaml:"defaultContent" json:"defaultContent"`
	DefaultStyles  map[string]string `yaml:"defaultStyles" json:"defaultStyles"`
}

// Node converts the definition into a palette template. The template's kind
// is the definition ID; the styles map is copied.
func (d Definition) Node() *domain.ComponentNode {
	styles := make(map[string]string, len(d.DefaultStyles))
	for k, v := range d.DefaultStyles {
		styles[k] = v
	}
	return &domain.ComponentNode{
		ID:       d.ID,
		Kind:     d.ID,
		Label:    d.Name,
		Markup:   d.DefaultContent,
		StyleMap: styles,
	}
}

// File is the on-disk shape of a catalog.
type File struct {
	Categories []string     `yaml:"categories" json:"categories"`
	Components []Definition `yaml:"components" json:"components"`
}

// Catalog is an ordered, read-only set of definitions.
type Catalog struct {
	categories []string
	defs       []Definition
	index      map[string]int
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultData, ".yaml")
})

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded components.yaml is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates catalog data. ext selects the decoder
// (".json", otherwise YAML).
func Parse(data []byte, ext string) (*Catalog, error) {
	f, err := decodeFile(data, ext)
	if err != nil {
		return nil, err
	}
	return New(f.Categories, f.Components)
}

// Load reads a self-contained catalog file (YAML or JSON, by extension).
func Load(path string) (*Catalog, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(f.Categories, f.Components)
}

// ReadFile reads a catalog file without validating it, for use with Extend.
// Override files may reference categories defined by the catalog they extend.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return decodeFile(data, filepath.Ext(path))
}

func decodeFile(data []byte, ext string) (File, error) {
	var f File
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse catalog json: %w", err)
		}
		return f, nil
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return f, nil
}

// New builds a catalog, checking that IDs are unique and that every
// definition belongs to a listed category.
func New(categories []string, defs []Definition) (*Catalog, error) {
	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if known[cat] {
			return nil, fmt.Errorf("duplicate category %q", cat)
		}
		known[cat] = true
	}

	c := &Catalog{
		categories: append([]string(nil), categories...),
		defs:       make([]Definition, 0, len(defs)),
		index:      make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("component[%d]: id is required", i)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("component %q: duplicate id", d.ID)
		}
		if !known[d.Category] {
			return nil, fmt.Errorf("component %q: unknown category %q", d.ID, d.Category)
		}
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// Merge returns a catalog with other's definitions applied on top of c.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	if other == nil {
		return c, nil
	}
	return c.Extend(File{Categories: other.categories, Components: other.defs})
}

// Extend returns a catalog with f applied on top of c: matching IDs are
// replaced in place, new IDs are appended, and new categories are appended to
// the category list. c is not modified.
func (c *Catalog) Extend(f File) (*Catalog, error) {
	categories := append([]string(nil), c.categories...)
	seen := make(map[string]bool, len(categories))
	for _, cat := range categories {
		seen[cat] = true
	}
	for _, cat := range f.Categories {
		if !seen[cat] {
			categories = append(categories, cat)
			seen[cat] = true
		}
	}

	defs := append([]Definition(nil), c.defs...)
	added := make(map[string]int)
	for _, d := range f.Components {
		if i, ok := c.index[d.ID]; ok {
			defs[i] = d
			continue
		}
		if i, ok := added[d.ID]; ok {
			defs[i] = d
			continue
		}
		added[d.ID] = len(defs)
		defs = append(defs, d)
	}
	return New(categories, defs)
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Categories returns category labels in palette order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// All returns every definition in palette order.
func (c *Catalog) All() []Definition {
	return append([]Definition(nil), c.defs...)
}

// ByCategory returns the definitions of one category in palette order.
func (c *Catalog) ByCategory(category string) []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Get looks up a definition by ID.
func (c *Catalog) Get(id string) (Definition, error) {
	i, ok := c.index[id]
	if !ok {
		if near := c.Suggest(id, 1); len(near) > 0 {
			return Definition{}, fmt.Errorf("%w: %q (did you mean %q?)", domain.ErrUnknownComponent, id, near[0])
		}
		return Definition{}, fmt.Errorf("%w: %q", domain.ErrUnknownComponent, id)
	}
	return c.defs[i], nil
}

// maxSuggestDistance bounds the edit distance of a suggestion.
const maxSuggestDistance = 3

// Suggest returns up to limit definition IDs close to id, nearest first.
// Ties keep palette order.
func (c *Catalog) Suggest(id string, limit int) []string {
	type match struct {
		id   string
		dist int
	}
	var matches []match
	needle := strings.ToLower(id)
	for _, d := range c.defs {
		dist := levenshtein.ComputeDistance(needle, d.ID)
		if dist <= maxSuggestDistance {
			matches = append(matches, match{d.ID, dist})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	var out []string
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.id)
	}
	return out
}

// Template returns a fresh palette template for the definition with the given ID.
func (c *Catalog) Template(id string) (*domain.ComponentNode, error) {
	d, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return d.Node(), nil
}
