package amenity

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const General = "general"

//go:embed categories.yaml
var categoriesYAML []byte

type entry struct {
	name     string
	category string
}

// Table maps amenity names to display categories.
type Table struct {
	entries    []entry
	categories []string
}

type categoryFile []struct {
	Category string   `yaml:"category"`
	Names    []string `yaml:"names"`
}

// Parse reads a category table in the categories.yaml layout.
func Parse(data []byte) (*Table, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse amenity categories: %w", err)
	}

	t := &Table{}
	for _, c := range file {
		if c.Category == "" {
			return nil, fmt.Errorf("amenity category with empty name")
		}
		t.categories = append(t.categories, c.Category)
		for _, n := range c.Names {
			t.entries = append(t.entries, entry{name: strings.ToLower(strings.TrimSpace(n)), category: c.Category})
		}
	}
	return t, nil
}

var defaultTable = mustParse(categoriesYAML)

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Default is the built-in table.
func Default() *Table {
	return defaultTable
}

// Category returns the category of one amenity. Exact names win; otherwise
// the first entry that contains the amenity or is contained in it. Unknown
// and empty names are "general".
func (t *Table) Category(amenity string) string {
	name := strings.ToLower(strings.TrimSpace(amenity))
	if name == "" {
		return General
	}
	for _, e := range t.entries {
		if e.name == name {
			return e.category
		}
	}
	for _, e := range t.entries {
		if strings.Contains(name, e.name) || strings.Contains(e.name, name) {
			return e.category
		}
	}
	return General
}

// Group is one category with its amenities in input order.
type Group struct {
	Category  string
	Amenities []string
}

// Categorize groups amenities by category. Groups follow the table's
// category order, with "general" last.
func (t *Table) Categorize(amenities []string) []Group {
	byCategory := make(map[string][]string)
	for _, a := range amenities {
		c := t.Category(a)
		byCategory[c] = append(byCategory[c], a)
	}

	var groups []Group
	for _, c := range t.categories {
		if c == General {
			continue
		}
		if names, ok := byCategory[c]; ok {
			groups = append(groups, Group{Category: c, Amenities: names})
		}
	}
	if names, ok := byCategory[General]; ok {
		groups = append(groups, Group{Category: General, Amenities: names})
	}
	return groups
}

func Category(amenity string) string {
	return defaultTable.Category(amenity)
}

func Categorize(amenities []string) []Group {
	return defaultTable.Categorize(amenities)
}

// Title capitalises a category name for display.
func Title(category string) string {
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
