// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var defaultTOML []byte

// ErrUnknownCategory is returned when a category is not in the catalog.
var ErrUnknownCategory = errors.New("unknown category")

const (
	fallbackColor = "#757575"
	fallbackQuote = "Life is what happens while you're busy making other plans."
)

// Category groups seed names with a label colour and fallback quotes.
type Category struct {
	Name   string   `toml:"name"`
	Color  string   `toml:"color"`
	Names  []string `toml:"names"`
	Quotes []string `toml:"quotes"`
}

// Catalog is the set of categories names can belong to. It is read-only
// after Parse and safe for concurrent use.
type Catalog struct {
	DefaultColor string     `toml:"default_color"`
	DefaultQuote string     `toml:"default_quote"`
	Categories   []Category `toml:"category"`

	index map[string]int
}

// Entry is a name tagged with its category.
type Entry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Random picks indexes. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

// GlobalRandom draws from the goroutine-safe top-level math/rand/v2 source.
var GlobalRandom Random = globalRand{}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// Load reads a catalog from a TOML file. An empty path returns Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown catalog keys: %s", strings.Join(keys, ", "))
	}

	if c.DefaultColor == "" {
		c.DefaultColor = fallbackColor
	}
	if c.DefaultQuote == "" {
		c.DefaultQuote = fallbackQuote
	}

	c.index = make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, fmt.Errorf("category %d has no name", i+1)
		}
		if _, dup := c.index[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		if cat.Color == "" {
			c.Categories[i].Color = c.DefaultColor
		}
		c.index[cat.Name] = i
	}
	return &c, nil
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Has reports whether category is defined.
func (c *Catalog) Has(category string) bool {
	_, ok := c.index[category]
	return ok
}

// Category looks up a category by name.
func (c *Catalog) Category(name string) (Category, error) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c.Categories[i], nil
}

// Color returns the label colour for category, or the default colour.
func (c *Catalog) Color(category string) string {
	if i, ok := c.index[category]; ok {
		return c.Categories[i].Color
	}
	return c.DefaultColor
}

// FallbackQuote picks one of the category's quotes, or the default quote
// when the category is unknown or has none.
func (c *Catalog) FallbackQuote(category string, rng Random) string {
	i, ok := c.index[category]
	if !ok || len(c.Categories[i].Quotes) == 0 {
		return c.DefaultQuote
	}
	quotes := c.Categories[i].Quotes
	return quotes[rng.IntN(len(quotes))]
}

// RandomNames draws up to count names: one from every category first, then
// random picks across categories. Picks that repeat an earlier entry are
// skipped rather than redrawn, so the result can be shorter than count.
func (c *Catalog) RandomNames(count int, rng Random) []Entry {
	var pool []Category
	for _, cat := range c.Categories {
		if len(cat.Names) > 0 {
			pool = append(pool, cat)
		}
	}
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	out := make([]Entry, 0, count)
	seen := make(map[Entry]bool, count)
	add := func(cat Category) {
		e := Entry{Name: cat.Names[rng.IntN(len(cat.Names))], Category: cat.Name}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}

	for _, cat := range pool {
		if len(out) == count {
			return out
		}
		add(cat)
	}
	for range count - len(out) {
		add(pool[rng.IntN(len(pool))])
	}
	return out
}

// CategoryOf returns the first category whose seed names include name.
func (c *Catalog) CategoryOf(name string) (string, bool) {
	for _, cat := range c.Categories {
		for _, n := range cat.Names {
			if n == name {
				return cat.Name, true
			}
		}
	}
	return "", false
}
