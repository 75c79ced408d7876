// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestDefault(t *testing.T) {
	c := Default()

	want := []string{"Scientists", "Leaders", "Artists", "Entertainers", "Thinkers"}
	if got := c.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for _, cat := range c.Categories {
		if len(cat.Names) != 10 {
			t.Errorf("%s has %d names, want 10", cat.Name, len(cat.Names))
		}
		if len(cat.Quotes) != 3 {
			t.Errorf("%s has %d quotes, want 3", cat.Name, len(cat.Quotes))
		}
	}
	if c.DefaultColor != "#757575" {
		t.Errorf("DefaultColor = %q", c.DefaultColor)
	}
}

func TestColor(t *testing.T) {
	c := Default()
	tests := []struct {
		category string
		want     string
	}{
		{"Scientists", "#4CAF50"},
		{"Leaders", "#2196F3"},
		{"Artists", "#F44336"},
		{"Entertainers", "#9C27B0"},
		{"Thinkers", "#FF9800"},
		{"Athletes", "#757575"},
		{"", "#757575"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := c.Color(tt.category); got != tt.want {
				t.Errorf("Color(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestHasAndCategory(t *testing.T) {
	c := Default()
	if !c.Has("Artists") {
		t.Error("expected Artists to exist")
	}
	if c.Has("artists") {
		t.Error("category lookup should be case sensitive")
	}

	_, err := c.Category("Athletes")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	cat, err := c.Category("Thinkers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(cat.Names, "Socrates") {
		t.Errorf("Thinkers should contain Socrates: %v", cat.Names)
	}
}

func TestCategoryOf(t *testing.T) {
	c := Default()
	if got, ok := c.CategoryOf("Socrates"); !ok || got != "Thinkers" {
		t.Errorf("CategoryOf(Socrates) = %q, %v", got, ok)
	}
	if _, ok := c.CategoryOf("Nobody"); ok {
		t.Error("CategoryOf(Nobody) should not be found")
	}
}

func TestFallbackQuote(t *testing.T) {
	c := Default()
	rng := newRand(1)

	cat, _ := c.Category("Scientists")
	for range 20 {
		q := c.FallbackQuote("Scientists", rng)
		if !slices.Contains(cat.Quotes, q) {
			t.Fatalf("quote %q not from Scientists", q)
		}
	}
	if q := c.FallbackQuote("Nobody", rng); q != c.DefaultQuote {
		t.Errorf("unknown category quote = %q, want default", q)
	}
}

func TestRandomNames(t *testing.T) {
	c := Default()
	names := c.RandomNames(50, newRand(7))

	if len(names) == 0 || len(names) > 50 {
		t.Fatalf("got %d names", len(names))
	}

	// first pass covers every category in order
	for i, cat := range c.Names() {
		if names[i].Category != cat {
			t.Errorf("names[%d].Category = %q, want %q", i, names[i].Category, cat)
		}
	}

	seen := map[Entry]bool{}
	for _, e := range names {
		if seen[e] {
			t.Errorf("duplicate entry %v", e)
		}
		seen[e] = true

		cat, err := c.Category(e.Category)
		if err != nil {
			t.Fatalf("entry with unknown category: %v", e)
		}
		if !slices.Contains(cat.Names, e.Name) {
			t.Errorf("%q is not a %s name", e.Name, e.Category)
		}
	}
}

func TestRandomNames_SmallCounts(t *testing.T) {
	c := Default()
	if got := c.RandomNames(0, newRand(1)); got != nil {
		t.Errorf("RandomNames(0) = %v, want nil", got)
	}
	if got := c.RandomNames(3, newRand(1)); len(got) != 3 {
		t.Errorf("RandomNames(3) returned %d names", len(got))
	}
}

func TestRandomNames_Deterministic(t *testing.T) {
	c := Default()
	a := c.RandomNames(30, newRand(99))
	b := c.RandomNames(30, newRand(99))
	if !slices.Equal(a, b) {
		t.Error("same seed should produce the same names")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name: "minimal",
			input: `
[[category]]
name = "Poets"
names = ["Rumi"]
`,
		},
		{
			name:    "bad toml",
			input:   `[[category]`,
			wantErr: true,
		},
		{
			name: "duplicate category",
			input: `
[[category]]
name = "Poets"
[[category]]
name = "Poets"
`,
			wantErr: true,
		},
		{
			name: "missing name",
			input: `
[[category]]
color = "#000000"
`,
			wantErr: true,
		},
		{
			name: "unknown key",
			input: `
colour = "#000000"
`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte(`
[[category]]
name = "Poets"
names = ["Rumi", "Basho"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.DefaultColor != "#757575" {
		t.Errorf("DefaultColor = %q", c.DefaultColor)
	}
	if c.Color("Poets") != "#757575" {
		t.Errorf("category without colour should use the default, got %q", c.Color("Poets"))
	}
	if q := c.FallbackQuote("Poets", newRand(1)); q != c.DefaultQuote {
		t.Errorf("category without quotes should use the default quote, got %q", q)
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || c != Default() {
		t.Fatalf("Load(\"\") = %v, %v; want Default()", c, err)
	}

	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := []byte(`
default_color = "#111111"

[[category]]
name = "Inventors"
color = "#222222"
names = ["Hedy Lamarr"]
quotes = ["Hope and curiosity about the future seemed better than guarantees."]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Names(); !slices.Equal(got, []string{"Inventors"}) {
		t.Errorf("Names() = %v", got)
	}
	if c.Color("Other") != "#111111" {
		t.Errorf("Color(Other) = %q", c.Color("Other"))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
