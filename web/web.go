// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html static/*
var files embed.FS

// Page template names
const (
	PageIndex = "index.html"
	PageAdmin = "admin.html"
)

var funcs = template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"ago":   humanize.Time,
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
	"percent": func(n, total int) string {
		if total <= 0 {
			return "0"
		}
		return strconv.FormatFloat(float64(n)*100/float64(total), 'f', 1, 64)
	},
}

// Pages holds the parsed page templates.
type Pages struct {
	templates map[string]*template.Template
}

// Parse parses the embedded page templates.
func Parse() (*Pages, error) {
	p := &Pages{templates: map[string]*template.Template{}}
	for _, name := range []string{PageIndex, PageAdmin} {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		p.templates[name] = t
	}
	return p, nil
}

// MustParse is Parse for package-level setup. It panics on error.
func MustParse() *Pages {
	p, err := Parse()
	if err != nil {
		panic(err)
	}
	return p
}

// Render executes page into a buffer and writes it with status. Nothing is
// written when the template fails.
func (p *Pages) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := p.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and assets under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
