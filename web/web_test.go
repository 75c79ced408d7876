// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/namecloud/models"
	"github.com/danielhkuo/namecloud/people"
)

func TestParse(t *testing.T) {
	p, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(p.templates) != 2 {
		t.Errorf("Expected 2 templates, got %d", len(p.templates))
	}
}

func TestRenderIndex_Form(t *testing.T) {
	p := MustParse()
	w := httptest.NewRecorder()

	page := models.HomePage{
		People: []people.Person{
			{Name: "Marie Curie", Category: "Scientists"},
			{Name: "Frida Kahlo", Category: "Artists"},
		},
		Categories: []string{"Scientists", "Artists"},
		Category:   "Artists",
		Username:   "ada",
	}
	if err := p.Render(w, http.StatusOK, PageIndex, page); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	body := w.Body.String()
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Unexpected content type %q", w.Header().Get("Content-Type"))
	}
	for _, want := range []string{
		`value="Marie Curie"`,
		`value="Frida Kahlo"`,
		`/cloud.svg?category=Artists`,
		`Signed in as <strong>ada</strong>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
	if strings.Contains(body, `class="results"`) {
		t.Error("Form page should not show results")
	}
}

func TestRenderIndex_Results(t *testing.T) {
	p := MustParse()
	w := httptest.NewRecorder()

	page := models.HomePage{
		Results:      true,
		OptionNames:  []string{"Socrates", "Confucius"},
		OptionCounts: []int{1500, 500},
		TotalVotes:   2000,
	}
	if err := p.Render(w, http.StatusOK, PageIndex, page); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	body := w.Body.String()
	for _, want := range []string{"2,000 votes so far", "1,500", "width: 75.0%", "width: 25.0%"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}

func TestRenderAdmin(t *testing.T) {
	p := MustParse()
	w := httptest.NewRecorder()

	page := models.AdminPage{
		OptionHistory: []models.LogEntry{
			{Choice: "Nikola Tesla", Time: time.Now().Add(-2 * time.Hour)},
		},
		Failed: models.InvalidCredentials,
	}
	if err := p.Render(w, http.StatusUnauthorized, PageAdmin, page); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Nikola Tesla", "2 hours ago", "You entered invalid credentials!"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}

func TestRenderAdmin_Empty(t *testing.T) {
	p := MustParse()
	w := httptest.NewRecorder()

	if err := p.Render(w, http.StatusOK, PageAdmin, models.AdminPage{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(w.Body.String(), "No votes logged yet.") {
		t.Error("Expected empty log message")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	p := MustParse()
	w := httptest.NewRecorder()

	if err := p.Render(w, http.StatusOK, "missing.html", nil); err == nil {
		t.Error("Expected error for unknown page")
	}
	if w.Body.Len() != 0 {
		t.Error("Expected nothing written")
	}
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest("GET", "/static/style.css", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "#word-cloud-container") {
		t.Error("Expected the stylesheet")
	}
}
