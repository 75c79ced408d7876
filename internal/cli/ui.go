// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/people"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printImportSummary prints one block per imported table with its row
// errors and header warnings.
func printImportSummary(w io.Writer, results []people.ImportResult) {
	for _, res := range results {
		icon := styleIconSuccess.Render(iconSuccess)
		if len(res.Errors) > 0 {
			icon = styleIconWarning.Render(iconWarning)
		}
		fmt.Fprintf(w, "%s %s %s inserted",
			icon, styleTitle.Render(res.Table), styleNumber.Render(humanize.Comma(int64(res.Inserted))))
		if res.Skipped > 0 {
			fmt.Fprintf(w, ", %s skipped", styleNumber.Render(humanize.Comma(int64(res.Skipped))))
		}
		fmt.Fprintln(w, "  "+styleDim.Render(res.Source))

		for _, warn := range res.Warnings {
			fmt.Fprintln(w, "  "+styleWarning.Render(warn))
		}
		for _, msg := range res.Errors {
			fmt.Fprintln(w, "  "+styleIconError.Render(iconError)+" "+styleDim.Render(msg))
		}
	}
}

// printPeople prints one line per person, coloured by category.
func printPeople(w io.Writer, list []people.Person, cat *catalog.Catalog) {
	if len(list) == 0 {
		fmt.Fprintln(w, styleDim.Render("No people found."))
		return
	}

	nameWidth := 0
	total := 0
	for _, p := range list {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name))
		total += p.Votes
	}
	nameStyle := styleValue.Width(nameWidth + 2)

	for _, p := range list {
		categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color(p.Category))).Width(14)
		fmt.Fprintln(w, nameStyle.Render(p.Name)+
			categoryStyle.Render(p.Category)+
			styleNumber.Render(humanize.Comma(int64(p.Votes)))+" "+styleDim.Render(plural(p.Votes, "vote", "votes")))
	}

	fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("%s people, %s %s",
		humanize.Comma(int64(len(list))), humanize.Comma(int64(total)), plural(total, "vote", "votes"))))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
