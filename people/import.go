// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package people

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnknownTable is returned when importing into a table that is not one
// of the people tables.
var ErrUnknownTable = errors.New("unknown table")

// ImportOrder is the order ImportDir loads tables in.
var ImportOrder = []string{"people", "people_quotes", "people_creations", "people_connections"}

// tableColumns lists the importable columns of each table.
var tableColumns = map[string][]string{
	"people":             {"id", "name", "category", "bio", "year_of_birth", "date_of_birth", "wiki_link", "more"},
	"people_quotes":      {"person_id", "title", "context", "link", "more"},
	"people_creations":   {"person_id", "title", "type", "link", "more"},
	"people_connections": {"person1_id", "person1_name", "person2_id", "person2_name", "connection", "more"},
}

var integerColumns = map[string]bool{
	"id":            true,
	"year_of_birth": true,
	"person_id":     true,
	"person1_id":    true,
	"person2_id":    true,
}

// ImportResult holds the outcome of importing one table.
type ImportResult struct {
	Table    string
	Source   string
	Inserted int
	Skipped  int
	Errors   []string
	Warnings []string
}

// ImportReader imports CSV rows into table. The first record is the header;
// header names are matched case-insensitively against the table's columns.
// Rows that fail validation are reported in Errors and skipped. All other
// rows are inserted in one transaction.
func ImportReader(ctx context.Context, db *sql.DB, table string, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Table: table}, fmt.Errorf("cannot read CSV: %w", err)
	}
	return importRows(ctx, db, table, records, "Line")
}

// ImportFile imports a .csv or .xlsx file into the table named after the
// file (people.csv goes into people).
func ImportFile(ctx context.Context, db *sql.DB, path string) (ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	table := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var (
		res ImportResult
		err error
	)
	switch ext {
	case ".csv":
		res, err = importCSVFile(ctx, db, table, path)
	case ".xlsx":
		res, err = importExcelFile(ctx, db, table, path)
	default:
		return ImportResult{Table: table, Source: path}, fmt.Errorf("unsupported file type %q", ext)
	}
	res.Source = path
	return res, err
}

// ImportDir imports every people table found in dir, as CSV or XLSX, in
// ImportOrder. Missing files are skipped.
func ImportDir(ctx context.Context, db *sql.DB, dir string) ([]ImportResult, error) {
	var results []ImportResult
	for _, table := range ImportOrder {
		path, ok := findTableFile(dir, table)
		if !ok {
			continue
		}
		res, err := ImportFile(ctx, db, path)
		if err != nil {
			return results, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		results = append(results, res)
	}
	return results, nil
}

func findTableFile(dir, table string) (string, bool) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(dir, table+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func importCSVFile(ctx context.Context, db *sql.DB, table, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Table: table}, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()
	return ImportReader(ctx, db, table, f)
}

func importExcelFile(ctx context.Context, db *sql.DB, table, path string) (ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Table: table}, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Table: table}, errors.New("excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Table: table}, fmt.Errorf("cannot read Excel data: %w", err)
	}
	return importRows(ctx, db, table, rows, "Row")
}

// importRows validates records against the table's columns and inserts the
// good rows. rowLabel prefixes row numbers in messages ("Line 3").
func importRows(ctx context.Context, db *sql.DB, table string, records [][]string, rowLabel string) (ImportResult, error) {
	res := ImportResult{Table: table}

	allowed, ok := tableColumns[table]
	if !ok {
		return res, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if len(records) == 0 {
		return res, errors.New("file is empty")
	}

	cols, idx, warnings := mapHeader(records[0], allowed)
	res.Warnings = append(res.Warnings, warnings...)
	if len(cols) == 0 {
		return res, fmt.Errorf("no known columns in header (expected some of %s)", strings.Join(allowed, ", "))
	}
	if table == "people" && !slices.Contains(cols, "name") {
		return res, errors.New("people import needs a name column")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, cols))
	if err != nil {
		return res, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range records[1:] {
		label := fmt.Sprintf("%s %d", rowLabel, i+2)
		if isEmptyRow(row) {
			continue
		}
		args, msg := parseRow(table, row, cols, idx)
		if msg != "" {
			res.Errors = append(res.Errors, label+": "+msg)
			res.Skipped++
			continue
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return res, fmt.Errorf("%s: insert failed: %w", label, err)
		}
		res.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit import: %w", err)
	}
	return res, nil
}

// mapHeader returns the recognised columns, their record indexes and
// warnings for anything ignored.
func mapHeader(header, allowed []string) ([]string, []int, []string) {
	known := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		known[c] = true
	}

	var (
		cols     []string
		idx      []int
		warnings []string
		seen     = map[string]bool{}
	)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		switch {
		case name == "":
			continue
		case !known[name]:
			warnings = append(warnings, fmt.Sprintf("Unknown column %q ignored", cell))
		case seen[name]:
			warnings = append(warnings, fmt.Sprintf("Duplicate column %q ignored", cell))
		default:
			seen[name] = true
			cols = append(cols, name)
			idx = append(idx, i)
		}
	}
	return cols, idx, warnings
}

func insertSQL(table string, cols []string) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}

// parseRow converts a record to insert arguments. Empty cells become NULL.
// A non-empty message means the row is invalid.
func parseRow(table string, row []string, cols []string, idx []int) ([]any, string) {
	args := make([]any, len(cols))
	for i, col := range cols {
		cell := getCell(row, idx[i])
		switch {
		case table == "people" && col == "name" && cell == "":
			return nil, "Missing name"
		case table == "people" && col == "category":
			args[i] = cell
		case cell == "":
			args[i] = nil
		case integerColumns[col]:
			n, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, fmt.Sprintf("Invalid %s '%s'", col, cell)
			}
			args[i] = n
		default:
			args[i] = cell
		}
	}
	return args, ""
}

func getCell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
