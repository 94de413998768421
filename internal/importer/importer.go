// Package importer reads drill sheet definitions from Excel or CSV files.
// One row describes one field: its cell tags, whether it is an unknown, its
// given text, and its placeholder.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	drill "github.com/o-ludvik/Olivers-pages"
)

// Config defines where field attributes live in the file.
type Config struct {
	Path              string // Excel or CSV file to read
	SheetName         string // worksheet name, Excel only
	IDColumn          string // column with the field id (may be blank in rows)
	TagsColumn        string // column with the whitespace-separated cell tags
	UnknownColumn     string // column with the unknown flag
	TextColumn        string // column with the given text
	PlaceholderColumn string // column with the placeholder
	StartRow          int    // first data row, 1-based
}

// DefaultConfig returns the column layout sheets are exported with: a header
// row followed by id, tags, unknown, text, placeholder in columns A-E.
func DefaultConfig() Config {
	return Config{
		SheetName:         "Sheet1",
		IDColumn:          "A",
		TagsColumn:        "B",
		UnknownColumn:     "C",
		TextColumn:        "D",
		PlaceholderColumn: "E",
		StartRow:          2,
	}
}

// Result holds the outcome of an import.
type Result struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Read loads field definitions from the configured file, dispatching on the
// extension. Rows with no tags are skipped; a malformed row is recorded in
// the result and does not stop the import.
func Read(cfg Config) ([]drill.Field, *Result, error) {
	if strings.EqualFold(filepath.Ext(cfg.Path), ".csv") {
		return readCSV(cfg)
	}
	return readExcel(cfg)
}

func readExcel(cfg Config) ([]drill.Field, *Result, error) {
	f, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}

	cols, err := columnIndexes(cfg)
	if err != nil {
		return nil, nil, err
	}
	return collect(rows, cfg, cols)
}

func readCSV(cfg Config) ([]drill.Field, *Result, error) {
	file, err := os.Open(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}

	cols, err := columnIndexes(cfg)
	if err != nil {
		return nil, nil, err
	}
	return collect(rows, cfg, cols)
}

// columns holds zero-based column indexes resolved from the config letters.
type columns struct {
	id, tags, unknown, text, placeholder int
}

func columnIndexes(cfg Config) (columns, error) {
	var c columns
	for _, col := range []struct {
		name   string
		letter string
		idx    *int
	}{
		{"id", cfg.IDColumn, &c.id},
		{"tags", cfg.TagsColumn, &c.tags},
		{"unknown", cfg.UnknownColumn, &c.unknown},
		{"text", cfg.TextColumn, &c.text},
		{"placeholder", cfg.PlaceholderColumn, &c.placeholder},
	} {
		n, err := excelize.ColumnNameToNumber(col.letter)
		if err != nil {
			return c, fmt.Errorf("%s column %q: %w", col.name, col.letter, err)
		}
		*col.idx = n - 1
	}
	return c, nil
}

func collect(rows [][]string, cfg Config, cols columns) ([]drill.Field, *Result, error) {
	result := &Result{}
	var fields []drill.Field
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		tags := strings.TrimSpace(at(row, cols.tags))
		if tags == "" {
			result.Skipped++
			continue
		}
		unknown, err := parseFlag(at(row, cols.unknown))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		fields = append(fields, drill.Field{
			ID:           strings.TrimSpace(at(row, cols.id)),
			EquationTags: tags,
			Unknown:      unknown,
			Text:         strings.TrimSpace(at(row, cols.text)),
			Placeholder:  strings.TrimSpace(at(row, cols.placeholder)),
		})
		result.Imported++
	}
	return fields, result, nil
}

// at returns the cell in column idx, or "" for short rows. Both excelize and
// the csv reader trim trailing empty cells.
func at(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y", "x":
		return true, nil
	default:
		return false, fmt.Errorf("unrecognized unknown flag %q", s)
	}
}
