package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
)

// utf8BOM lets spreadsheet applications detect the encoding of the exported file
const utf8BOM = "\ufeff"

// Summary column headers
const (
	ColumnName   = "Name"
	ColumnDuties = "Duties"
	ColumnRest   = "Rest"
)

// DefaultFileName returns the export file name for a roster month, e.g. "shift_2026_2.csv"
func DefaultFileName(year, month int) string {
	return fmt.Sprintf("shift_%d_%d.csv", year, month)
}

// Table renders the roster as rows of strings: a header of Name plus one label per day,
// then one row per staff member in roster order. With a summary, Duties and Rest columns are appended.
func Table(state *allocator.RosterState, summary *allocator.Summary) [][]string {
	header := make([]string, 0, len(state.Days)+3)
	header = append(header, ColumnName)
	for _, day := range state.Days {
		header = append(header, day.Label())
	}
	if summary != nil {
		header = append(header, ColumnDuties, ColumnRest)
	}

	table := [][]string{header}
	labels := state.Labels()
	for _, staff := range state.Staff {
		row := make([]string, 0, len(header))
		row = append(row, staff.Name())
		row = append(row, labels[staff.Row]...)
		if summary != nil {
			row = append(row,
				strconv.Itoa(summary.DutyCounts[staff.Name()]),
				strconv.Itoa(summary.RestCounts[staff.Name()]),
			)
		}
		table = append(table, row)
	}

	return table
}

// WriteCSV writes the roster table as UTF-8 CSV with a leading byte order mark.
// summary may be nil to export the grid only.
func WriteCSV(w io.Writer, state *allocator.RosterState, summary *allocator.Summary) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(Table(state, summary)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}

// WriteCSVFile writes the roster to path, creating parent directories as needed
func WriteCSVFile(path string, state *allocator.RosterState, summary *allocator.Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}

	if err := WriteCSV(file, state, summary); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}

	return nil
}
