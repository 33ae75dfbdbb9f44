package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/askcart/askcart/pkg/dataset"
)

// CreateTables applies the fixed dataset DDL. Idempotent.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, ddl := range dataset.DDL {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// LoadFile ingests a spreadsheet export into the named table. The file
// format is chosen by extension (.xlsx or .csv); the first row must be
// a header naming columns of the target table. Returns the number of
// rows inserted.
func (s *Store) LoadFile(ctx context.Context, path, table string) (int, error) {
	if dataset.Columns(table) == nil {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readXLSX(path)
	case ".csv":
		records, err = readCSV(path)
	default:
		return 0, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return 0, err
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("%s: no data rows", path)
	}

	header, rows := records[0], records[1:]
	return s.insertRows(ctx, table, header, rows)
}

// insertRows writes rows into table inside one transaction, mapping
// spreadsheet columns to table columns by header name.
func (s *Store) insertRows(ctx context.Context, table string, header []string, rows [][]string) (int, error) {
	known := make(map[string]bool)
	for _, c := range dataset.Columns(table) {
		known[c] = true
	}

	cols := make([]string, 0, len(header))
	for _, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.ReplaceAll(name, " ", "_")
		if !known[name] {
			return 0, fmt.Errorf("table %s has no column %q", table, h)
		}
		cols = append(cols, name)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin ingest: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, row := range rows {
		// excelize omits trailing empty cells; pad those out.
		if len(row) > len(cols) {
			return 0, fmt.Errorf("row %d: got %d values, want %d", i+2, len(row), len(cols))
		}
		args := make([]any, len(cols))
		for j := range cols {
			if j < len(row) {
				args[j] = row[j]
			} else {
				args[j] = ""
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i+2, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit ingest: %w", err)
	}
	return inserted, nil
}

// readXLSX reads the first sheet of an Excel workbook as string rows.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// readCSV reads a CSV file as string rows.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
