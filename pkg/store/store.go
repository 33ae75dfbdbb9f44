// Package store owns the SQLite database holding the fixed three-table
// dataset: executing resolved queries, guarding against mutating
// statements, and ingesting spreadsheet exports.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database the agent answers questions from.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
//
// SQLite only supports one writer at a time, so the pool is pinned to a
// single connection; reads and the occasional ingest never contend.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Result is the outcome of executing one query. Execution failures are
// carried in Err rather than returned separately so the presentation
// layer always has one value to format and visualize.
type Result struct {
	Columns []string
	Rows    [][]any
	Err     string
}

// OK reports whether the query executed successfully.
func (r *Result) OK() bool {
	return r.Err == ""
}

// Empty reports whether a successful query returned no rows.
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Execute runs a resolved query and returns its result. The returned
// Result is never nil; failures are captured in Result.Err.
func (s *Store) Execute(ctx context.Context, query string) *Result {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return &Result{Err: err.Error()}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return &Result{Err: err.Error()}
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return &Result{Err: err.Error()}
		}
		for i, v := range values {
			// The driver hands TEXT columns back as []byte; presentation
			// wants strings.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return &Result{Err: err.Error()}
	}

	return result
}

// TableInfo returns the column names of every table in the database,
// keyed by table name.
func (s *Store) TableInfo(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	info := make(map[string][]string, len(tables))
	for _, table := range tables {
		cols, err := s.tableColumns(ctx, table)
		if err != nil {
			return nil, err
		}
		info[table] = cols
	}
	return info, nil
}

func (s *Store) tableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q);`, table))
	if err != nil {
		return nil, fmt.Errorf("table info for %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan column for %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
