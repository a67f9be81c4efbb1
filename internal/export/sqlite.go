package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jfmyers9/soundstats/internal/cleaner"
	"github.com/jfmyers9/soundstats/pkg/frame"
	_ "modernc.org/sqlite"
)

// SQLite dumps a cleaned table into the features table of a SQLite file
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database file at path and ensures the
// features table exists. Use ":memory:" for a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS features (
			track_id TEXT NOT NULL,
			popularity REAL NOT NULL,
			danceability REAL NOT NULL,
			energy REAL NOT NULL,
			loudness REAL NOT NULL,
			mode REAL NOT NULL,
			speechiness REAL NOT NULL,
			acousticness REAL NOT NULL,
			instrumentalness REAL NOT NULL,
			liveness REAL NOT NULL,
			valence REAL NOT NULL,
			tempo REAL NOT NULL,
			duration_mins REAL NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Write replaces the contents of the features table with the rows of a
// cleaned table, in one transaction. On error the previous contents are
// left as they were.
func (s *SQLite) Write(ctx context.Context, table *frame.Frame) error {
	columns := cleaner.CleanedColumns()
	selected, err := table.Select(columns...)
	if err != nil {
		return fmt.Errorf("table is not cleaned: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM features"); err != nil {
		return fmt.Errorf("failed to truncate features: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO features (track_id, %s) VALUES (%s)",
		strings.Join(columns[1:], ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < selected.Len(); i++ {
		row := selected.Row(i)
		args := make([]any, 0, len(columns))

		id, _ := row.Text(cleaner.IDColumn)
		args = append(args, id)
		for _, c := range columns[1:] {
			v, ok := row.Float(c)
			if !ok {
				return fmt.Errorf("row %d: %s is not numeric", i, c)
			}
			args = append(args, v)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert features for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
