// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of CLAUSEFEAT.
//
//  CLAUSEFEAT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  CLAUSEFEAT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with CLAUSEFEAT.  If not, see <https://www.gnu.org/licenses/>.

package archive

import (
	"clausefeat/archive/migrations"
	"clausefeat/results"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

// Run describes a single batch annotation run
type Run struct {
	ID          string     `json:"id"`
	Input       string     `json:"input"`
	StartedAt   time.Time  `json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	NumRows     int        `json:"numRows"`
	NumFailures int        `json:"numFailures"`
}

// Archive stores annotated rows of batch runs in an SQLite database
// so the runs can be inspected and compared later.
type Archive struct {
	db *sql.DB
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate(fsys fs.FS) error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	var currentVersion int
	row := a.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := a.db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
		if _, err := a.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("failed to register migration %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied archive migration")
	}
	return nil
}

// BeginRun registers a new run of the provided input
func (a *Archive) BeginRun(ctx context.Context, input string) (Run, error) {
	ans := Run{
		ID:        uuid.New().String(),
		Input:     input,
		StartedAt: time.Now().UTC(),
	}
	_, err := a.db.ExecContext(
		ctx,
		"INSERT INTO runs (id, input, started_at) VALUES (?, ?, ?)",
		ans.ID, ans.Input, ans.StartedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin run: %w", err)
	}
	return ans, nil
}

// SaveRows stores annotated rows of a run. The idx of a row is
// its position within the run input.
func (a *Archive) SaveRows(ctx context.Context, runID string, offset int, rows []results.AnnotatedRow) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to save rows: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO annotated_rows
		(run_id, idx, verb, conjunction, resolved, record, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to save rows: %w", err)
	}
	defer stmt.Close()
	for i, row := range rows {
		data, err := sonic.Marshal(row.Record)
		if err != nil {
			return fmt.Errorf("failed to serialize row %d: %w", offset+i, err)
		}
		var errMsg sql.NullString
		if row.Error != "" {
			errMsg = sql.NullString{String: row.Error, Valid: true}
		}
		if _, err := stmt.ExecContext(
			ctx, runID, offset+i, row.Record.Verb, row.Record.Conjunction,
			row.Record.IsResolved(), string(data), errMsg,
		); err != nil {
			return fmt.Errorf("failed to save row %d: %w", offset+i, err)
		}
	}
	return tx.Commit()
}

// FinishRun marks the run as finished and stores its summary
func (a *Archive) FinishRun(ctx context.Context, runID string, numRows, numFailures int) error {
	res, err := a.db.ExecContext(
		ctx,
		"UPDATE runs SET finished_at = ?, num_rows = ?, num_failures = ? WHERE id = ?",
		time.Now().UTC(), numRows, numFailures, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var ans Run
	var finishedAt sql.NullTime
	if err := scanner.Scan(
		&ans.ID, &ans.Input, &ans.StartedAt, &finishedAt, &ans.NumRows, &ans.NumFailures,
	); err != nil {
		return ans, err
	}
	if finishedAt.Valid {
		ans.FinishedAt = &finishedAt.Time
	}
	return ans, nil
}

func (a *Archive) GetRun(ctx context.Context, runID string) (Run, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, input, started_at, finished_at, num_rows, num_failures
		FROM runs WHERE id = ?
	`, runID)
	ans, err := scanRun(row)
	if err == sql.ErrNoRows {
		return ans, ErrRunNotFound

	} else if err != nil {
		return ans, fmt.Errorf("failed to get run: %w", err)
	}
	return ans, nil
}

// ListRuns returns the most recent runs first. A non-positive
// limit lists all the runs.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, input, started_at, finished_at, num_rows, num_failures
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()
	ans := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		ans = append(ans, run)
	}
	return ans, rows.Err()
}

// RunRows returns annotated rows of a run in the input order
func (a *Archive) RunRows(ctx context.Context, runID string) ([]results.AnnotatedRow, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT record, error FROM annotated_rows WHERE run_id = ? ORDER BY idx
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run rows: %w", err)
	}
	defer rows.Close()
	var ans []results.AnnotatedRow
	for rows.Next() {
		var data string
		var errMsg sql.NullString
		if err := rows.Scan(&data, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to load run rows: %w", err)
		}
		var item results.AnnotatedRow
		if err := sonic.UnmarshalString(data, &item.Record); err != nil {
			return nil, fmt.Errorf("failed to decode archived record: %w", err)
		}
		item.Error = errMsg.String
		ans = append(ans, item)
	}
	return ans, rows.Err()
}

// Open opens (or creates) an archive database. Missing directories
// are created.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	db, err := sql.Open(
		"sqlite",
		path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	ans := &Archive{db: db}
	if err := ans.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, err
	}
	return ans, nil
}
