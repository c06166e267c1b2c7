/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "github.com/harrisonyg/frameflow/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// AutosaveDirName stores per-project ephemeral data under the project root.
	AutosaveDirName  = ".ffw"
	AutosaveFileName = "autosave.sqlite"

	// autosaveSchemaVersion tracks the local SQLite schema.
	autosaveSchemaVersion = 1
)

// language=SQL
// dialect=SQLite
const insertAutosaveSQL = `INSERT INTO autosaves(ts, doc_blob) VALUES (?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestAutosaveSQL = `SELECT ts, doc_blob FROM autosaves ORDER BY ts DESC, id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const pruneAutosavesSQL = `DELETE FROM autosaves WHERE id NOT IN (
	SELECT id FROM autosaves ORDER BY ts DESC, id DESC LIMIT ?
)`

// AutosavePath returns the full path to the project's autosave database file.
func AutosavePath(projectRoot string) string {
	return filepath.Join(projectRoot, AutosaveDirName, AutosaveFileName)
}

// InitOrOpenAutosave ensures the per-project SQLite autosave store exists at
// .ffw/autosave.sqlite, opens it, enables WAL mode, and ensures the schema.
// Callers close the returned *sql.DB when no longer needed.
func InitOrOpenAutosave(projectRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "autosave_init").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, AutosaveDirName), 0o755); err != nil {
		l.Error("create .ffw dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .ffw dir: %w", err)
	}

	path := AutosavePath(projectRoot)
	uriPath := filepath.ToSlash(path)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureAutosaveSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure autosave schema failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("autosave store ready", slog.String("path", path))
	return db, nil
}

func ensureAutosaveSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS autosaves (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			ts       TEXT NOT NULL,
			doc_blob BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_autosaves_ts ON autosaves(ts);`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure autosave schema: %w", err)
		}
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES ('schema', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		fmt.Sprintf("%d", autosaveSchemaVersion))
	if err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// SaveAutosave persists a document blob with a timestamp.
func SaveAutosave(ctx context.Context, ph *ProjectHandle, blob []byte, ts time.Time) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenAutosave(ph.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertAutosaveSQL, ts.UTC().Format(time.RFC3339Nano), blob)
	return err
}

// LatestAutosave returns the newest autosave blob or nil if none exists.
func LatestAutosave(ctx context.Context, ph *ProjectHandle) ([]byte, time.Time, error) {
	if ph == nil {
		return nil, time.Time{}, errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenAutosave(ph.Root)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var blob []byte
	err = db.QueryRowContext(ctx, selectLatestAutosaveSQL).Scan(&tsStr, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return blob, time.Time{}, nil // return blob even if ts parse fails
	}
	return blob, ts, nil
}

// PruneAutosaves keeps at most keepLast autosaves and deletes older ones.
func PruneAutosaves(ctx context.Context, ph *ProjectHandle, keepLast int) (int64, error) {
	if ph == nil {
		return 0, errors.New("nil ProjectHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenAutosave(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneAutosavesSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
