// Package store keeps the folder catalogue and the ledger of filed captures in SQLite
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrFolderNotFound is returned for an unknown folder id
var ErrFolderNotFound = errors.New("folder not found")

const schema = `
CREATE TABLE IF NOT EXISTS folders (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    display_name    TEXT NOT NULL,
    path            TEXT NOT NULL UNIQUE,
    position        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_folders_position ON folders(position, id);

CREATE TABLE IF NOT EXISTS filings (
    id              TEXT PRIMARY KEY,
    folder_id       INTEGER NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
    source_path     TEXT NOT NULL,
    dest_path       TEXT NOT NULL,
    filed_at_ns     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_filings_folder ON filings(folder_id, filed_at_ns);
`

// Folder is a destination directory; Position orders zones on screen
type Folder struct {
	ID          int64
	DisplayName string
	Path        string
	Position    int
}

// Filing records one capture moved into a folder
type Filing struct {
	ID         string
	FolderID   int64
	SourcePath string
	DestPath   string
	FiledAt    time.Time
}

// Store is the SQLite-backed folder catalogue
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddFolder appends a folder after the existing ones, creating its directory
func (s *Store) AddFolder(ctx context.Context, name, dir string) (Folder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Folder{}, fmt.Errorf("resolve folder path: %w", err)
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return Folder{}, fmt.Errorf("create folder directory: %w", err)
	}

	var pos int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM folders`).Scan(&pos); err != nil {
		return Folder{}, fmt.Errorf("next position: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (display_name, path, position) VALUES (?, ?, ?)`,
		name, abs, pos)
	if err != nil {
		return Folder{}, fmt.Errorf("insert folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Folder{}, fmt.Errorf("folder id: %w", err)
	}
	return Folder{ID: id, DisplayName: name, Path: abs, Position: pos}, nil
}

// EnsureFolder returns the folder at dir, adding it when missing
func (s *Store) EnsureFolder(ctx context.Context, name, dir string) (Folder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Folder{}, fmt.Errorf("resolve folder path: %w", err)
	}
	var f Folder
	err = s.db.QueryRowContext(ctx,
		`SELECT id, display_name, path, position FROM folders WHERE path = ?`, abs,
	).Scan(&f.ID, &f.DisplayName, &f.Path, &f.Position)
	switch {
	case err == nil:
		return f, nil
	case errors.Is(err, sql.ErrNoRows):
		return s.AddFolder(ctx, name, abs)
	default:
		return Folder{}, fmt.Errorf("query folder: %w", err)
	}
}

// Folder returns one folder by id
func (s *Store) Folder(ctx context.Context, id int64) (Folder, error) {
	var f Folder
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, path, position FROM folders WHERE id = ?`, id,
	).Scan(&f.ID, &f.DisplayName, &f.Path, &f.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return Folder{}, fmt.Errorf("folder %d: %w", id, ErrFolderNotFound)
	}
	if err != nil {
		return Folder{}, fmt.Errorf("query folder: %w", err)
	}
	return f, nil
}

// ListFolders returns all folders in display order
func (s *Store) ListFolders(ctx context.Context) ([]Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, path, position FROM folders ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.DisplayName, &f.Path, &f.Position); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// RemoveFolder deletes a folder and its filing records; files stay on disk
func (s *Store) RemoveFolder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("folder %d: %w", id, ErrFolderNotFound)
	}
	return nil
}

// File moves src into the folder and records the filing
// The move is undone when the record cannot be written
func (s *Store) File(ctx context.Context, folderID int64, src string) (Filing, error) {
	f, err := s.Folder(ctx, folderID)
	if err != nil {
		return Filing{}, err
	}
	if _, err := os.Stat(src); err != nil {
		return Filing{}, fmt.Errorf("stat capture: %w", err)
	}

	dest, err := uniquePath(f.Path, filepath.Base(src))
	if err != nil {
		return Filing{}, err
	}
	if err := moveFile(src, dest); err != nil {
		return Filing{}, fmt.Errorf("move capture: %w", err)
	}

	filing := Filing{
		ID:         uuid.NewString(),
		FolderID:   folderID,
		SourcePath: src,
		DestPath:   dest,
		FiledAt:    s.now(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO filings (id, folder_id, source_path, dest_path, filed_at_ns) VALUES (?, ?, ?, ?, ?)`,
		filing.ID, filing.FolderID, filing.SourcePath, filing.DestPath, filing.FiledAt.UnixNano())
	if err != nil {
		if rerr := moveFile(dest, src); rerr != nil {
			return Filing{}, fmt.Errorf("record filing: %w (restore failed: %v)", err, rerr)
		}
		return Filing{}, fmt.Errorf("record filing: %w", err)
	}
	return filing, nil
}

// Filings lists a folder's filings, oldest first
func (s *Store) Filings(ctx context.Context, folderID int64) ([]Filing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, folder_id, source_path, dest_path, filed_at_ns
		 FROM filings WHERE folder_id = ? ORDER BY filed_at_ns, rowid`, folderID)
	if err != nil {
		return nil, fmt.Errorf("query filings: %w", err)
	}
	defer rows.Close()

	var out []Filing
	for rows.Next() {
		var (
			fl Filing
			ns int64
		)
		if err := rows.Scan(&fl.ID, &fl.FolderID, &fl.SourcePath, &fl.DestPath, &ns); err != nil {
			return nil, fmt.Errorf("scan filing: %w", err)
		}
		fl.FiledAt = time.Unix(0, ns)
		out = append(out, fl)
	}
	return out, rows.Err()
}
