package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS raw_files (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	uploaded_at INTEGER NOT NULL,
	size        INTEGER NOT NULL,
	content     BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS raw_files_uploaded_at ON raw_files (uploaded_at);
`

// SQLiteStore keeps files in a single SQLite database file.
// Upload times are stored as Unix nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// One connection serializes writers and keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, data []byte) (core.FileInfo, error) {
	info, err := newFileInfo(name, len(data))
	if err != nil {
		return core.FileInfo{}, err
	}
	if data == nil {
		data = []byte{}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO raw_files (id, name, uploaded_at, size, content) VALUES (?, ?, ?, ?, ?)`,
		info.ID, info.Name, info.UploadedAt.UnixNano(), info.Size, data,
	)
	if err != nil {
		return core.FileInfo{}, fmt.Errorf("insert file: %w", err)
	}
	return info, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]core.FileInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, uploaded_at, size FROM raw_files ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	files := []core.FileInfo{}
	for rows.Next() {
		var (
			f     core.FileInfo
			nanos int64
		)
		if err := rows.Scan(&f.ID, &f.Name, &nanos, &f.Size); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		f.UploadedAt = time.Unix(0, nanos).UTC()
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT content FROM raw_files WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM raw_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if n == 0 {
		return core.ErrFileNotFound
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM raw_files`)
	if err != nil {
		return 0, fmt.Errorf("clear files: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear files: %w", err)
	}
	return int(n), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
