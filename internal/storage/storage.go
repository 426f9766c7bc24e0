// Package storage implements core.BlobStore backends for raw upload files.
//
// Four backends are available, selected by STORAGE_BACKEND:
//
//	memory   - process memory, lost on restart (tests and demos)
//	sqlite   - a single SQLite file, the default
//	postgres - a bytea table in PostgreSQL via pgxpool
//	s3       - objects in an S3-compatible bucket
//
// Every backend assigns time-ordered UUIDv7 ids and lists files newest
// first, breaking timestamp ties by id.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/config"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

// Store is a BlobStore that can also drop every file and release its
// resources.
type Store interface {
	core.BlobStore
	core.Clearer
	io.Closer
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*S3Store)(nil)
)

// Open creates the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	backend := strings.ToLower(cfg.Storage.Backend)
	slog.Info("opening file storage", "backend", backend)

	switch backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Storage.SQLitePath)
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.Database)
	case config.BackendS3:
		s, err := NewS3Store(cfg.S3, WithLogger(slog.Default()))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// newFileInfo assigns an id and upload time to a new file.
func newFileInfo(name string, size int) (core.FileInfo, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return core.FileInfo{}, fmt.Errorf("generate file id: %w", err)
	}
	return core.FileInfo{
		ID:         id.String(),
		Name:       name,
		UploadedAt: time.Now().UTC(),
		Size:       int64(size),
	}, nil
}

// sortNewestFirst orders files by upload time, newest first.
func sortNewestFirst(files []core.FileInfo) {
	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].UploadedAt.Equal(files[j].UploadedAt) {
			return files[i].UploadedAt.After(files[j].UploadedAt)
		}
		return files[i].ID > files[j].ID
	})
}
