package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/config"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS raw_files (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL,
	size        BIGINT NOT NULL,
	content     BYTEA NOT NULL
);
CREATE INDEX IF NOT EXISTS raw_files_uploaded_at ON raw_files (uploaded_at);
`

// PostgresStore keeps files in a PostgreSQL bytea table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool sized by cfg, pings it and applies the schema.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	return NewPostgresStore(ctx, pool)
}

// NewPostgresStore wraps an existing pool and applies the schema.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, data []byte) (core.FileInfo, error) {
	info, err := newFileInfo(name, len(data))
	if err != nil {
		return core.FileInfo{}, err
	}
	if data == nil {
		data = []byte{}
	}
	// TIMESTAMPTZ keeps microseconds.
	info.UploadedAt = info.UploadedAt.Truncate(time.Microsecond)
	uid, _ := parseID(info.ID)

	_, err = s.pool.Exec(ctx,
		`INSERT INTO raw_files (id, name, uploaded_at, size, content) VALUES ($1, $2, $3, $4, $5)`,
		uid, info.Name,
		pgtype.Timestamptz{Time: info.UploadedAt, Valid: true},
		info.Size, data,
	)
	if err != nil {
		return core.FileInfo{}, fmt.Errorf("insert file: %w", err)
	}
	return info, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]core.FileInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, uploaded_at, size FROM raw_files ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	files := []core.FileInfo{}
	for rows.Next() {
		var (
			id   pgtype.UUID
			ts   pgtype.Timestamptz
			info core.FileInfo
		)
		if err := rows.Scan(&id, &info.Name, &ts, &info.Size); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		info.ID = uuid.UUID(id.Bytes).String()
		info.UploadedAt = ts.Time.UTC()
		files = append(files, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) ([]byte, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, core.ErrFileNotFound
	}

	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT content FROM raw_files WHERE id = $1`, uid).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return core.ErrFileNotFound
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM raw_files WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrFileNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM raw_files`)
	if err != nil {
		return 0, fmt.Errorf("clear files: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// parseID converts a file id to a pgtype.UUID. Malformed ids cannot exist
// in the table, so callers treat them as not found.
func parseID(id string) (pgtype.UUID, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, false
	}
	return pgtype.UUID{Bytes: u, Valid: true}, true
}
