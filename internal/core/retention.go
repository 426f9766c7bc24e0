package core

// retention.go removes stored exports older than a configured age.
//
// The job runs once on start and then every CheckInterval until the context
// is cancelled. A failed pass is logged and retried on the next tick.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const DefaultRetentionCheckInterval = 24 * time.Hour

// RetentionConfig holds settings for the retention job. A zero MaxAge
// disables it.
type RetentionConfig struct {
	MaxAge        time.Duration
	CheckInterval time.Duration
}

// StartRetentionScheduler blocks, purging files older than cfg.MaxAge on
// every tick. Run it in its own goroutine.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	if cfg.MaxAge <= 0 {
		slog.Info("retention scheduler disabled")
		return
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultRetentionCheckInterval
	}

	slog.Info("retention scheduler started",
		"max_age", cfg.MaxAge.String(),
		"check_interval", cfg.CheckInterval.String(),
	)

	s.runRetentionJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention scheduler stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg)
		}
	}
}

func (s *Service) runRetentionJob(ctx context.Context, cfg RetentionConfig) {
	start := time.Now()
	purged, err := s.PurgeOlderThan(ctx, start.Add(-cfg.MaxAge))
	if err != nil {
		slog.Error("retention purge failed", "error", err, "purged", purged)
		return
	}
	slog.Info("retention purge completed",
		"purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// PurgeOlderThan deletes every file uploaded before cutoff and returns how
// many were removed. Files deleted concurrently are not counted.
func (s *Service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list files: %w", err)
	}

	purged := 0
	for _, f := range files {
		if !f.UploadedAt.Before(cutoff) {
			continue
		}
		err := s.store.Delete(ctx, f.ID)
		if errors.Is(err, ErrFileNotFound) {
			continue
		}
		if err != nil {
			return purged, fmt.Errorf("delete file %s: %w", f.ID, err)
		}
		purged++
	}
	return purged, nil
}
