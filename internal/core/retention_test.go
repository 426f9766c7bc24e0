package core

import (
	"context"
	"testing"
	"time"
)

func TestPurgeOlderThan(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	old, _ := svc.ProcessUpload(ctx, "shopee_old.csv", []byte(shopeeCSV))
	recent, _ := svc.ProcessUpload(ctx, "shopee_new.csv", []byte(shopeeCSV))

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store.backdate(old.File.ID, now.Add(-48*time.Hour))
	store.backdate(recent.File.ID, now.Add(-time.Hour))

	n, err := svc.PurgeOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeOlderThan: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	files, _ := svc.ListFiles(ctx)
	if len(files) != 1 || files[0].ID != recent.File.ID {
		t.Errorf("remaining = %+v, want only %s", files, recent.File.ID)
	}
}

func TestPurgeOlderThan_CutoffIsExclusive(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	f, _ := svc.ProcessUpload(ctx, "shopee.csv", []byte(shopeeCSV))
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store.backdate(f.File.ID, cutoff)

	if n, _ := svc.PurgeOlderThan(ctx, cutoff); n != 0 {
		t.Errorf("purged = %d, want 0 for a file uploaded exactly at the cutoff", n)
	}
}

func TestStartRetentionScheduler(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f, _ := svc.ProcessUpload(ctx, "shopee.csv", []byte(shopeeCSV))
	store.backdate(f.File.ID, time.Now().Add(-2*time.Hour))

	done := make(chan struct{})
	go func() {
		svc.StartRetentionScheduler(ctx, RetentionConfig{MaxAge: time.Hour, CheckInterval: time.Hour})
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		files, _ := svc.ListFiles(context.Background())
		if len(files) == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("retention job did not purge the expired file")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestStartRetentionScheduler_Disabled(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	done := make(chan struct{})
	go func() {
		svc.StartRetentionScheduler(context.Background(), RetentionConfig{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled scheduler did not return immediately")
	}
}
