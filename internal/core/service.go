package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/logging"
)

// FileInfo describes a stored raw export.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int64     `json:"size"`
}

// BlobStore persists raw upload bytes. Implementations must be safe for
// concurrent use and return ErrFileNotFound for unknown ids.
type BlobStore interface {
	Save(ctx context.Context, name string, data []byte) (FileInfo, error)
	// List returns files newest first.
	List(ctx context.Context) ([]FileInfo, error)
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// Clearer is implemented by stores that can drop every file at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// SupportedExtensions lists the upload extensions accepted by ProcessUpload.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls", ".csv", ".tsv", ".txt"}

// DefaultPreviewRows is how many rows an upload result previews.
const DefaultPreviewRows = 5

// ServiceConfig tunes the service. Zero values use defaults.
type ServiceConfig struct {
	MaxConcurrentUploads int
	MaxUploadWait        time.Duration
	PreviewRows          int
}

// Service provides upload processing and sales summaries over a BlobStore.
type Service struct {
	store       BlobStore
	limiter     *UploadLimiter
	previewRows int
}

// NewService creates a Service backed by store.
func NewService(store BlobStore, cfg ServiceConfig) (*Service, error) {
	if store == nil {
		return nil, errors.New("blob store is required")
	}
	preview := cfg.PreviewRows
	if preview <= 0 {
		preview = DefaultPreviewRows
	}
	return &Service{
		store:       store,
		limiter:     NewUploadLimiter(cfg.MaxConcurrentUploads, cfg.MaxUploadWait),
		previewRows: preview,
	}, nil
}

// UploadResult is returned for every accepted upload.
type UploadResult struct {
	File        FileInfo         `json:"file"`
	Platform    Platform         `json:"platform"`
	Summary     PlatformSummary  `json:"per_file_summary"`
	Columns     []string         `json:"columns"`
	PreviewRows []map[string]any `json:"preview_rows"`
	Description string           `json:"description_text"`
	Profile     TableProfile     `json:"profile"`
}

// ProcessUpload validates, decodes, classifies and stores an export.
//
// The bytes are decoded before they are saved, so an undecodable upload is
// rejected with ErrUnsupportedFormat (wrapping *DecodeError) and never
// stored.
func (s *Service) ProcessUpload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrEmptyFilename
	}
	if data == nil {
		return nil, ErrNoFile
	}
	if !IsSupportedExtension(filename) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	table, err := LoadTable(data, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	platform := DetectPlatform(filename)
	summary := SummarizeSingle(table, platform)

	info, err := s.store.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("save %q: %w", filename, err)
	}

	logging.WithFields(ctx,
		"file_id", info.ID,
		"file_name", filename,
		"platform", platform.String(),
	).Info("file stored",
		"rows", table.Len(),
		"bytes", info.Size,
		"client_ip", ClientIPFromContext(ctx),
	)

	return &UploadResult{
		File:        info,
		Platform:    platform,
		Summary:     summary,
		Columns:     append([]string{}, table.Columns...),
		PreviewRows: table.Preview(s.previewRows),
		Description: Describe(summary),
		Profile:     ProfileTable(table),
	}, nil
}

// IsSupportedExtension reports whether filename has an accepted extension.
func IsSupportedExtension(filename string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(filename)))
}

// CrossFileSummary is the per-SKU summary over every stored file.
type CrossFileSummary struct {
	Records      []SummaryRecord `json:"records"`
	FilesScanned int             `json:"files_scanned"`
	FilesSkipped []string        `json:"files_skipped,omitempty"`
	NoData       bool            `json:"no_data,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// ComputeCrossFileSummary decodes every stored file, normalizes it for its
// detected platform within r, and aggregates the result.
//
// Files are read oldest first. Files that fail to decode, or disappear
// between listing and reading, are skipped. When nothing decodes the
// result has NoData set and an empty record list.
func (s *Service) ComputeCrossFileSummary(ctx context.Context, r DateRange) (*CrossFileSummary, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	logger := logging.FromContext(ctx)
	result := &CrossFileSummary{Records: []SummaryRecord{}}
	var rows []SaleRow

	for i := len(files) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := files[i]

		data, err := s.store.Get(ctx, f.ID)
		if errors.Is(err, ErrFileNotFound) {
			logger.Warn("file vanished during summary", "file_id", f.ID, "file_name", f.Name)
			result.FilesSkipped = append(result.FilesSkipped, f.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get file %s: %w", f.ID, err)
		}

		table, err := LoadTable(data, f.Name)
		if err != nil {
			logger.Warn("skipping undecodable file", "file_id", f.ID, "file_name", f.Name, "error", err)
			result.FilesSkipped = append(result.FilesSkipped, f.Name)
			continue
		}

		result.FilesScanned++
		rows = append(rows, NormalizeAndFilter(table, DetectPlatform(f.Name), r)...)
	}

	if result.FilesScanned == 0 {
		result.NoData = true
		result.Message = NoDataMessage
		return result, nil
	}

	result.Records = Aggregate(rows)
	logger.Debug("summary computed",
		"files", result.FilesScanned,
		"skipped", len(result.FilesSkipped),
		"records", len(result.Records),
	)
	return result, nil
}

// ListFiles returns stored files, newest first.
func (s *Service) ListFiles(ctx context.Context) ([]FileInfo, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if files == nil {
		files = []FileInfo{}
	}
	return files, nil
}

// DeleteFile removes one stored file. Returns ErrFileNotFound if absent.
func (s *Service) DeleteFile(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	logging.FromContext(ctx).Info("file deleted", "file_id", id)
	return nil
}

// ClearFiles removes every stored file and returns how many were removed.
func (s *Service) ClearFiles(ctx context.Context) (int, error) {
	if c, ok := s.store.(Clearer); ok {
		n, err := c.Clear(ctx)
		if err != nil {
			return 0, fmt.Errorf("clear files: %w", err)
		}
		logging.FromContext(ctx).Info("files cleared", "count", n)
		return n, nil
	}

	files, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list files: %w", err)
	}
	removed := 0
	for _, f := range files {
		err := s.store.Delete(ctx, f.ID)
		if errors.Is(err, ErrFileNotFound) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("delete file %s: %w", f.ID, err)
		}
		removed++
	}
	logging.FromContext(ctx).Info("files cleared", "count", removed)
	return removed, nil
}

// UploadLimiterStatus returns the current upload slot usage.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
