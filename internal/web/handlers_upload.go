package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

var errFileTooLarge = errors.New("file too large")

// multipartOverhead is allowed on top of the file size for form headers.
const multipartOverhead = 1 << 20

// readUpload extracts the "file" field of a multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if isTooLarge(err) {
			return "", nil, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return "", nil, core.ErrNoFile
		}
		return "", nil, fmt.Errorf("parse upload form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, core.ErrNoFile
		}
		return "", nil, fmt.Errorf("read upload form: %w", err)
	}
	defer file.Close()

	if header.Size > maxSize {
		return "", nil, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return header.Filename, data, nil
}

func isTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes) || strings.Contains(err.Error(), "request body too large")
}

// upload runs one upload through the service under the upload timeout.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) (*core.UploadResult, error) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	if s.cfg.Upload.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Upload.Timeout)
		defer cancel()
	}
	ctx = core.ContextWithClient(ctx, clientIP(r), r.UserAgent())

	return s.service.ProcessUpload(ctx, name, data)
}

// handleUpload accepts one marketplace export and returns its per-file
// summary.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	result, err := s.upload(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleUploadPage is the dashboard form target. Errors are shown on the
// dashboard itself.
func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.upload(w, r); err != nil {
		if isHTMX(r) {
			s.fail(w, r, err)
			return
		}
		s.renderDashboard(w, r, summaryRequest{}, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
