package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/logging"
)

// maxSummaryBody bounds the JSON body of POST /api/summary.
const maxSummaryBody = 64 << 10

// summaryFor validates the bounds and computes the cross-file summary.
func (s *Server) summaryFor(r *http.Request, req summaryRequest) (*core.CrossFileSummary, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	dr, err := core.ParseDateRange(req.DataInicial, req.DataFinal)
	if err != nil {
		return nil, err
	}
	return s.service.ComputeCrossFileSummary(r.Context(), dr)
}

// handleSummary aggregates every stored file. GET reads the bounds from the
// query string; POST also accepts them as a JSON body.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req := summaryRequestFromQuery(r)

	if r.Method == http.MethodPost {
		var body summaryRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxSummaryBody))
		if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			s.fail(w, r, fmt.Errorf("%w: malformed JSON body: %w", errInvalidRequest, err))
			return
		}
		if body.DataInicial != "" {
			req.DataInicial = strings.TrimSpace(body.DataInicial)
		}
		if body.DataFinal != "" {
			req.DataFinal = strings.TrimSpace(body.DataFinal)
		}
	}

	summary, err := s.summaryFor(r, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("summary computed",
		"data_inicial", req.DataInicial,
		"data_final", req.DataFinal,
		"records", len(summary.Records),
		"files", summary.FilesScanned,
	)
	writeJSON(w, http.StatusOK, summary)
}

// handleExportSummary returns the summary as a CSV or XLSX attachment.
func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	req := exportRequest{
		Bounds: summaryRequestFromQuery(r),
		Format: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))),
	}
	if err := s.validateRequest(req); err != nil {
		s.fail(w, r, err)
		return
	}

	summary, err := s.summaryFor(r, req.Bounds)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch req.Format {
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = core.WriteSummaryXLSX(&buf, summary.Records)
	default:
		contentType = "text/csv; charset=utf-8"
		err = core.WriteSummaryCSV(&buf, summary.Records)
	}
	if err != nil {
		s.fail(w, r, fmt.Errorf("export summary: %w", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="resumo-vendas.%s"`, req.Format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
