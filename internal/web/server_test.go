package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/config"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/storage"
)

const shopeeCSV = "ID do pedido,Status do pedido,Hora do pagamento do pedido,Número de referência SKU,Quantidade,Subtotal do produto\n" +
	"1,Completed,2024-01-10 10:00,A1,3,30\n" +
	"2,Cancelled,2024-01-11 10:00,A1,2,20\n"

const mercadoLivreCSV = "Data da venda;Status;SKU;Unidades;Total (BRL)\n" +
	"15/01/2024;Delivered;B2;5;50\n"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Upload.MaxFileSize = 1 << 20
	cfg.Upload.Timeout = 30 * time.Second
	cfg.Upload.MaxConcurrent = 2
	cfg.Upload.MaxWaitTime = time.Second
	cfg.Security.EnableCSP = true
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	svc, err := core.NewService(storage.NewMemoryStore(), core.ServiceConfig{
		MaxConcurrentUploads: cfg.Upload.MaxConcurrent,
		MaxUploadWait:        cfg.Upload.MaxWaitTime,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	s := NewServer(svc, cfg)
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

// uploadRequest builds a multipart request with data under field.
func uploadRequest(t *testing.T, path, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(data)
	} else {
		mw.WriteField("other", "x")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func mustUpload(t *testing.T, s *Server, filename, content string) core.UploadResult {
	t.Helper()
	rec := serve(s, uploadRequest(t, "/api/upload", "file", filename, []byte(content)))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload %s: status = %d, body = %s", filename, rec.Code, rec.Body)
	}
	var res core.UploadResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode upload result: %v", err)
	}
	return res
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode error response %q: %v", rec.Body, err)
	}
	return er
}

// summaryJSON mirrors CrossFileSummary with plain string values.
type summaryJSON struct {
	Records []struct {
		Platform      string `json:"platform"`
		SKU           string `json:"sku"`
		TotalQuantity int64  `json:"total_quantity"`
		TotalValue    string `json:"total_value"`
	} `json:"records"`
	FilesScanned int      `json:"files_scanned"`
	FilesSkipped []string `json:"files_skipped"`
	NoData       bool     `json:"no_data"`
	Message      string   `json:"message"`
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) summaryJSON {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var s summaryJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	return s
}

// ----------------------------------------------------------------------------
// Health and middleware
// ----------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Status  string                   `json:"status"`
		Uploads core.UploadLimiterStatus `json:"uploads"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if body.Uploads.MaxConcurrent != 2 {
		t.Errorf("uploads.max_concurrent = %d, want 2", body.Uploads.MaxConcurrent)
	}
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name    string
		csp     bool
		wantCSP bool
	}{
		{"csp enabled", true, true},
		{"csp disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Security.EnableCSP = tt.csp
			s := newTestServer(t, cfg)

			rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
			if got := rec.Header().Get("Content-Security-Policy") != ""; got != tt.wantCSP {
				t.Errorf("CSP present = %v, want %v", got, tt.wantCSP)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 2
	cfg.Rate.UploadLimit = 1
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil)); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
	if er := decodeError(t, rec); er.Code != "RATE001" {
		t.Errorf("code = %q, want RATE001", er.Code)
	}

	// Another client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.RemoteAddr = "10.1.2.3:4444"
	if rec := serve(s, req); rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_Uploads(t *testing.T) {
	cfg := testConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 100
	cfg.Rate.UploadLimit = 1
	s := newTestServer(t, cfg)

	mustUpload(t, s, "shopee.csv", shopeeCSV)

	rec := serve(s, uploadRequest(t, "/api/upload", "file", "shopee.csv", []byte(shopeeCSV)))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second upload status = %d, want 429", rec.Code)
	}
	if rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil)); rec.Code != http.StatusOK {
		t.Errorf("list after upload limit: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := &rateLimiter{visitors: make(map[string]*visitor), rate: 2, window: time.Minute}

	if !rl.allow("a") || !rl.allow("a") {
		t.Fatal("first two requests rejected")
	}
	if rl.allow("a") {
		t.Error("third request allowed")
	}
	if !rl.allow("b") {
		t.Error("other ip rejected")
	}

	rl.visitors["a"].lastReset = time.Now().Add(-2 * time.Minute)
	if !rl.allow("a") {
		t.Error("request after window rejected")
	}
}

// ----------------------------------------------------------------------------
// Upload
// ----------------------------------------------------------------------------

func TestUpload(t *testing.T) {
	s := newTestServer(t, testConfig())

	res := mustUpload(t, s, "pedidos_shopee.csv", shopeeCSV)
	if res.Platform != core.Shopee {
		t.Errorf("Platform = %v, want Shopee", res.Platform)
	}
	if res.File.ID == "" || res.File.Name != "pedidos_shopee.csv" {
		t.Errorf("File = %+v", res.File)
	}
	if res.Summary.Rows != 2 {
		t.Errorf("Summary.Rows = %d, want 2", res.Summary.Rows)
	}
	if res.Summary.TotalItems == nil || *res.Summary.TotalItems != 5 {
		t.Errorf("Summary.TotalItems = %v, want 5", res.Summary.TotalItems)
	}
	if len(res.PreviewRows) != 2 {
		t.Errorf("PreviewRows = %d, want 2", len(res.PreviewRows))
	}
	if res.Description == "" {
		t.Error("Description is empty")
	}
}

func TestUpload_XLSX(t *testing.T) {
	s := newTestServer(t, testConfig())

	f := excelize.NewFile()
	rows := [][]any{
		{"Data da venda", "Status", "SKU", "Unidades", "Total (BRL)"},
		{"15/01/2024", "Delivered", "B2", 5, 50.5},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rec := serve(s, uploadRequest(t, "/api/upload", "file", "vendas mercado livre.xlsx", buf.Bytes()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var res core.UploadResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Platform != core.MercadoLivre {
		t.Errorf("Platform = %v, want MercadoLivre", res.Platform)
	}
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		filename   string
		data       []byte
		wantStatus int
		wantCode   string
	}{
		{"no file field", "", "", nil, http.StatusBadRequest, "FILE004"},
		{"unsupported extension", "file", "relatorio.pdf", []byte("%PDF"), http.StatusBadRequest, "FILE006"},
		{"undecodable", "file", "shopee.xlsx", []byte("PK\x03\x04\x00\x00not a workbook"), http.StatusBadRequest, "FILE002"},
		{"too large", "file", "shopee.csv", bytes.Repeat([]byte("a"), 2048), http.StatusRequestEntityTooLarge, "FILE001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Upload.MaxFileSize = 1024
			s := newTestServer(t, cfg)

			rec := serve(s, uploadRequest(t, "/api/upload", tt.field, tt.filename, tt.data))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			er := decodeError(t, rec)
			if er.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", er.Code, tt.wantCode)
			}
			if er.Message == "" || er.RequestID == "" {
				t.Errorf("response = %+v, want message and request id", er)
			}

			files := decodeFiles(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil)))
			if len(files) != 0 {
				t.Errorf("rejected upload was stored: %+v", files)
			}
		})
	}
}

func TestUpload_NotMultipart(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("hello"))
	req.Header.Set("Content-Type", "text/plain")
	rec := serve(s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeError(t, rec); er.Code != "FILE004" {
		t.Errorf("code = %q, want FILE004", er.Code)
	}
}

func TestUpload_HTMXError(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := uploadRequest(t, "/upload", "file", "notas.pdf", []byte("x"))
	req.Header.Set("HX-Request", "true")
	rec := serve(s, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, `role="alert"`) || !strings.Contains(body, "FILE006") {
		t.Errorf("body = %q, want error alert with FILE006", body)
	}
}

// ----------------------------------------------------------------------------
// Files
// ----------------------------------------------------------------------------

func decodeFiles(t *testing.T, rec *httptest.ResponseRecorder) []core.FileInfo {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, body = %s", rec.Code, rec.Body)
	}
	var files []core.FileInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &files); err != nil {
		t.Fatal(err)
	}
	return files
}

func TestFiles(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty list body = %q, want []", body)
	}

	first := mustUpload(t, s, "shopee.csv", shopeeCSV)
	second := mustUpload(t, s, "mercadolivre.csv", mercadoLivreCSV)

	files := decodeFiles(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil)))
	if len(files) != 2 || files[0].ID != second.File.ID || files[1].ID != first.File.ID {
		t.Fatalf("files = %+v, want newest first", files)
	}

	rec = serve(s, httptest.NewRequest(http.MethodDelete, "/api/files/"+first.File.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	rec = serve(s, httptest.NewRequest(http.MethodDelete, "/api/files/"+first.File.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
	if er := decodeError(t, rec); er.Code != "FILE008" {
		t.Errorf("code = %q, want FILE008", er.Code)
	}

	rec = serve(s, httptest.NewRequest(http.MethodDelete, "/api/files", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	var cleared map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &cleared); err != nil {
		t.Fatal(err)
	}
	if cleared["deleted"] != 1 {
		t.Errorf("deleted = %d, want 1", cleared["deleted"])
	}

	if files := decodeFiles(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/files", nil))); len(files) != 0 {
		t.Errorf("files after clear = %+v", files)
	}
}

// ----------------------------------------------------------------------------
// Summary
// ----------------------------------------------------------------------------

func TestSummary(t *testing.T) {
	s := newTestServer(t, testConfig())
	mustUpload(t, s, "shopee_jan.csv", shopeeCSV)
	mustUpload(t, s, "mercadolivre_jan.csv", mercadoLivreCSV)

	got := decodeSummary(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/summary", nil)))
	if got.FilesScanned != 2 || got.NoData {
		t.Errorf("FilesScanned = %d, NoData = %v", got.FilesScanned, got.NoData)
	}

	want := []struct {
		platform string
		sku      string
		qty      int64
		value    string
	}{
		{"Shopee", "A1", 3, "30"},
		{"Mercado Livre", "B2", 5, "50"},
	}
	if len(got.Records) != len(want) {
		t.Fatalf("records = %+v, want %d", got.Records, len(want))
	}
	for i, w := range want {
		r := got.Records[i]
		if r.Platform != w.platform || r.SKU != w.sku || r.TotalQuantity != w.qty || r.TotalValue != w.value {
			t.Errorf("record %d = %+v, want %+v", i, r, w)
		}
	}
}

func TestSummary_DateRange(t *testing.T) {
	s := newTestServer(t, testConfig())
	mustUpload(t, s, "shopee_jan.csv", shopeeCSV)
	mustUpload(t, s, "mercadolivre_jan.csv", mercadoLivreCSV)

	got := decodeSummary(t, serve(s, httptest.NewRequest(http.MethodGet,
		"/api/summary?data_inicial=2024-01-12&data_final=2024-01-31", nil)))
	if len(got.Records) != 1 || got.Records[0].SKU != "B2" {
		t.Errorf("records = %+v, want only B2", got.Records)
	}

	// A date-only upper bound covers the whole day.
	got = decodeSummary(t, serve(s, httptest.NewRequest(http.MethodGet,
		"/api/summary?data_final=2024-01-10", nil)))
	if len(got.Records) != 1 || got.Records[0].SKU != "A1" {
		t.Errorf("records = %+v, want only A1", got.Records)
	}
}

func TestSummary_PostBody(t *testing.T) {
	s := newTestServer(t, testConfig())
	mustUpload(t, s, "shopee_jan.csv", shopeeCSV)
	mustUpload(t, s, "mercadolivre_jan.csv", mercadoLivreCSV)

	req := httptest.NewRequest(http.MethodPost, "/api/summary",
		strings.NewReader(`{"data_inicial":"2024-01-15","data_final":"2024-01-15"}`))
	req.Header.Set("Content-Type", "application/json")

	got := decodeSummary(t, serve(s, req))
	if len(got.Records) != 1 || got.Records[0].SKU != "B2" {
		t.Errorf("records = %+v, want only B2", got.Records)
	}

	// An empty body means no bounds.
	got = decodeSummary(t, serve(s, httptest.NewRequest(http.MethodPost, "/api/summary", nil)))
	if len(got.Records) != 2 {
		t.Errorf("records = %+v, want 2", got.Records)
	}
}

func TestSummary_NoFiles(t *testing.T) {
	s := newTestServer(t, testConfig())

	got := decodeSummary(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/summary", nil)))
	if !got.NoData || got.Message != core.NoDataMessage {
		t.Errorf("NoData = %v, Message = %q", got.NoData, got.Message)
	}
	if got.Records == nil || len(got.Records) != 0 {
		t.Errorf("Records = %v, want empty list", got.Records)
	}
}

func TestSummary_Errors(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantCode    string
		wantDetails int
	}{
		{"bad start date", http.MethodGet, "/api/summary?data_inicial=ontem", "", "VAL001", 1},
		{"both dates bad", http.MethodGet, "/api/summary?data_inicial=x&data_final=y", "", "VAL001", 2},
		{"reversed range", http.MethodGet, "/api/summary?data_inicial=2024-02-01&data_final=2024-01-01", "", "VAL002", 0},
		{"bad json", http.MethodPost, "/api/summary", "{", "VAL003", 0},
		{"bad date in body", http.MethodPost, "/api/summary", `{"data_final":"31/31/2024"}`, "VAL001", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testConfig())

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := serve(s, httptest.NewRequest(tt.method, tt.target, body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			er := decodeError(t, rec)
			if er.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", er.Code, tt.wantCode)
			}
			if len(er.Details) != tt.wantDetails {
				t.Errorf("details = %+v, want %d", er.Details, tt.wantDetails)
			}
		})
	}
}

func TestExportSummary(t *testing.T) {
	s := newTestServer(t, testConfig())
	mustUpload(t, s, "shopee_jan.csv", shopeeCSV)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/summary/export?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "resumo-vendas.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	want := "Plataforma,SKU,Quantidade,Valor total\nShopee,A1,3,30.00\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/summary/export?format=XLSX", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("xlsx status = %d, body = %s", rec.Code, rec.Body)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()
	sku, _ := f.GetCellValue(core.ExportSheet, "B2")
	if sku != "A1" {
		t.Errorf("B2 = %q, want A1", sku)
	}
}

func TestExportSummary_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantCode string
	}{
		{"missing format", "/api/summary/export", "VAL003"},
		{"unknown format", "/api/summary/export?format=pdf", "VAL003"},
		{"bad date", "/api/summary/export?format=csv&data_inicial=nope", "VAL001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, testConfig())
			rec := serve(s, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if er := decodeError(t, rec); er.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", er.Code, tt.wantCode)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Pages
// ----------------------------------------------------------------------------

func TestDashboard(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Nenhum arquivo enviado.", core.NoDataMessage, `action="/upload"`} {
		if !strings.Contains(body, want) {
			t.Errorf("empty dashboard missing %q", want)
		}
	}

	mustUpload(t, s, "shopee <jan>.csv", shopeeCSV)

	body = serve(s, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	for _, want := range []string{"shopee &lt;jan&gt;.csv", "<td>A1</td>", "30.00", "format=xlsx"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestDashboard_InvalidDate(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/?data_inicial=amanha", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "VAL001") || !strings.Contains(body, `value="amanha"`) {
		t.Errorf("body does not show the alert and keep the input: %s", body)
	}
}

func TestUploadPage(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := serve(s, uploadRequest(t, "/upload", "file", "shein_marco.csv",
		[]byte("SKU do vendedor,Quantidade,Receita estimada de mercadorias,Status do pedido\nS1,1,9.90,Entregue\n")))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303 (body %s)", rec.Code, rec.Body)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	rec = serve(s, uploadRequest(t, "/upload", "file", "notas.pdf", []byte("x")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "FILE006") || !strings.Contains(body, "shein_marco.csv") {
		t.Errorf("error page should show the alert and the stored files: %s", body)
	}
}

func TestNewValidator_SaleDate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"2024-01-15", false},
		{"15/01/2024", false},
		{"não é data", true},
	}

	for _, tt := range tests {
		err := v.Var(tt.value, "saledate")
		if (err != nil) != tt.wantErr {
			t.Errorf("Var(%q, saledate) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}
