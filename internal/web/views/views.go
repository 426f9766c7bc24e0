// Package views renders the HTML pages of the web UI as templ components.
package views

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

// Alert is an error shown above the page content.
type Alert struct {
	Message string
	Action  string
	Code    string
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Files   []core.FileInfo
	Summary *core.CrossFileSummary
	From    string
	To      string
	Alert   *Alert
}

// exportQuery keeps the active date bounds on export links.
func (d DashboardData) exportQuery(format string) string {
	q := url.Values{}
	q.Set("format", format)
	if d.From != "" {
		q.Set("data_inicial", d.From)
	}
	if d.To != "" {
		q.Set("data_final", d.To)
	}
	return "/api/summary/export?" + q.Encode()
}

// ErrorAlert renders an error fragment for HTMX swaps and page alerts.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-error" role="alert"><p><strong>%s</strong></p><p>%s</p><p class="code">Código: %s</p></div>`,
			templ.EscapeString(message), templ.EscapeString(action), templ.EscapeString(code))
		return err
	})
}

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style>%s</style></head><body><main>`,
			templ.EscapeString(title), pageStyle); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#1f2933}` +
	`main{max-width:960px;margin:0 auto;padding:24px}` +
	`section{background:#fff;border-radius:8px;padding:16px;margin-bottom:16px}` +
	`table{width:100%;border-collapse:collapse}th,td{text-align:left;padding:6px 8px;border-bottom:1px solid #e4e7eb}` +
	`td.num{text-align:right}.alert-error{background:#fde8e8;border:1px solid #f8b4b4;padding:8px 12px;border-radius:6px}` +
	`.code{color:#6b7280;font-size:.85em}.empty{color:#6b7280}`

// Dashboard renders the upload form, the stored files and the cross-file
// summary.
func Dashboard(d DashboardData) templ.Component {
	return Layout("Resumo de vendas", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Resumo de vendas por SKU</h1>`); err != nil {
			return err
		}
		if d.Alert != nil {
			if err := ErrorAlert(d.Alert.Message, d.Alert.Action, d.Alert.Code).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := uploadForm(w); err != nil {
			return err
		}
		if err := fileList(w, d.Files); err != nil {
			return err
		}
		return summarySection(w, d)
	}))
}

func uploadForm(w io.Writer) error {
	_, err := io.WriteString(w, `<section><h2>Enviar relatório</h2>`+
		`<form method="post" action="/upload" enctype="multipart/form-data">`+
		`<input type="file" name="file" accept=".xlsx,.xlsm,.xltx,.xltm,.xls,.csv,.tsv,.txt" required> `+
		`<button type="submit">Enviar</button></form></section>`)
	return err
}

func fileList(w io.Writer, files []core.FileInfo) error {
	if _, err := io.WriteString(w, `<section><h2>Arquivos enviados</h2>`); err != nil {
		return err
	}
	if len(files) == 0 {
		_, err := io.WriteString(w, `<p class="empty">Nenhum arquivo enviado.</p></section>`)
		return err
	}
	if _, err := io.WriteString(w, `<table><thead><tr><th>Arquivo</th><th>Plataforma</th><th>Enviado em</th><th>Tamanho</th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, f := range files {
		_, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td class="num">%d B</td></tr>`,
			templ.EscapeString(f.Name),
			templ.EscapeString(core.DetectPlatform(f.Name).DisplayName()),
			f.UploadedAt.Local().Format("02/01/2006 15:04"),
			f.Size)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table></section>`)
	return err
}

func summarySection(w io.Writer, d DashboardData) error {
	_, err := fmt.Fprintf(w, `<section><h2>Resumo por SKU</h2>`+
		`<form method="get" action="/">`+
		`<label>Data inicial <input type="date" name="data_inicial" value="%s"></label> `+
		`<label>Data final <input type="date" name="data_final" value="%s"></label> `+
		`<button type="submit">Filtrar</button></form>`,
		templ.EscapeString(d.From), templ.EscapeString(d.To))
	if err != nil {
		return err
	}

	s := d.Summary
	if s == nil || len(s.Records) == 0 {
		msg := core.NoDataMessage
		if s != nil && s.Message != "" {
			msg = s.Message
		}
		_, err := fmt.Fprintf(w, `<p class="empty">%s</p></section>`, templ.EscapeString(msg))
		return err
	}

	if _, err := io.WriteString(w, `<table><thead><tr><th>Plataforma</th><th>SKU</th><th>Quantidade</th><th>Valor total</th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, rec := range s.Records {
		_, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td class="num">%d</td><td class="num">%s</td></tr>`,
			templ.EscapeString(rec.Platform.DisplayName()),
			templ.EscapeString(rec.SKU),
			rec.TotalQuantity,
			rec.TotalValue.StringFixed(2))
		if err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
		return err
	}

	if len(s.FilesSkipped) > 0 {
		if _, err := io.WriteString(w, `<p class="empty">Arquivos ignorados:`); err != nil {
			return err
		}
		for _, name := range s.FilesSkipped {
			if _, err := fmt.Fprintf(w, ` %s`, templ.EscapeString(name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</p>`); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, `<p><a href="%s">Exportar CSV</a> · <a href="%s">Exportar Excel</a></p></section>`,
		templ.EscapeString(d.exportQuery("csv")), templ.EscapeString(d.exportQuery("xlsx")))
	return err
}
