package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Messages shown to sellers. The product is used in Brazil, so these stay
// in Portuguese.
const (
	AdvisoryUnrecognized   = "Plataforma não reconhecida ou não suportada."
	AdvisoryMissingColumns = "Colunas principais não encontradas para esta plataforma."
	NoDataMessage          = "Nenhum dado encontrado."

	noSummaryDescription = "Plataforma não reconhecida ou sem resumo."
)

// PlatformSummary holds totals for a single uploaded file.
//
// Totals are only computed when the platform is recognized and enough schema
// columns are present; otherwise Advisory explains why they are missing.
// TotalItems or TotalValue stay nil when their own column is absent.
type PlatformSummary struct {
	Platform     Platform         `json:"platform"`
	Rows         int              `json:"rows"`
	TotalItems   *int64           `json:"total_items,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	ColumnsFound []string         `json:"columns_found,omitempty"`
	Advisory     string           `json:"advisory,omitempty"`
}

// SummarizeSingle computes file-level totals. No date or cancellation
// filtering is applied and SKUs are not grouped.
func SummarizeSingle(t *Table, p Platform) PlatformSummary {
	s := PlatformSummary{Platform: p, Rows: t.Len()}

	schema, ok := SchemaFor(p)
	if !ok {
		s.Advisory = AdvisoryUnrecognized
		return s
	}

	cols := schema.resolve(t)
	if !cols.sufficient() {
		s.Advisory = AdvisoryMissingColumns
		return s
	}
	s.ColumnsFound = cols.found

	if cols.has(FieldQuantity) {
		items := sumColumn(t, cols.index[FieldQuantity]).IntPart()
		s.TotalItems = &items
	}
	if cols.has(FieldValue) {
		value := sumColumn(t, cols.index[FieldValue])
		s.TotalValue = &value
	}
	return s
}

func sumColumn(t *Table, idx int) decimal.Decimal {
	total := decimal.Zero
	for _, row := range t.Rows {
		total = total.Add(CoerceNumber(row[idx]))
	}
	return total
}

// Describe renders the one-line description of a file summary.
// Recognized platforms always get their template, with missing totals as 0.
func Describe(s PlatformSummary) string {
	var items int64
	if s.TotalItems != nil {
		items = *s.TotalItems
	}
	value := decimal.Zero
	if s.TotalValue != nil {
		value = *s.TotalValue
	}

	switch s.Platform {
	case MercadoLivre:
		return fmt.Sprintf("Mercado Livre: %d vendas, %d unidades, valor total R$ %s",
			s.Rows, items, value.StringFixed(2))
	case Shopee, TikTok, Shein:
		return fmt.Sprintf("%s: %d pedidos, %d itens, valor total R$ %s",
			s.Platform.DisplayName(), s.Rows, items, value.StringFixed(2))
	default:
		return noSummaryDescription
	}
}
