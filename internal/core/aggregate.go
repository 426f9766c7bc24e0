package core

import "github.com/shopspring/decimal"

// SummaryRecord is the aggregated sales of one SKU on one platform.
type SummaryRecord struct {
	Platform      Platform        `json:"platform"`
	SKU           string          `json:"sku"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// Aggregate sums quantity and value per (platform, SKU).
//
// SKUs are grouped by exact string match. Quantity totals are truncated
// toward zero; value totals keep their fractional part. Records come out in
// registry platform order, and within a platform in order of first
// appearance. Unrecognized rows are ignored.
func Aggregate(rows []SaleRow) []SummaryRecord {
	type key struct {
		platform Platform
		sku      string
	}
	type totals struct {
		quantity decimal.Decimal
		value    decimal.Decimal
	}

	groups := make(map[key]*totals)
	order := make(map[Platform][]string)

	for _, r := range rows {
		if !r.Platform.IsRecognized() {
			continue
		}
		k := key{r.Platform, r.SKU}
		g, ok := groups[k]
		if !ok {
			g = &totals{}
			groups[k] = g
			order[r.Platform] = append(order[r.Platform], r.SKU)
		}
		g.quantity = g.quantity.Add(r.Quantity)
		g.value = g.value.Add(r.Value)
	}

	records := make([]SummaryRecord, 0, len(groups))
	for _, p := range Platforms() {
		for _, sku := range order[p] {
			g := groups[key{p, sku}]
			records = append(records, SummaryRecord{
				Platform:      p,
				SKU:           sku,
				TotalQuantity: g.quantity.IntPart(),
				TotalValue:    g.value,
			})
		}
	}
	return records
}
