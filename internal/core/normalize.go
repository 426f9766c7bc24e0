package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SaleRow is one export line reduced to the canonical fields.
type SaleRow struct {
	Platform Platform
	SKU      string
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

// NormalizeAndFilter reduces a platform export to sale rows.
//
// The table contributes nothing when the platform is Unrecognized, when
// fewer than MinColumnsPresent schema columns exist, or when the sku,
// quantity or value column is missing. Otherwise rows are dropped when:
//   - a bound is set and the date is missing, unparseable or outside r
//   - the status contains "cancel" in any casing
//   - the SKU cell is empty
//
// A missing date or status column disables that filter. Quantity and value
// are coerced with CoerceNumber.
func NormalizeAndFilter(t *Table, p Platform, r DateRange) []SaleRow {
	schema, ok := SchemaFor(p)
	if !ok || t == nil {
		return nil
	}

	cols := schema.resolve(t)
	if !cols.sufficient() || !cols.has(FieldSKU) || !cols.has(FieldQuantity) || !cols.has(FieldValue) {
		return nil
	}

	skuIdx := cols.index[FieldSKU]
	qtyIdx := cols.index[FieldQuantity]
	valIdx := cols.index[FieldValue]
	dateIdx := cols.index[FieldDate]
	statusIdx := cols.index[FieldStatus]
	filterDates := dateIdx >= 0 && r.Bounded()

	rows := make([]SaleRow, 0, t.Len())
	for _, rec := range t.Rows {
		if filterDates {
			ts, ok := ParseDate(rec[dateIdx])
			if !ok || !r.Contains(ts) {
				continue
			}
		}
		if statusIdx >= 0 && IsCancelled(rec[statusIdx]) {
			continue
		}
		if rec[skuIdx] == "" {
			continue
		}

		rows = append(rows, SaleRow{
			Platform: p,
			SKU:      rec[skuIdx],
			Quantity: CoerceNumber(rec[qtyIdx]),
			Value:    CoerceNumber(rec[valIdx]),
		})
	}
	return rows
}

// IsCancelled reports whether an order status marks a cancelled order.
func IsCancelled(status string) bool {
	return strings.Contains(strings.ToLower(status), "cancel")
}
