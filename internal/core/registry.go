package core

import "slices"

// Field is a canonical column role shared by every platform.
type Field int

const (
	FieldSKU Field = iota
	FieldQuantity
	FieldValue
	FieldStatus
	FieldDate

	fieldCount
)

// String returns the canonical field name.
func (f Field) String() string {
	switch f {
	case FieldSKU:
		return "sku"
	case FieldQuantity:
		return "quantity"
	case FieldValue:
		return "value"
	case FieldStatus:
		return "status"
	case FieldDate:
		return "date"
	default:
		return "unknown"
	}
}

// MinColumnsPresent is how many of a platform's expected columns a table must
// contain before it is treated as that platform's export.
const MinColumnsPresent = 4

// PlatformSchema maps the canonical fields to one platform's source columns.
type PlatformSchema struct {
	Platform Platform
	columns  [fieldCount]string
}

// Column returns the source column name for a canonical field.
func (s PlatformSchema) Column(f Field) string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return s.columns[f]
}

// Expected returns the source column names in canonical field order.
func (s PlatformSchema) Expected() []string {
	return slices.Clone(s.columns[:])
}

// schemas is ordered: summary output follows this order.
var schemas = []PlatformSchema{
	{
		Platform: Shopee,
		columns: [fieldCount]string{
			FieldSKU:      "Número de referência SKU",
			FieldQuantity: "Quantidade",
			FieldValue:    "Subtotal do produto",
			FieldStatus:   "Status do pedido",
			FieldDate:     "Hora do pagamento do pedido",
		},
	},
	{
		Platform: MercadoLivre,
		columns: [fieldCount]string{
			FieldSKU:      "SKU",
			FieldQuantity: "Unidades",
			FieldValue:    "Total (BRL)",
			FieldStatus:   "Status",
			FieldDate:     "Data da venda",
		},
	},
	{
		Platform: TikTok,
		columns: [fieldCount]string{
			FieldSKU:      "Seller sku input by the seller in the product system.",
			FieldQuantity: "SKU sold quantity in the order.",
			FieldValue:    "It equals SKU Subtotal Before Discount - SKU Platform Discount - SKU Seller Discount.",
			FieldStatus:   "Order status",
			FieldDate:     "Order paid time.",
		},
	},
	{
		Platform: Shein,
		columns: [fieldCount]string{
			FieldSKU:      "SKU do vendedor",
			FieldQuantity: "Quantidade",
			FieldValue:    "Receita estimada de mercadorias",
			FieldStatus:   "Status do pedido",
			FieldDate:     "Data e hora de criação do pedido",
		},
	},
}

// SchemaFor returns the schema of a recognized platform.
// Returns false for Unrecognized.
func SchemaFor(p Platform) (PlatformSchema, bool) {
	for _, s := range schemas {
		if s.Platform == p {
			return s, true
		}
	}
	return PlatformSchema{}, false
}

// Schemas returns every platform schema in registry order.
func Schemas() []PlatformSchema {
	return slices.Clone(schemas)
}

// Platforms returns the recognized platforms in registry order.
func Platforms() []Platform {
	out := make([]Platform, len(schemas))
	for i, s := range schemas {
		out[i] = s.Platform
	}
	return out
}

// columnSet is the result of resolving a schema against a table header.
type columnSet struct {
	index   [fieldCount]int
	found   []string
	present int
}

// resolve locates each schema column in t. Missing columns get index -1.
func (s PlatformSchema) resolve(t *Table) columnSet {
	var cs columnSet
	for f := Field(0); f < fieldCount; f++ {
		idx := t.ColumnIndex(s.columns[f])
		cs.index[f] = idx
		if idx >= 0 {
			cs.present++
			cs.found = append(cs.found, t.Columns[idx])
		}
	}
	return cs
}

func (cs columnSet) sufficient() bool {
	return cs.present >= MinColumnsPresent
}

func (cs columnSet) has(f Field) bool {
	return cs.index[f] >= 0
}
