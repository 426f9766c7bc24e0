package core

// ColumnKind is the inferred type of a column's values.
type ColumnKind string

const (
	KindEmpty    ColumnKind = "empty"
	KindInteger  ColumnKind = "integer"
	KindNumber   ColumnKind = "number"
	KindDateTime ColumnKind = "datetime"
	KindText     ColumnKind = "text"
)

// TableProfile is the general shape of a decoded file.
type TableProfile struct {
	Rows    int                   `json:"num_rows"`
	Columns int                   `json:"num_columns"`
	Names   []string              `json:"columns"`
	Kinds   map[string]ColumnKind `json:"dtypes"`
}

// ProfileTable counts rows and columns and infers each column's kind.
func ProfileTable(t *Table) TableProfile {
	if t == nil {
		return TableProfile{Names: []string{}, Kinds: map[string]ColumnKind{}}
	}
	p := TableProfile{
		Rows:    t.Len(),
		Columns: len(t.Columns),
		Names:   append([]string{}, t.Columns...),
		Kinds:   make(map[string]ColumnKind, len(t.Columns)),
	}
	for i, col := range t.Columns {
		p.Kinds[col] = inferKind(t, i)
	}
	return p
}

// inferKind checks numbers before dates: Excel serials parse as both.
func inferKind(t *Table, idx int) ColumnKind {
	seen, ints, nums, dates := 0, 0, 0, 0
	for _, row := range t.Rows {
		cell := row[idx]
		if cell == "" {
			continue
		}
		seen++
		if d, ok := ParseNumber(cell); ok {
			nums++
			if d.IsInteger() {
				ints++
			}
			continue
		}
		if _, ok := ParseDate(cell); ok {
			dates++
		}
	}

	switch {
	case seen == 0:
		return KindEmpty
	case ints == seen:
		return KindInteger
	case nums == seen:
		return KindNumber
	case dates+nums == seen && dates > 0:
		return KindDateTime
	default:
		return KindText
	}
}
