package core

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Table is a decoded export: named columns and string cells.
// Every row has exactly len(Columns) cells; an empty cell is missing.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a Table from a header row and data records.
//
// Blank header cells are named "Unnamed: N" and repeated names get ".1",
// ".2" suffixes so every column is addressable. Records are padded or
// truncated to the header width and fully blank records are skipped.
func NewTable(header []string, records [][]string) *Table {
	t := &Table{Columns: uniqueColumns(header)}
	width := len(t.Columns)

	for _, rec := range records {
		if isEmptyRow(rec) {
			continue
		}
		row := make([]string, width)
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1.
//
// Names are compared exactly first. If that fails they are compared after
// NFC normalization, so "Número" typed with a combining accent still matches.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	want := norm.NFC.String(name)
	for i, c := range t.Columns {
		if norm.NFC.String(c) == want {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Preview returns up to n rows keyed by column name. Missing cells are nil
// so they encode as JSON null.
func (t *Table) Preview(n int) []map[string]any {
	if t == nil || n <= 0 {
		return []map[string]any{}
	}
	if n > t.Len() {
		n = t.Len()
	}
	out := make([]map[string]any, 0, n)
	for _, row := range t.Rows[:n] {
		m := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if row[i] == "" {
				m[col] = nil
			} else {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

func uniqueColumns(header []string) []string {
	cols := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = base + "." + strconv.Itoa(n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		cols[i] = name
	}
	return cols
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
