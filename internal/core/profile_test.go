package core

import "testing"

func TestProfileTable(t *testing.T) {
	tbl := NewTable(
		[]string{"SKU", "Qtd", "Valor", "Data", "Vazia", "Misto"},
		[][]string{
			{"A1", "3", "10,50", "2024-01-10", "", "1"},
			{"A2", "1", "7", "15/01/2024", "", "x"},
			{"A3", "", "1.234,00", "45306", "", "2"},
		},
	)

	p := ProfileTable(tbl)
	if p.Rows != 3 || p.Columns != 6 {
		t.Errorf("shape = %dx%d, want 3x6", p.Rows, p.Columns)
	}
	if len(p.Names) != 6 || p.Names[0] != "SKU" {
		t.Errorf("Names = %q", p.Names)
	}

	want := map[string]ColumnKind{
		"SKU":   KindText,
		"Qtd":   KindInteger,
		"Valor": KindNumber,
		"Data":  KindDateTime,
		"Vazia": KindEmpty,
		"Misto": KindText,
	}
	for col, kind := range want {
		if got := p.Kinds[col]; got != kind {
			t.Errorf("Kinds[%q] = %q, want %q", col, got, kind)
		}
	}
}

func TestProfileTable_Nil(t *testing.T) {
	p := ProfileTable(nil)
	if p.Rows != 0 || p.Columns != 0 || p.Names == nil || p.Kinds == nil {
		t.Errorf("ProfileTable(nil) = %+v, want empty non-nil profile", p)
	}
}
