package core

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var exportRecords = []SummaryRecord{
	{Platform: Shopee, SKU: "A1", TotalQuantity: 3, TotalValue: decimal.RequireFromString("30")},
	{Platform: MercadoLivre, SKU: "B2, azul", TotalQuantity: 5, TotalValue: decimal.RequireFromString("50.456")},
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, exportRecords); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}

	want := "Plataforma,SKU,Quantidade,Valor total\n" +
		"Shopee,A1,3,30.00\n" +
		"Mercado Livre,\"B2, azul\",5,50.46\n"
	if got := buf.String(); got != want {
		t.Errorf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteSummaryCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, nil); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}
	if got := buf.String(); got != "Plataforma,SKU,Quantidade,Valor total\n" {
		t.Errorf("csv = %q, want header only", got)
	}
}

func TestWriteSummaryXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryXLSX(&buf, exportRecords); err != nil {
		t.Fatalf("WriteSummaryXLSX: %v", err)
	}

	data := buf.Bytes()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != ExportSheet {
		t.Fatalf("sheets = %q, want [%s]", sheets, ExportSheet)
	}

	rows, err := f.GetRows(ExportSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Plataforma" || rows[0][3] != "Valor total" {
		t.Errorf("header = %q", rows[0])
	}
	if rows[2][0] != "Mercado Livre" || rows[2][1] != "B2, azul" || rows[2][2] != "5" {
		t.Errorf("row 2 = %q", rows[2])
	}

	// The sheet round-trips through the upload decoder.
	tbl, err := LoadTable(data, "resumo.xlsx")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("LoadTable rows = %d, want 2", tbl.Len())
	}
}
