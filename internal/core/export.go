package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name used by WriteSummaryXLSX.
const ExportSheet = "Resumo"

var exportHeader = []string{"Plataforma", "SKU", "Quantidade", "Valor total"}

// WriteSummaryCSV writes records as comma separated text with a header row.
// Values keep two decimal places.
func WriteSummaryCSV(w io.Writer, records []SummaryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Platform.DisplayName(),
			r.SKU,
			strconv.FormatInt(r.TotalQuantity, 10),
			r.TotalValue.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryXLSX writes records to a single-sheet workbook. Quantities and
// values are stored as numbers so the sheet can be summed directly.
func WriteSummaryXLSX(w io.Writer, records []SummaryRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		value, _ := r.TotalValue.Float64()
		row := []any{r.Platform.DisplayName(), r.SKU, r.TotalQuantity, value}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(records) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return fmt.Errorf("create style: %w", err)
		}
		last := fmt.Sprintf("D%d", len(records)+1)
		if err := f.SetCellStyle(ExportSheet, "D2", last, style); err != nil {
			return fmt.Errorf("style values: %w", err)
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "B", 20); err != nil {
		return err
	}
	return f.Write(w)
}
