package core

// loader.go decodes raw export bytes into a Table.
//
// Decoders are tried in order and the first success wins:
//  1. spreadsheet (xlsx family, via excelize)
//  2. delimited text (CSV, semicolon or tab separated)
//
// If every decoder fails, LoadTable returns a *DecodeError listing each
// attempt.

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// decoder is one attempt at turning bytes into a table.
type decoder struct {
	name   string
	decode func(data []byte, filename string) (*Table, error)
}

var decoders = []decoder{
	{name: "spreadsheet", decode: decodeSpreadsheet},
	{name: "delimited", decode: decodeDelimited},
}

// DecodeError reports that no decoder could read a file.
type DecodeError struct {
	FileName string
	Attempts []error
}

func (e *DecodeError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("could not decode %q as spreadsheet or delimited text (%s)",
		e.FileName, strings.Join(parts, "; "))
}

// Unwrap exposes the individual decoder failures to errors.Is / errors.As.
func (e *DecodeError) Unwrap() []error {
	return e.Attempts
}

// LoadTable decodes data into a Table. The filename is used for error
// messages and as a delimiter hint (".tsv").
func LoadTable(data []byte, filename string) (*Table, error) {
	attempts := make([]error, 0, len(decoders))
	for _, d := range decoders {
		t, err := d.decode(data, filename)
		if err == nil {
			return t, nil
		}
		attempts = append(attempts, fmt.Errorf("%s: %w", d.name, err))
	}
	return nil, &DecodeError{FileName: filename, Attempts: attempts}
}

var errNoSheets = errors.New("workbook has no sheets")

// decodeSpreadsheet reads the first worksheet. Cells are read raw so numbers
// keep full precision and dates arrive as Excel serial numbers.
func decodeSpreadsheet(data []byte, _ string) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return NewTable(nil, nil), nil
	}
	return NewTable(rows[0], rows[1:]), nil
}
