package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	errEmptyFile     = errors.New("empty file")
	errBinaryContent = errors.New("binary content is not delimited text")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeDelimited reads CSV-like text. Non-UTF-8 input is assumed to be
// Windows-1252, the usual encoding of spreadsheet "Save as CSV" on Windows.
func decodeDelimited(data []byte, filename string) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyFile
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errBinaryContent
	}

	text, err := toUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text, filename)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errEmptyFile
	}
	return NewTable(records[0], records[1:]), nil
}

func toUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	return charmap.Windows1252.NewDecoder().Bytes(data)
}

// sniffDelimiter picks the separator for a delimited file. ".tsv" files are
// tab separated; otherwise the most frequent of ',', ';' and '\t' outside
// quotes on the header line wins, with ties going to the comma.
func sniffDelimiter(text []byte, filename string) rune {
	if strings.EqualFold(filepath.Ext(filename), ".tsv") {
		return '\t'
	}

	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}

	counts := map[rune]int{}
	inQuotes := false
	for _, c := range string(line) {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && (c == ',' || c == ';' || c == '\t'):
			counts[c]++
		}
	}

	best := ','
	for _, c := range []rune{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
