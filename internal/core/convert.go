package core

// convert.go provides tolerant conversion of export cells to numbers and dates.
//
// Marketplace exports are messy:
//   - Brazilian and US number formats (1.234,56 vs 1,234.56)
//   - Currency prefixes (R$, $, €, £) and accounting negatives "(12,00)"
//   - ISO, US and day-first dates, Portuguese month names, Excel serials
//   - Excel formula prefixes (="value")
//
// Nothing here returns an error: callers get ok=false (or zero) and decide.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// numericRegex validates that a string is a plain number after cleanup.
// Matches integers, decimals, and scientific notation.
// maxNumberExponent bounds the base-10 exponent ParseNumber accepts.
const maxNumberExponent = 20

var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would land more than this many years in the future are moved
// to the previous century.
var TwoDigitYearPivot = 20

var currencyMarks = []string{"R$", "BRL", "US$", "$", "€", "£"}

// Date layouts in the order they are tried. Month-first comes before
// day-first for ambiguous slash dates; day-first only catches what
// month-first rejects (day > 12).
var (
	isoLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006/01/02 15:04",
		"2006/01/02",
	}
	monthFirstLayouts = []string{
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 3:04 PM",
		"1/2/2006",
		"1-2-2006",
	}
	dayFirstLayouts = []string{
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"2/1/2006",
		"2-1-2006",
		"2.1.2006 15:04:05",
		"2.1.2006",
	}
	twoDigitYearLayouts = []string{
		"1/2/06", "2/1/06", "1-2-06", "2.1.06",
	}
	textLayouts = []string{
		"Jan 2, 2006", "2 Jan 2006", "20060102",
	}
)

// ptDateRegex matches Mercado Livre style dates:
// "15 de janeiro de 2024 10:30 hs." or "3 de mar. de 2024".
var ptDateRegex = regexp.MustCompile(`^(\d{1,2}) de ([a-zà-ú]+)\.? de (\d{4})(?:,?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?)?(?:\s*hs?\.?)?$`)

var ptMonths = map[string]time.Month{
	"janeiro": time.January, "jan": time.January,
	"fevereiro": time.February, "fev": time.February,
	"março": time.March, "marco": time.March, "mar": time.March,
	"abril": time.April, "abr": time.April,
	"maio": time.May, "mai": time.May,
	"junho": time.June, "jun": time.June,
	"julho": time.July, "jul": time.July,
	"agosto": time.August, "ago": time.August,
	"setembro": time.September, "set": time.September,
	"outubro": time.October, "out": time.October,
	"novembro": time.November, "nov": time.November,
	"dezembro": time.December, "dez": time.December,
}

// Excel serial numbers accepted as dates: 1900-01-01 through 9999-12-31.
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// ParseNumber converts a cell to a decimal.
// Handles currency symbols, thousands separators in both conventions, and
// accounting format (parentheses for negative).
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = CleanCell(s)
	if s == "" {
		return decimal.Zero, false
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, mark := range currencyMarks {
		s = strings.ReplaceAll(s, mark, "")
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)
	s = normalizeSeparators(s)

	if isNegative && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	// Rescaling a huge exponent allocates a power of ten of that size.
	if exp := d.Exponent(); exp > maxNumberExponent || exp < -maxNumberExponent {
		return decimal.Zero, false
	}
	return d, true
}

// CoerceNumber is ParseNumber with invalid or missing values mapped to zero.
func CoerceNumber(s string) decimal.Decimal {
	d, _ := ParseNumber(s)
	return d
}

// normalizeSeparators rewrites a number to use '.' as the only decimal mark.
//
// When both '.' and ',' appear, the rightmost one is the decimal mark. A lone
// comma is decimal unless it is followed by exactly three digits ("1,234");
// "0,500" stays decimal because of its zero integer part. Repeated dots
// without a comma are thousands separators ("1.234.567").
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")

	case lastComma >= 0:
		intPart := strings.TrimLeft(s[:lastComma], "+-")
		decimals := len(s) - lastComma - 1
		if strings.Count(s, ",") == 1 && (decimals != 3 || intPart == "0" || intPart == "") {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")

	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

// ParseDate converts a cell to a timestamp. Values without a zone are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = CleanCell(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, group := range [][]string{isoLayouts, monthFirstLayouts, dayFirstLayouts} {
		for _, layout := range group {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}

	// Two-digit years with pivot adjustment
	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if t, ok := parsePortugueseDate(s); ok {
		return t, true
	}

	return parseExcelSerial(s)
}

func parsePortugueseDate(s string) (time.Time, bool) {
	m := ptDateRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return time.Time{}, false
	}
	month, ok := ptMonths[m[2]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	sec, _ := strconv.Atoi(m[6])
	if day < 1 || day > 31 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, hour, minute, sec, 0, time.UTC)
	if t.Day() != day {
		// time.Date normalized an impossible day such as 31 de fevereiro
		return time.Time{}, false
	}
	return t, true
}

func parseExcelSerial(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < minExcelSerial || f > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}
