package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one parsed upload row keyed by normalized header.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the first non-empty value among the given header aliases.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.Values[normalizeHeader(key)]; ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

type Reader interface {
	Read(r io.Reader) ([]Record, error)
}

// ReaderForFormat picks the reader by file extension.
func ReaderForFormat(filename string) (Reader, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return &CSVReader{}, nil
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xlsm"), strings.HasSuffix(name, ".xls"):
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension for %s", filename)
	}
}

type CSVReader struct{}

func (cr *CSVReader) Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	normalized := normalizeHeaders(headers)

	records := make([]Record, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}

		records = append(records, recordFromRow(normalized, row, rowNumber+1))
		rowNumber++
	}

	return records, nil
}

type ExcelReader struct{}

func (er *ExcelReader) Read(r io.Reader) ([]Record, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel upload: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel upload has no sheets")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	normalized := normalizeHeaders(rows[0])

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, recordFromRow(normalized, row, i+2))
	}

	return records, nil
}

func recordFromRow(headers []string, row []string, rowNumber int) Record {
	values := make(map[string]string, len(headers))
	for i := range headers {
		if i < len(row) {
			values[headers[i]] = row[i]
		} else {
			values[headers[i]] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = normalizeHeader(h)
	}
	return out
}

var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a",
	"î", "i", "ï", "i",
	"ô", "o",
	"ù", "u", "û", "u",
	"ç", "c",
)

// normalizeHeader makes header matching tolerant to case, accents and
// spacing so "Visites annuelles" and "visites_annuelles" match. The first
// cell of a "CSV UTF-8" file saved from Excel carries a BOM, so that is
// stripped too.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = accentReplacer.Replace(h)
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}
