package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// WriteCSV renders the dataset as a comma-separated payload with the header
// row first.
func WriteCSV(ds Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for i, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+2, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
