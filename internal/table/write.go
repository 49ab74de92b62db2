package table

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/KaramelBytes/dataprep-cli/internal/utils"
)

// DefaultDateLayout renders dates as dd-mm-yyyy.
const DefaultDateLayout = "02-01-2006"

// WriteOptions controls serialization of a Table.
type WriteOptions struct {
	// Delimiter for CSV; 0 means ','.
	Delimiter rune
	// DateLayout for date columns; empty means DefaultDateLayout.
	DateLayout string
	// NullMarker is written for missing cells.
	NullMarker string
}

// Encode renders t as delimited text: a header row then one line per row.
func Encode(t *Table, opt WriteOptions) ([]byte, error) {
	layout := opt.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	if err := w.Write(t.Names()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for i := 0; i < t.Rows(); i++ {
		for j, c := range t.Columns {
			rec[j] = c.Format(i, layout, opt.NullMarker)
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV serializes t to path, replacing any existing file.
func WriteCSV(path string, t *Table, opt WriteOptions) error {
	b, err := Encode(t, opt)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
