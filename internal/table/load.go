package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DefaultNAValues are the cell contents treated as missing on load.
var DefaultNAValues = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "null", "NULL",
	"None", "<NA>", "#N/A",
}

// ErrUnsupportedEncoding is returned for an unknown LoadOptions.Encoding.
var ErrUnsupportedEncoding = errors.New("unsupported input encoding")

// MissingInputError reports that the input dataset does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input dataset not found at %q: place the CSV file there or pass --input", e.Path)
}

// LoadOptions controls how a dataset file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// Encoding of delimited input: utf-8 (default), latin1, windows-1252.
	Encoding string
	// XLSX sheet selection; SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
	// NAValues lists cell contents read as missing. Nil means DefaultNAValues.
	NAValues []string
}

// Load reads the dataset at path into a Table. The first row is the header.
func Load(path string, opt LoadOptions) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	header, rows, err := readerFor(path).Read(path, opt)
	if err != nil {
		return nil, err
	}
	na := opt.NAValues
	if na == nil {
		na = DefaultNAValues
	}
	return build(filepath.Base(path), header, rows, na), nil
}

// Reader extracts the header and data records from a dataset file.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt LoadOptions) (header []string, rows [][]string, err error)
}

var (
	registry []Reader
	// fallback reads files no registered reader claims, whatever their extension.
	fallback Reader = delimitedReader{}
)

// Register adds a reader. Readers are tried in registration order.
func Register(r Reader) {
	registry = append(registry, r)
}

func readerFor(path string) Reader {
	for _, r := range registry {
		if r.CanRead(path) {
			return r
		}
	}
	return fallback
}

func init() {
	Register(xlsxReader{})
	Register(delimitedReader{})
}

type delimitedReader struct{}

func (delimitedReader) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (delimitedReader) Read(path string, opt LoadOptions) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	switch strings.ToLower(strings.TrimSpace(opt.Encoding)) {
	case "", "utf-8", "utf8":
	case "latin1", "latin-1", "iso-8859-1":
		src = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		src = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, opt.Encoding)
	}

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if len(rec) > len(header) {
			return nil, nil, fmt.Errorf("read row %d: %d fields, header has %d", len(rows)+1, len(rec), len(header))
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxReader) Read(path string, opt LoadOptions) ([]string, [][]string, error) {
	sheetName, sheetIndex := opt.SheetName, opt.SheetIndex
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	} else {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
		}
		target = sheets[idx-1]
	}
	all, err := f.GetRows(target)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	header := all[0]
	rows := all[1:]
	for i, rec := range rows {
		if len(rec) > len(header) {
			return nil, nil, fmt.Errorf("read row %d: %d fields, header has %d", i+1, len(rec), len(header))
		}
	}
	return header, rows, nil
}

// build turns raw records into typed columns. A column is numeric when every
// non-missing cell parses as a number, including a column with no values at all.
func build(name string, header []string, rows [][]string, na []string) *Table {
	isNA := make(map[string]struct{}, len(na))
	for _, s := range na {
		isNA[s] = struct{}{}
	}
	t := &Table{Name: name}
	for j, h := range header {
		col := &Column{Name: h, Kind: Text, Values: make([]Value, len(rows))}
		numeric := true
		nums := make([]decimal.Decimal, len(rows))
		for i, rec := range rows {
			if j >= len(rec) {
				continue
			}
			cell := rec[j]
			if _, ok := isNA[cell]; ok {
				continue
			}
			col.Values[i] = TextValue(cell)
			if numeric {
				d, err := decimal.NewFromString(strings.TrimSpace(cell))
				if err != nil {
					numeric = false
					continue
				}
				nums[i] = d
			}
		}
		if numeric && len(rows) > 0 {
			col.Kind = Numeric
			for i, v := range col.Values {
				if v.valid {
					col.Values[i] = NumberValue(nums[i])
				}
			}
		}
		t.Columns = append(t.Columns, col)
	}
	return t
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
