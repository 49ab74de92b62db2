package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the declared semantic type of a column.
type Kind uint8

const (
	Text Kind = iota
	Numeric
	Date
	Integer
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	case Integer:
		return "integer"
	default:
		return "unknown"
	}
}

// Value is a single optional cell. The zero Value is missing.
// Which payload field is meaningful depends on the owning column's Kind.
type Value struct {
	valid bool
	text  string
	num   decimal.Decimal
	i     int64
	t     time.Time
}

// Missing returns a missing value.
func Missing() Value { return Value{} }

func TextValue(s string) Value { return Value{valid: true, text: s} }
func NumberValue(d decimal.Decimal) Value { return Value{valid: true, num: d} }
func IntegerValue(i int64) Value { return Value{valid: true, i: i} }
func DateValue(t time.Time) Value { return Value{valid: true, t: t} }
func (v Value) Valid() bool { return v.valid }
func (v Value) Text() string { return v.text }
func (v Value) Number() decimal.Decimal { return v.num }
func (v Value) Integer() int64 { return v.i }
func (v Value) Time() time.Time { return v.t }

// Column is a named, typed sequence of values.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Format renders value i for serialization. Missing values render as null.
func (c *Column) Format(i int, dateLayout, null string) string {
	v := c.Values[i]
	if !v.valid {
		return null
	}
	switch c.Kind {
	case Numeric:
		return v.num.String()
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Date:
		return v.t.Format(dateLayout)
	default:
		return v.text
	}
}

// Raw returns the textual form of value i regardless of kind, for reparsing.
// Dates use ISO layout so they survive a round trip through a permissive parser.
func (c *Column) Raw(i int) (string, bool) {
	v := c.Values[i]
	if !v.valid {
		return "", false
	}
	switch c.Kind {
	case Numeric:
		return v.num.String(), true
	case Integer:
		return strconv.FormatInt(v.i, 10), true
	case Date:
		return v.t.Format("2006-01-02"), true
	default:
		return v.text, true
	}
}

// Missing counts missing values in the column.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if !v.valid {
			n++
		}
	}
	return n
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	Name    string
	Columns []*Column
}

// New builds a table from columns, checking that all have the same length.
func New(name string, cols ...*Column) (*Table, error) {
	t := &Table{Name: name}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Rows returns the row count.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Index returns the position of the named column or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column or nil.
func (t *Table) Column(name string) *Column {
	if i := t.Index(name); i >= 0 {
		return t.Columns[i]
	}
	return nil
}

// Has reports whether the named column is present.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Names returns column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// AddColumn appends c, or replaces the existing column with the same name in place.
func (t *Table) AddColumn(c *Column) error {
	if len(t.Columns) > 0 && len(c.Values) != t.Rows() {
		return fmt.Errorf("column %q has %d values, table has %d rows", c.Name, len(c.Values), t.Rows())
	}
	if i := t.Index(c.Name); i >= 0 {
		t.Columns[i] = c
		return nil
	}
	t.Columns = append(t.Columns, c)
	return nil
}

// Keep retains the rows whose flag is true, preserving order.
func (t *Table) Keep(keep []bool) {
	for _, c := range t.Columns {
		out := c.Values[:0]
		for i, v := range c.Values {
			if keep[i] {
				out = append(out, v)
			}
		}
		c.Values = out
	}
}

// RowMissing reports whether every column of row i is missing.
func (t *Table) RowMissing(i int) bool {
	for _, c := range t.Columns {
		if c.Values[i].valid {
			return false
		}
	}
	return true
}
