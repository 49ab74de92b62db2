package clean

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/shopspring/decimal"
)

// DeriveDifference sets column out to minuend - subtrahend row by row. A missing
// or non-numeric input yields a missing result. It reports false, with a reason,
// when either input column is absent.
func DeriveDifference(t *table.Table, minuend, subtrahend, out string) (bool, string, error) {
	a, b := t.Column(minuend), t.Column(subtrahend)
	if a == nil || b == nil {
		return false, fmt.Sprintf("columns %q and %q not both present", minuend, subtrahend), nil
	}
	col := &table.Column{Name: out, Kind: table.Numeric, Values: make([]table.Value, t.Rows())}
	for i := range col.Values {
		x, okx := numberAt(a, i)
		y, oky := numberAt(b, i)
		if okx && oky {
			col.Values[i] = table.NumberValue(x.Sub(y))
		}
	}
	if err := t.AddColumn(col); err != nil {
		return false, "", fmt.Errorf("add %s column: %w", out, err)
	}
	return true, "", nil
}

// numberAt reads value i of c as a number. Text is parsed; dates never are.
func numberAt(c *table.Column, i int) (decimal.Decimal, bool) {
	v := c.Values[i]
	if !v.Valid() {
		return decimal.Zero, false
	}
	switch c.Kind {
	case table.Numeric:
		return v.Number(), true
	case table.Integer:
		return decimal.NewFromInt(v.Integer()), true
	case table.Text:
		d, err := decimal.NewFromString(strings.TrimSpace(v.Text()))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
