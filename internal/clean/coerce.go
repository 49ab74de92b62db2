package clean

import (
	"math"
	"strings"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/shopspring/decimal"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// CoerceInteger converts the named column to nullable integers. Values that are
// not integral numbers, or do not fit in an int64, become missing. It reports
// false when the column is absent.
func CoerceInteger(t *table.Table, name string) (converted, failed int, ok bool) {
	c := t.Column(name)
	if c == nil {
		return 0, 0, false
	}
	if c.Kind == table.Integer {
		return 0, 0, true
	}
	for i, v := range c.Values {
		if !v.Valid() {
			continue
		}
		var d decimal.Decimal
		if c.Kind == table.Numeric {
			d = v.Number()
		} else {
			raw, _ := c.Raw(i)
			parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				c.Values[i] = table.Missing()
				failed++
				continue
			}
			d = parsed
		}
		if !d.IsInteger() || d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
			c.Values[i] = table.Missing()
			failed++
			continue
		}
		c.Values[i] = table.IntegerValue(d.IntPart())
		converted++
	}
	c.Kind = table.Integer
	return converted, failed, true
}
