package clean

import (
	"github.com/KaramelBytes/dataprep-cli/internal/analysis"
	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/shopspring/decimal"
)

// DefaultSentinel replaces missing text.
const DefaultSentinel = "Unknown"

// Imputation records what Impute changed.
type Imputation struct {
	// Filled counts replaced values per column.
	Filled map[string]int
	// Medians holds the fill value used per numeric column.
	Medians map[string]decimal.Decimal
	// Skipped lists numeric candidates that are present but not numeric, or have no values.
	Skipped []string
}

// Impute fills missing values of the listed columns that exist in t: text
// columns with sentinel, numeric columns with their median. Absent columns are ignored.
func Impute(t *table.Table, textCols, numericCols []string, sentinel string) Imputation {
	res := Imputation{Filled: map[string]int{}, Medians: map[string]decimal.Decimal{}}
	for _, name := range textCols {
		c := t.Column(name)
		if c == nil {
			continue
		}
		if c.Kind != table.Text {
			toText(c)
		}
		n := 0
		for i, v := range c.Values {
			if !v.Valid() {
				c.Values[i] = table.TextValue(sentinel)
				n++
			}
		}
		res.Filled[name] = n
	}
	for _, name := range numericCols {
		c := t.Column(name)
		if c == nil {
			continue
		}
		if c.Kind != table.Numeric {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		med, ok := analysis.Median(analysis.Numbers(c))
		if !ok {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		n := 0
		for i, v := range c.Values {
			if !v.Valid() {
				c.Values[i] = table.NumberValue(med)
				n++
			}
		}
		res.Filled[name] = n
		res.Medians[name] = med
	}
	return res
}

// toText converts c to a text column, keeping missing values missing.
func toText(c *table.Column) {
	for i := range c.Values {
		if s, ok := c.Raw(i); ok {
			c.Values[i] = table.TextValue(s)
		}
	}
	c.Kind = table.Text
}
