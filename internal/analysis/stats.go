package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Median returns the median of vals and false when vals is empty.
// For an even count it is the mean of the two middle values.
func Median(vals []decimal.Decimal) (decimal.Decimal, bool) {
	if len(vals) == 0 {
		return decimal.Zero, false
	}
	cp := make([]decimal.Decimal, len(vals))
	copy(cp, vals)
	sort.Slice(cp, func(i, j int) bool { return cp[i].LessThan(cp[j]) })
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid], true
	}
	return cp[mid-1].Add(cp[mid]).Div(two), true
}
