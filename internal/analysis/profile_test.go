package analysis

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nums(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = decimal.RequireFromString(s)
	}
	return out
}

func TestMedian(t *testing.T) {
	_, ok := Median(nil)
	assert.False(t, ok)

	m, ok := Median(nums("3", "1", "2"))
	require.True(t, ok)
	assert.Equal(t, "2", m.String())

	m, _ = Median(nums("4", "1", "3", "2"))
	assert.Equal(t, "2.5", m.String())

	in := nums("9", "1")
	Median(in)
	assert.Equal(t, "9", in[0].String(), "input must not be reordered")
}

func TestProfileAndTopMissing(t *testing.T) {
	tbl, err := table.New("titles.csv",
		&table.Column{Name: "title", Kind: table.Text, Values: []table.Value{table.TextValue("A"), table.TextValue("B"), table.TextValue("C")}},
		&table.Column{Name: "director", Kind: table.Text, Values: []table.Value{table.Missing(), table.Missing(), table.TextValue("X")}},
		&table.Column{Name: "cast", Kind: table.Text, Values: []table.Value{table.Missing(), table.TextValue("Y"), table.TextValue("Z")}},
		&table.Column{Name: "budget", Kind: table.Numeric, Values: []table.Value{
			table.NumberValue(decimal.NewFromInt(5)), table.Missing(), table.NumberValue(decimal.NewFromInt(1)),
		}},
	)
	require.NoError(t, err)

	p := ProfileTable(tbl)
	assert.Equal(t, 3, p.Rows)
	require.Len(t, p.Cols, 4)
	assert.Equal(t, "1", p.Cols[3].Min.String())
	assert.Equal(t, "5", p.Cols[3].Max.String())
	assert.Equal(t, "3", p.Cols[3].Median.String())

	top := p.TopMissing(3)
	assert.Equal(t, []MissingCount{{"director", 2}, {"cast", 1}, {"budget", 1}}, top)
	assert.Len(t, p.TopMissing(0), 4)

	listing := FormatMissing(top)
	assert.Equal(t, "director  2\ncast      1\nbudget    1\n", listing)

	md := p.Markdown()
	assert.True(t, strings.HasPrefix(md, "[DATASET SUMMARY]\nFile: titles.csv\nRows: 3\nColumns: 4\n"))
	assert.Contains(t, md, "- budget: numeric (non-null 2, missing 33.3%) — min 1, median 3, max 5")
}
