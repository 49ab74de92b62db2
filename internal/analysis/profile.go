package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/shopspring/decimal"
)

// Profile is a per-column summary of a Table.
type Profile struct {
	Name string
	Rows int
	Cols []ColumnSummary
}

// ColumnSummary captures type and missingness per column.
type ColumnSummary struct {
	Name    string
	Kind    string
	NonNull int
	Missing int
	// Numeric stats, set when Kind is numeric and NonNull > 0
	Min    decimal.Decimal
	Max    decimal.Decimal
	Median decimal.Decimal
}

// MissingCount pairs a column with its missing-value count.
type MissingCount struct {
	Column string
	Count  int
}

// ProfileTable computes a Profile. It does not modify t.
func ProfileTable(t *table.Table) *Profile {
	p := &Profile{Name: t.Name, Rows: t.Rows(), Cols: make([]ColumnSummary, 0, len(t.Columns))}
	for _, c := range t.Columns {
		s := ColumnSummary{Name: c.Name, Kind: c.Kind.String(), Missing: c.Missing()}
		s.NonNull = len(c.Values) - s.Missing
		if c.Kind == table.Numeric && s.NonNull > 0 {
			nums := Numbers(c)
			s.Min, s.Max = nums[0], nums[0]
			for _, d := range nums[1:] {
				if d.LessThan(s.Min) {
					s.Min = d
				}
				if d.GreaterThan(s.Max) {
					s.Max = d
				}
			}
			s.Median, _ = Median(nums)
		}
		p.Cols = append(p.Cols, s)
	}
	return p
}

// TopMissing returns up to n columns ordered by missing count, descending.
// Ties keep column order. n <= 0 returns every column.
func (p *Profile) TopMissing(n int) []MissingCount {
	out := make([]MissingCount, len(p.Cols))
	for i, c := range p.Cols {
		out[i] = MissingCount{Column: c.Name, Count: c.Missing}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FormatMissing renders counts as aligned "name  count" lines.
func FormatMissing(counts []MissingCount) string {
	width := 0
	for _, c := range counts {
		if len(c.Column) > width {
			width = len(c.Column)
		}
	}
	var b strings.Builder
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("%-*s  %d\n", width, c.Column, c.Count))
	}
	return b.String()
}

// Markdown renders a compact report of the profile.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", p.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", p.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(p.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Cols {
		missPct := 0.0
		if total := c.NonNull + c.Missing; total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		if c.Kind == "numeric" && c.NonNull > 0 {
			b.WriteString(fmt.Sprintf(" — min %s, median %s, max %s", c.Min, c.Median, c.Max))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Numbers returns the non-missing values of a numeric column.
func Numbers(c *table.Column) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Valid() {
			out = append(out, v.Number())
		}
	}
	return out
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
