package clean

import (
	"strings"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
)

// SanitizeText trims surrounding whitespace from every value of every text
// column and returns how many values changed. Missing values stay missing.
func SanitizeText(t *table.Table) int {
	changed := 0
	for _, c := range t.Columns {
		if c.Kind != table.Text {
			continue
		}
		for i, v := range c.Values {
			if !v.Valid() {
				continue
			}
			s := strings.TrimSpace(v.Text())
			if s != v.Text() {
				c.Values[i] = table.TextValue(s)
				changed++
			}
		}
	}
	return changed
}
