package clean

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
)

// Dedupe removes rows identical to an earlier row, keeping the first, and then
// rows where every column is missing. Surviving rows keep their order.
func Dedupe(t *table.Table) (duplicates, empty int) {
	rows := t.Rows()
	keep := make([]bool, rows)
	seen := make(map[string]struct{}, rows)
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.Reset()
		for _, c := range t.Columns {
			// length-prefixed so distinct rows never share a key
			if s, ok := c.Raw(i); ok {
				b.WriteString(strconv.Itoa(len(s)))
				b.WriteByte(':')
				b.WriteString(s)
			} else {
				b.WriteByte('-')
			}
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		if t.RowMissing(i) {
			empty++
			continue
		}
		keep[i] = true
	}
	if duplicates+empty > 0 {
		t.Keep(keep)
	}
	return duplicates, empty
}
