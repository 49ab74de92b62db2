package clean

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
)

var nameReplacer = strings.NewReplacer(" ", "_", "-", "_")

// CanonicalName trims s, lowercases it, and maps spaces and hyphens to underscores.
func CanonicalName(s string) string {
	return nameReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeSchema canonicalizes every column name in place and returns how many changed.
// Names that collide after canonicalization get a numeric suffix so they stay unique.
func NormalizeSchema(t *table.Table) int {
	seen := make(map[string]struct{}, len(t.Columns))
	changed := 0
	for _, c := range t.Columns {
		name := CanonicalName(c.Name)
		if _, dup := seen[name]; dup {
			base := name
			for n := 1; ; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
		}
		seen[name] = struct{}{}
		if name != c.Name {
			c.Name = name
			changed++
		}
	}
	return changed
}
