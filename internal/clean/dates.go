package clean

import (
	"strings"
	"time"

	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/araddon/dateparse"
)

// NormalizeDates reparses the named column into date values. Values that do not
// parse become missing; their rows are kept. It reports false when the column is absent.
func NormalizeDates(t *table.Table, name string) (parsed, failed int, ok bool) {
	c := t.Column(name)
	if c == nil {
		return 0, 0, false
	}
	if c.Kind == table.Date {
		return 0, 0, true
	}
	for i := range c.Values {
		raw, valid := c.Raw(i)
		if !valid {
			continue
		}
		d, good := ParseDate(raw)
		if !good {
			c.Values[i] = table.Missing()
			failed++
			continue
		}
		c.Values[i] = table.DateValue(d)
		parsed++
	}
	c.Kind = table.Date
	return parsed, failed, true
}

// ParseDate parses s in any common layout, interpreting it as UTC.
func ParseDate(s string) (d time.Time, ok bool) {
	// dateparse can panic on some malformed inputs; treat that as unparseable.
	defer func() {
		if recover() != nil {
			d, ok = time.Time{}, false
		}
	}()
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
