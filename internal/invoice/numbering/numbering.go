// Package numbering derives sequential invoice numbers. Numbers are plain
// decimal strings scoped to (org, month, year); the caller passes only the
// numbers already issued in that scope, so the sequence resets each month.
package numbering

import (
	"strconv"
	"strings"
)

// Next returns the next invoice number given the numbers already issued in
// the scope. Malformed entries are skipped rather than rejected; history
// can contain imported numbers in other formats. With no valid history the
// sequence starts at "1".
func Next(existing []string) string {
	max := int64(0)
	for _, raw := range existing {
		value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || value < 0 {
			continue
		}
		if value > max {
			max = value
		}
	}
	return strconv.FormatInt(max+1, 10)
}
