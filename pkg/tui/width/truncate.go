// ABOUTME: ANSI-aware truncation to a column budget, cutting only at grapheme boundaries
// ABOUTME: Used to keep select items and hints on a single physical row

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = '…'

// graphemeWidth returns the display width of a grapheme cluster: the width
// of its first code point, since combining marks and joiners ride along.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	for _, r := range cluster {
		return RuneWidth(r)
	}
	return 0
}

// TruncateToWidth truncates s to at most maxWidth visible columns. When
// truncation occurs the last visible column becomes an ellipsis. Escape
// sequences are kept and do not count toward the budget.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return string(ellipsis)
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1
	styled := false
	i := 0
	for i < len(s) && col < target {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			b.WriteString(s[i:end])
			styled = true
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := graphemeWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		i += len(s[i:]) - len(rest)
	}
	if styled {
		b.WriteString("\x1b[0m")
	}
	b.WriteRune(ellipsis)
	return b.String()
}

// PadRight appends spaces to s until it is w columns wide.
func PadRight(s string, w int) string {
	if n := w - VisibleWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
