package text

import (
	"fmt"
	"strings"
)

const ellipsis = "..."

// 🎯 TruncateMiddle shortens s to at most max characters by replacing the
// middle with "...". The start and the end of the string are both preserved,
// which keeps file names recognizable: the directory prefix and the
// extension survive. Strings that already fit are returned unchanged.
func TruncateMiddle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	if max <= len(ellipsis) {
		return ellipsis[:max]
	}
	prefixLen := max/2 - len(ellipsis)
	if prefixLen < 0 {
		prefixLen = 0
	}
	suffixLen := max - prefixLen - len(ellipsis)
	return s[:prefixLen] + ellipsis + s[len(s)-suffixLen:]
}

// 🎯 FormatBytes renders a byte count for humans: "512 B", "1.5 KB",
// "8.0 MB". Binary units, one decimal place.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// 🎯 FormatCount renders a file count with its noun ("1 file", "12 files").
func FormatCount(n uint64) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// 🎯 Pad right-pads s with spaces to width, truncating the middle if s is
// longer. Used to keep console columns stable while names vary.
func Pad(s string, width int) string {
	s = TruncateMiddle(s, width)
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
