package format

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const timeLayout = "2006-01-02 15:04:05.999999999"

// cellText converts a non-NULL value to its display text.
func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(timeLayout)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// truncate cuts s to its first max characters. Negative max keeps s whole.
func truncate(s string, max int) string {
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	i, n := 0, 0
	for i < len(s) && n < max {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n++
	}
	return s[:i]
}

// display returns the truncated text of v and whether v is NULL.
func display(v any, max int) (string, bool) {
	if v == nil {
		return "", true
	}
	return truncate(cellText(v), max), false
}
