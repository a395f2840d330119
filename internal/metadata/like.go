package metadata

import (
	"regexp"
	"strings"
)

// likeMatcher compiles a SQL LIKE pattern into a predicate: '%' matches any
// run, '_' one character, and '\' escapes the next character. Matching is
// case-sensitive. "" and "%" match everything.
func likeMatcher(pattern string) func(string) bool {
	if pattern == "" || pattern == "%" {
		return func(string) bool { return true }
	}

	var sb strings.Builder
	sb.WriteString(`(?s)^`)
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			sb.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			sb.WriteString(`.*`)
		case r == '_':
			sb.WriteString(`.`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		sb.WriteString(regexp.QuoteMeta(`\`))
	}
	sb.WriteString(`$`)

	re := regexp.MustCompile(sb.String())
	return re.MatchString
}
