package format

import "strings"

// renderMarkdown writes a pipe table. Cell text is not escaped, so values
// containing '|' or newlines break the table layout.
func renderMarkdown(src RowSource, opts Options) (string, int, error) {
	columns := src.Columns()

	var sb strings.Builder
	sb.WriteString("| ")
	sb.WriteString(strings.Join(columns, " | "))
	sb.WriteString(" |\n")

	sep := make([]string, len(columns))
	for i := range sep {
		sep[i] = "---"
	}
	sb.WriteString("| ")
	sb.WriteString(strings.Join(sep, " | "))
	sb.WriteString(" |\n")

	n, err := each(src, opts.MaxRows, func(vals []any) error {
		sb.WriteString("| ")
		for _, v := range vals {
			text, _ := display(v, opts.MaxCellLength)
			sb.WriteString(text)
			sb.WriteString(" | ")
		}
		sb.WriteString("\n")
		return nil
	})
	if err != nil {
		return "", n, err
	}
	return sb.String(), n, nil
}
