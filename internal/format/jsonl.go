package format

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/koustreak/dbmcp/internal/errs"
)

func renderJSONLines(src RowSource, opts Options) (string, int, error) {
	columns := src.Columns()

	// A repeated column name keeps its first position; the later value wins.
	keys := make([][]byte, 0, len(columns))
	slot := make([]int, len(columns))
	seen := make(map[string]int, len(columns))
	for i, c := range columns {
		j, ok := seen[c]
		if !ok {
			k, err := json.MarshalNoEscape(c)
			if err != nil {
				return "", 0, errs.Wrap(errs.ErrKindSerializationFailed, "failed to encode column name", err)
			}
			j = len(keys)
			seen[c] = j
			keys = append(keys, k)
		}
		slot[i] = j
	}

	var buf bytes.Buffer
	cells := make([][]byte, len(keys))
	n, err := each(src, opts.MaxRows, func(vals []any) error {
		for i, v := range vals {
			text, null := display(v, opts.MaxCellLength)
			if null {
				cells[slot[i]] = []byte("null")
				continue
			}
			b, err := json.MarshalNoEscape(text)
			if err != nil {
				return errs.Wrap(errs.ErrKindSerializationFailed, "failed to encode cell", err)
			}
			cells[slot[i]] = b
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(cells[i])
		}
		buf.WriteByte('}')
		return nil
	})
	if err != nil {
		return "", n, err
	}
	return buf.String(), n, nil
}
