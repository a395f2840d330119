// Package format renders tabular query results as JSON-Lines or Markdown
// and encodes JSON documents for the introspection tools.
package format

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/koustreak/dbmcp/internal/errs"
)

// Format selects the rendering of a result.
type Format int

const (
	// JSONLines renders one JSON object per row.
	JSONLines Format = iota

	// Markdown renders a pipe table.
	Markdown
)

func (f Format) String() string {
	switch f {
	case JSONLines:
		return "jsonl"
	case Markdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Extension is the file extension used when a rendering is stored.
func (f Format) Extension() string {
	if f == Markdown {
		return "md"
	}
	return "jsonl"
}

// ContentType is the MIME type of a rendering.
func (f Format) ContentType() string {
	if f == Markdown {
		return "text/markdown; charset=utf-8"
	}
	return "application/jsonl; charset=utf-8"
}

// ParseFormat maps "jsonl"/"markdown" (and their short forms) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jsonl", "json-lines", "jsonlines":
		return JSONLines, nil
	case "md", "markdown":
		return Markdown, nil
	default:
		return 0, errs.New(errs.ErrKindInvalidInput, "unknown format: "+s)
	}
}

// DefaultMaxCellLength is the cell text limit when none is configured.
const DefaultMaxCellLength = 100

// Options control a rendering.
type Options struct {
	Format Format

	// MaxCellLength truncates cell text to this many characters.
	// Negative disables truncation.
	MaxCellLength int

	// MaxRows caps the rows consumed. Negative means unlimited.
	MaxRows int
}

// RowSource is a streamed tabular result. It is consumed once.
type RowSource interface {
	Columns() []string
	Next() bool
	Values() ([]any, error)
	Err() error
}

// Render consumes at most opts.MaxRows rows from src and returns the
// rendered text and the number of rows rendered. Rows past the limit are
// never read.
func Render(src RowSource, opts Options) (string, int, error) {
	switch opts.Format {
	case JSONLines:
		return renderJSONLines(src, opts)
	case Markdown:
		return renderMarkdown(src, opts)
	default:
		return "", 0, errs.New(errs.ErrKindInvalidInput, "unknown format: "+opts.Format.String())
	}
}

// JSON encodes v as a compact JSON document without HTML escaping.
func JSON(v any) (string, error) {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindSerializationFailed, "failed to encode JSON", err)
	}
	return string(b), nil
}

// each feeds up to limit rows of src to fn. The limit is checked before the
// source is advanced. Every row must have one value per column.
func each(src RowSource, limit int, fn func([]any) error) (int, error) {
	width := len(src.Columns())
	n := 0
	for limit < 0 || n < limit {
		if !src.Next() {
			break
		}
		vals, err := src.Values()
		if err != nil {
			return n, err
		}
		if len(vals) != width {
			return n, errs.New(errs.ErrKindSerializationFailed,
				fmt.Sprintf("row %d has %d values for %d columns", n+1, len(vals), width))
		}
		if err := fn(vals); err != nil {
			return n, err
		}
		n++
	}
	if err := src.Err(); err != nil {
		return n, err
	}
	return n, nil
}
