package format

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbmcp/internal/errs"
)

func jsonl(max int) Options {
	return Options{Format: JSONLines, MaxCellLength: DefaultMaxCellLength, MaxRows: max}
}

func md(max int) Options {
	return Options{Format: Markdown, MaxCellLength: DefaultMaxCellLength, MaxRows: max}
}

func TestRender_JSONLines(t *testing.T) {
	long := strings.Repeat("x", 150)
	src := NewSliceResult([]string{"id", "note"}, [][]any{
		{int64(1), nil},
		{int64(2), long},
	})

	out, n, err := Render(src, jsonl(100))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"id":"1","note":null}`, lines[0])
	assert.Equal(t, `{"id":"2","note":"`+strings.Repeat("x", 100)+`"}`, lines[1])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRender_JSONLines_KeyOrder(t *testing.T) {
	src := NewSliceResult([]string{"z", "a", "z", "m"}, [][]any{
		{"first", "b", "second", "<&>"},
	})

	out, _, err := Render(src, jsonl(-1))
	require.NoError(t, err)
	assert.Equal(t, `{"z":"second","a":"b","m":"<&>"}`, out)
}

func TestRender_JSONLines_RoundTrip(t *testing.T) {
	rows := make([][]any, 0, 20)
	for i := range 20 {
		rows = append(rows, []any{int64(i), fmt.Sprintf("name-%d", i), nil})
	}
	src := NewSliceResult([]string{"id", "name", "deleted_at"}, rows)

	out, n, err := Render(src, jsonl(100))
	require.NoError(t, err)
	require.Equal(t, 20, n)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, len(rows))
	for i, line := range lines {
		var got map[string]*string
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		require.NotNil(t, got["id"])
		assert.Equal(t, fmt.Sprint(i), *got["id"])
		assert.Equal(t, fmt.Sprintf("name-%d", i), *got["name"])
		assert.Nil(t, got["deleted_at"])
	}
}

func TestRender_Empty(t *testing.T) {
	out, n, err := Render(NewSliceResult([]string{"a"}, nil), jsonl(100))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "", out)

	out, _, err = Render(NewSliceResult([]string{"a"}, nil), md(100))
	require.NoError(t, err)
	assert.Equal(t, "| a |\n| --- |\n", out)
}

func TestRender_Markdown(t *testing.T) {
	src := NewSliceResult([]string{"a", "b"}, [][]any{{"v1", nil}})

	out, n, err := Render(src, md(100))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "| a | b |\n| --- | --- |\n| v1 |  | \n", out)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestRender_Markdown_NoEscaping(t *testing.T) {
	src := NewSliceResult([]string{"c"}, [][]any{{"x|y"}})

	out, _, err := Render(src, md(10))
	require.NoError(t, err)
	assert.Equal(t, "| c |\n| --- |\n| x|y | \n", out)
}

func TestRender_MaxRows(t *testing.T) {
	rows := make([][]any, 150)
	for i := range rows {
		rows[i] = []any{int64(i)}
	}

	for _, opts := range []Options{jsonl(100), md(100)} {
		t.Run(opts.Format.String(), func(t *testing.T) {
			src := NewSliceResult([]string{"n"}, rows)

			_, n, err := Render(src, opts)
			require.NoError(t, err)
			assert.Equal(t, 100, n)
			assert.Equal(t, 100, src.Visited(), "rows past the limit are not read")
		})
	}

	t.Run("zero", func(t *testing.T) {
		src := NewSliceResult([]string{"n"}, rows)
		out, n, err := Render(src, jsonl(0))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Empty(t, out)
		assert.Equal(t, 0, src.Visited())
	})

	t.Run("unlimited", func(t *testing.T) {
		_, n, err := Render(NewSliceResult([]string{"n"}, rows), jsonl(-1))
		require.NoError(t, err)
		assert.Equal(t, 150, n)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "abcdef", truncate("abcdef", -1))
	assert.Equal(t, "héll", truncate("héllo", 4), "counts characters, not bytes")
}

func TestCellText(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 500000000, time.UTC)

	assert.Equal(t, "abc", cellText([]byte("abc")))
	assert.Equal(t, "2024-03-01 12:30:00.5", cellText(ts))
	assert.Equal(t, "42", cellText(int64(42)))
	assert.Equal(t, "1.5", cellText(1.5))
	assert.Equal(t, "true", cellText(true))
}

type failingSource struct {
	*SliceResult
	err error
}

func (f failingSource) Err() error { return f.err }

func TestRender_SourceError(t *testing.T) {
	boom := errors.New("connection reset")
	src := failingSource{SliceResult: NewSliceResult([]string{"a"}, [][]any{{"1"}}), err: boom}

	_, _, err := Render(src, jsonl(10))
	assert.ErrorIs(t, err, boom)
}

func TestRender_RowWidthMismatch(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		rows [][]any
	}{
		{name: "short row", cols: []string{"a", "b"}, rows: [][]any{{"1", "2"}, {"3"}}},
		{name: "long row", cols: []string{"a"}, rows: [][]any{{"1", "2"}}},
	}

	for _, tt := range tests {
		for _, opts := range []Options{jsonl(-1), md(-1)} {
			t.Run(tt.name+"/"+opts.Format.String(), func(t *testing.T) {
				out, _, err := Render(NewSliceResult(tt.cols, tt.rows), opts)
				require.Error(t, err)
				assert.Empty(t, out)
				assert.True(t, errs.IsSerializationFailed(err))
			})
		}
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, Markdown, f)
	assert.Equal(t, "md", f.Extension())

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, JSONLines, f)

	_, err = ParseFormat("csv")
	assert.True(t, errs.IsInvalidInput(err))
}

func TestJSON(t *testing.T) {
	out, err := JSON([]string{"a<b"})
	require.NoError(t, err)
	assert.Equal(t, `["a<b"]`, out)

	_, err = JSON(make(chan int))
	require.Error(t, err)
	assert.True(t, errs.IsSerializationFailed(err))
}
