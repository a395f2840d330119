package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbmcp/internal/errs"
)

// newSQLiteProvider returns a provider pointing at a fresh file database
// seeded with stmts.
func newSQLiteProvider(t *testing.T, stmts ...string) *Provider {
	t.Helper()

	url := "sqlite:" + filepath.Join(t.TempDir(), "test.db")
	p := NewProvider(DefaultConfig(url))

	conn, err := p.Open(context.Background(), Overrides{})
	require.NoError(t, err)
	defer conn.Close()

	for _, s := range stmts {
		_, err := conn.db.ExecContext(context.Background(), s)
		require.NoError(t, err, s)
	}
	return p
}

func TestProvider_Open(t *testing.T) {
	p := newSQLiteProvider(t)

	conn, err := p.Open(context.Background(), Overrides{})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, DialectSQLite, conn.Dialect())
	assert.NotNil(t, conn.Querier())
}

func TestProvider_Open_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no url", func(t *testing.T) {
		_, err := NewProvider(DefaultConfig("")).Open(ctx, Overrides{})
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := NewProvider(DefaultConfig("nosuchdb://host/x")).Open(ctx, Overrides{})
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})
}

func TestConn_Query(t *testing.T) {
	p := newSQLiteProvider(t,
		"CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)",
		"INSERT INTO t (id, name) VALUES (1, 'a'), (2, NULL)",
	)

	conn, err := p.Open(context.Background(), Overrides{})
	require.NoError(t, err)
	defer conn.Close()

	rs, err := conn.Query(context.Background(), "SELECT id, name FROM t ORDER BY id")
	require.NoError(t, err)
	defer rs.Close()

	assert.Equal(t, []string{"id", "name"}, rs.Columns())

	var got [][]any
	for rs.Next() {
		vals, err := rs.Values()
		require.NoError(t, err)
		got = append(got, vals)
	}
	require.NoError(t, rs.Err())

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0][0])
	assert.Equal(t, "a", got[0][1])
	assert.Nil(t, got[1][1])
}

func TestConn_Query_Invalid(t *testing.T) {
	p := newSQLiteProvider(t)

	conn, err := p.Open(context.Background(), Overrides{})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Query(context.Background(), "SELECT * FROM missing")
	require.Error(t, err)
	assert.True(t, errs.IsQueryFailed(err))
}

func TestConn_QueryScalar(t *testing.T) {
	p := newSQLiteProvider(t)

	conn, err := p.Open(context.Background(), Overrides{})
	require.NoError(t, err)
	defer conn.Close()

	v, err := conn.QueryScalar(context.Background(), "SELECT 'hello' AS result")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = conn.QueryScalar(context.Background(), "SELECT NULL AS result")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = conn.QueryScalar(context.Background(), "SELECT 1 WHERE 1 = 0")
	require.Error(t, err)
	assert.True(t, errs.IsQueryFailed(err))
}
