package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/format"
)

// ExecuteQuery runs query and renders up to max_rows rows as JSON-Lines.
func (s *Server) ExecuteQuery(ctx context.Context, _ *mcp.CallToolRequest, in QueryArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "execute_query", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		return s.render(ctx, conn, in.Query, format.JSONLines, rowLimit(in.MaxRows, defaultMaxRows))
	})
}

// ExecuteQueryMD runs query and renders up to max_rows rows as a Markdown table.
func (s *Server) ExecuteQueryMD(ctx context.Context, _ *mcp.CallToolRequest, in QueryArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "execute_query_md", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		return s.render(ctx, conn, in.Query, format.Markdown, rowLimit(in.MaxRows, defaultMaxRows))
	})
}

// QueryDatabase runs query and renders every row as JSON-Lines.
func (s *Server) QueryDatabase(ctx context.Context, _ *mcp.CallToolRequest, in QueryAllArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "query_database", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		return s.render(ctx, conn, in.Query, format.JSONLines, -1)
	})
}

func (s *Server) render(ctx context.Context, conn *database.Conn, query string, f format.Format, maxRows int) (string, error) {
	text, _, err := s.renderRows(ctx, conn, query, f, maxRows)
	return text, err
}

// renderRows executes query and renders the result, reporting the row count.
func (s *Server) renderRows(ctx context.Context, conn *database.Conn, query string, f format.Format, maxRows int) (string, int, error) {
	if err := required("query", query); err != nil {
		return "", 0, err
	}

	rs, err := conn.Query(ctx, query)
	if err != nil {
		return "", 0, err
	}
	defer rs.Close()

	return format.Render(rs, format.Options{
		Format:        f,
		MaxCellLength: s.cfg.MaxLongData,
		MaxRows:       maxRows,
	})
}
