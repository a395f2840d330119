package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/format"
	"github.com/koustreak/dbmcp/internal/metadata"
	"github.com/koustreak/dbmcp/internal/schema"
)

func introspector(conn *database.Conn) (*schema.Introspector, error) {
	src, err := metadata.For(conn)
	if err != nil {
		return nil, err
	}
	return schema.New(src), nil
}

// GetSchemas lists the catalogs of the database.
func (s *Server) GetSchemas(ctx context.Context, _ *mcp.CallToolRequest, in NoArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "get_schemas", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		intro, err := introspector(conn)
		if err != nil {
			return "", err
		}
		cats, err := intro.ListCatalogs(ctx)
		if err != nil {
			return "", err
		}
		return format.JSON(cats)
	})
}

// GetTables lists the base tables of one schema, or of all schemas.
func (s *Server) GetTables(ctx context.Context, _ *mcp.CallToolRequest, in SchemaArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "get_tables", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		intro, err := introspector(conn)
		if err != nil {
			return "", err
		}
		tables, err := intro.ListTables(ctx, catalogPattern(in.Schema))
		if err != nil {
			return "", err
		}
		return format.JSON(tables)
	})
}

// DescribeTable returns a table's columns and keys, or {} when it does not exist.
func (s *Server) DescribeTable(ctx context.Context, _ *mcp.CallToolRequest, in DescribeArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "describe_table", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		if err := required("table", in.Table); err != nil {
			return "", err
		}
		intro, err := introspector(conn)
		if err != nil {
			return "", err
		}
		desc, err := intro.DescribeTable(ctx, catalogPattern(in.Schema), in.Table)
		if err != nil {
			return "", err
		}
		return format.JSON(desc)
	})
}

// FilterTableNames lists base tables whose names contain q.
func (s *Server) FilterTableNames(ctx context.Context, _ *mcp.CallToolRequest, in FilterArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "filter_table_names", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		intro, err := introspector(conn)
		if err != nil {
			return "", err
		}
		tables, err := intro.FilterTables(ctx, catalogPattern(in.Schema), in.Q)
		if err != nil {
			return "", err
		}
		return format.JSON(tables)
	})
}
