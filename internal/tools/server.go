// Package tools exposes database introspection and query execution as MCP
// tools. Every call opens its own connection and closes it before returning.
package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/config"
	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/errs"
	"github.com/koustreak/dbmcp/internal/filestore"
	"github.com/koustreak/dbmcp/internal/logger"
)

// Version is reported to MCP clients. Overridden at build time.
var Version = "dev"

// Server holds what the tool handlers share. It has no mutable state.
type Server struct {
	cfg      *config.Config
	provider *database.Provider
	store    filestore.Store
	log      *logger.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables export_query, writing to store.
func WithStore(store filestore.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithLogger sets the logger tool calls are recorded to.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates the tool server for cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		provider: database.NewProvider(&cfg.DB),
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MCP returns an MCP server with every tool registered.
func (s *Server) MCP() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "dbmcp", Version: Version}, nil)

	mcp.AddTool(server, &mcp.Tool{Name: "get_schemas", Description: "Retrieve and return a list of all schema names from the connected database."}, s.GetSchemas)
	mcp.AddTool(server, &mcp.Tool{Name: "get_tables", Description: "Retrieve and return a list containing information about tables in specified schema, if empty uses connection default"}, s.GetTables)
	mcp.AddTool(server, &mcp.Tool{Name: "describe_table", Description: "Retrieve and return a dictionary containing the definition of a table, including column names, data types, nullable, primary key, and foreign keys."}, s.DescribeTable)
	mcp.AddTool(server, &mcp.Tool{Name: "filter_table_names", Description: "Retrieve and return a list containing information about tables whose names contain the substring 'q'."}, s.FilterTableNames)

	mcp.AddTool(server, &mcp.Tool{Name: "execute_query", Description: "Execute a SQL query and return results in JSONL format."}, s.ExecuteQuery)
	mcp.AddTool(server, &mcp.Tool{Name: "execute_query_md", Description: "Execute a SQL query and return results in Markdown table format."}, s.ExecuteQueryMD)
	mcp.AddTool(server, &mcp.Tool{Name: "query_database", Description: "Execute a SQL query and return all results in JSONL format."}, s.QueryDatabase)

	mcp.AddTool(server, &mcp.Tool{Name: "spasql_query", Description: "Execute a SPASQL query and return results."}, s.SpasqlQuery)
	mcp.AddTool(server, &mcp.Tool{Name: "sparql_query", Description: "Execute a SPARQL query and return results."}, s.SparqlQuery)
	mcp.AddTool(server, &mcp.Tool{Name: "virtuoso_support_ai", Description: "Interact with the Virtuoso Support AI Agent."}, s.VirtuosoSupportAI)
	mcp.AddTool(server, &mcp.Tool{Name: "sparql_func", Description: "Use the SPARQL AI Agent function."}, s.SparqlFunc)

	for _, q := range cannedQueries {
		mcp.AddTool(server, &mcp.Tool{Name: q.name, Description: q.description}, s.canned(q))
	}

	if s.store != nil {
		mcp.AddTool(server, &mcp.Tool{Name: "export_query", Description: "Execute a SQL query, store the rendered result in object storage and return a download URL."}, s.ExportQuery)
	}

	return server
}

// withConn runs fn on a fresh connection and turns its text into a tool
// result. Any failure is reported as "Failed to <op>: <cause>".
func (s *Server) withConn(ctx context.Context, op string, o database.Overrides, fn func(context.Context, *database.Conn) (string, error)) (*mcp.CallToolResult, any, error) {
	call := s.log.StartCall(op)

	text, err := func() (string, error) {
		conn, err := s.provider.Open(ctx, o)
		if err != nil {
			return "", err
		}
		defer conn.Close()

		call.Logger().With().
			Str("dialect", conn.Dialect().String()).
			Str("url", conn.URL()).
			Logger().Debug("connection opened")

		return fn(call.Logger().WithContext(ctx), conn)
	}()

	if err != nil {
		call.Failed(err, errs.KindOf(err).String())
		return nil, nil, errs.Failed(op, err)
	}

	call.Done(len(text))
	return textResult(text), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
