package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/database"
)

// Server-side functions the passthrough tools call. Arguments are bound as
// parameters; the text is rewritten to the connection's placeholder style.
const (
	spasqlStatement     = `select Demo.demo.execute_spasql_query(?,?,?) as result`
	sparqlStatement     = `select "UB".dba."sparqlQuery"(?, ?, ?) as result`
	supportAIStatement  = `select DEMO.DBA.OAI_VIRTUOSO_SUPPORT_AI(?, ?) as result`
	sparqlFuncStatement = `select DEMO.DBA.OAI_SPARQL_FUNC(?, ?) as result`
)

func scalar(ctx context.Context, conn *database.Conn, stmt string, args ...any) (string, error) {
	return conn.QueryScalar(ctx, conn.Dialect().Bind(stmt), args...)
}

// SpasqlQuery forwards a SPASQL query and returns the function's result.
func (s *Server) SpasqlQuery(ctx context.Context, _ *mcp.CallToolRequest, in SpasqlArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "spasql_query", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		if err := required("query", in.Query); err != nil {
			return "", err
		}
		return scalar(ctx, conn, spasqlStatement,
			in.Query, intOr(in.MaxRows, defaultSpasqlMaxRows), intOr(in.Timeout, defaultTimeoutMillis))
	})
}

// SparqlQuery forwards a SPARQL query and returns the function's result.
func (s *Server) SparqlQuery(ctx context.Context, _ *mcp.CallToolRequest, in SparqlArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "sparql_query", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		if err := required("query", in.Query); err != nil {
			return "", err
		}
		return scalar(ctx, conn, sparqlStatement,
			in.Query, stringOr(in.Format, defaultSparqlFormat), intOr(in.Timeout, defaultTimeoutMillis))
	})
}

// VirtuosoSupportAI sends prompt to the support agent function.
func (s *Server) VirtuosoSupportAI(ctx context.Context, _ *mcp.CallToolRequest, in PromptArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "virtuoso_support_ai", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		if err := required("prompt", in.Prompt); err != nil {
			return "", err
		}
		return scalar(ctx, conn, supportAIStatement, in.Prompt, s.cfg.APIKeyOr(in.APIKey))
	})
}

// SparqlFunc sends prompt to the SPARQL agent function.
func (s *Server) SparqlFunc(ctx context.Context, _ *mcp.CallToolRequest, in PromptArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "sparql_func", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		if err := required("prompt", in.Prompt); err != nil {
			return "", err
		}
		return scalar(ctx, conn, sparqlFuncStatement, in.Prompt, s.cfg.APIKeyOr(in.APIKey))
	})
}
