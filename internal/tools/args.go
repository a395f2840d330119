package tools

import (
	"strings"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/errs"
)

// Argument defaults applied when a call omits them.
const (
	defaultMaxRows       = 100
	defaultSpasqlMaxRows = 20
	defaultTimeoutMillis = 300000
	defaultSparqlFormat  = "json"
	anyCatalog           = "%"
)

func overrides(user, password, url *string) database.Overrides {
	return database.Overrides{User: user, Password: password, URL: url}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// rowLimit resolves a caller's max_rows. Negative values mean no rows;
// only fixed-query tools render without a limit.
func rowLimit(v *int, def int) int {
	return max(intOr(v, def), 0)
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// catalogPattern maps an omitted schema argument to "any catalog".
func catalogPattern(schema *string) string {
	if schema == nil || *schema == "" {
		return anyCatalog
	}
	return *schema
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.New(errs.ErrKindInvalidInput, name+" is required")
	}
	return nil
}

// NoArgs carries only the connection overrides.
type NoArgs struct {
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type SchemaArgs struct {
	Schema   *string `json:"schema,omitempty" jsonschema:"Schema name; all schemas when omitted"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type DescribeArgs struct {
	Schema   *string `json:"schema,omitempty" jsonschema:"Schema name; all schemas when omitted"`
	Table    string  `json:"table" jsonschema:"Table name"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type FilterArgs struct {
	Q        string  `json:"q" jsonschema:"Substring to search for in table names"`
	Schema   *string `json:"schema,omitempty" jsonschema:"Schema name; all schemas when omitted"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type QueryArgs struct {
	Query    string  `json:"query" jsonschema:"SQL query"`
	MaxRows  *int    `json:"max_rows,omitempty" jsonschema:"Maximum number of rows to return (default 100)"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type QueryAllArgs struct {
	Query    string  `json:"query" jsonschema:"SQL query"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type SpasqlArgs struct {
	Query    string  `json:"query" jsonschema:"SPASQL query"`
	MaxRows  *int    `json:"max_rows,omitempty" jsonschema:"Maximum number of rows to return (default 20)"`
	Timeout  *int    `json:"timeout,omitempty" jsonschema:"Query timeout in milliseconds (default 300000)"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type SparqlArgs struct {
	Query    string  `json:"query" jsonschema:"SPARQL query"`
	Format   *string `json:"format,omitempty" jsonschema:"Result format (default json)"`
	Timeout  *int    `json:"timeout,omitempty" jsonschema:"Query timeout in milliseconds (default 300000)"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type PromptArgs struct {
	Prompt   string  `json:"prompt" jsonschema:"Prompt"`
	APIKey   *string `json:"api_key,omitempty" jsonschema:"API key"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}

type ExportArgs struct {
	Query    string  `json:"query" jsonschema:"SQL query"`
	MaxRows  *int    `json:"max_rows,omitempty" jsonschema:"Maximum number of rows to export (default 100)"`
	Format   *string `json:"format,omitempty" jsonschema:"jsonl or markdown (default jsonl)"`
	User     *string `json:"user,omitempty" jsonschema:"Username"`
	Password *string `json:"password,omitempty" jsonschema:"Password"`
	URL      *string `json:"url,omitempty" jsonschema:"Database connection URL"`
}
