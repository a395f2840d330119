// Package config loads the server configuration from defaults, an optional
// YAML file, DBMCP_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/errs"
	"github.com/koustreak/dbmcp/internal/filestore"
	"github.com/koustreak/dbmcp/internal/format"
	"github.com/koustreak/dbmcp/internal/logger"
)

// Transports the server can speak.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// DefaultAPIKey is sent to the AI passthrough functions when neither the
// call nor the configuration supplies a key.
const DefaultAPIKey = "sk-xxx"

// Config is the whole server configuration. It is loaded once at startup
// and passed by pointer; nothing mutates it afterwards.
type Config struct {
	// DB holds the connection defaults every tool call falls back to.
	DB database.Config

	// MaxLongData truncates rendered cell text to this many characters.
	MaxLongData int

	// APIKey is the default key for virtuoso_support_ai and sparql_func.
	APIKey string

	Transport string
	HTTPAddr  string

	Log logger.Config

	Export Export
}

// Export configures the optional object store that export_query writes to.
type Export struct {
	Store filestore.Config

	// Prefix is prepended to every object key.
	Prefix string

	// URLTTL is the lifetime of the presigned download URL.
	URLTTL time.Duration
}

// Enabled reports whether an object store is configured.
func (e Export) Enabled() bool {
	return e.Store.Enabled()
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		DB:          *database.DefaultConfig(""),
		MaxLongData: format.DefaultMaxCellLength,
		Transport:   TransportStdio,
		HTTPAddr:    ":8080",
		Log:         *logger.DefaultConfig(),
		Export: Export{
			Store:  filestore.Config{Provider: filestore.ProviderMinIO},
			Prefix: "exports/",
			URLTTL: time.Hour,
		},
	}
}

// APIKeyOr returns key if set, else the configured key, else DefaultAPIKey.
func (c *Config) APIKeyOr(key *string) string {
	switch {
	case key != nil:
		return *key
	case c.APIKey != "":
		return c.APIKey
	default:
		return DefaultAPIKey
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return errs.New(errs.ErrKindInvalidInput, fmt.Sprintf("unknown transport %q (want stdio or http)", c.Transport))
	}
	if c.DB.URL == "" {
		return errs.New(errs.ErrKindInvalidInput, "a default connection URL is required (--url or DBMCP_URL)")
	}
	if c.DB.ConnectTimeout < 0 || c.DB.QueryTimeout < 0 {
		return errs.New(errs.ErrKindInvalidInput, "timeouts must not be negative")
	}
	if err := c.Export.Store.Validate(); err != nil {
		return err
	}
	if c.Export.URLTTL <= 0 {
		return errs.New(errs.ErrKindInvalidInput, "export-url-ttl must be positive")
	}
	return nil
}

// Load parses args (without the program name) on top of the defaults.
// On -h/--help it prints usage to stderr and returns ff.ErrHelp.
func Load(args []string) (*Config, error) {
	cfg := Default()

	fs := ff.NewFlagSet("dbmcp")
	url := fs.String('u', "url", cfg.DB.URL, "Default database connection URL (postgres://, mysql://, sqlite:, sqlserver://, oracle://)")
	user := fs.StringLong("user", "", "Default database user")
	password := fs.StringLong("password", "", "Default database password")
	connectTimeout := fs.DurationLong("connect-timeout", cfg.DB.ConnectTimeout, "Time limit for opening a connection")
	queryTimeout := fs.DurationLong("query-timeout", cfg.DB.QueryTimeout, "Per-query deadline (0 to disable)")
	maxLongData := fs.IntLong("max-long-data", cfg.MaxLongData, "Maximum characters rendered per cell")
	apiKey := fs.StringLong("api-key", "", "Default API key for the AI passthrough tools")

	transport := fs.String('t', "transport", cfg.Transport, "MCP transport (stdio|http)")
	httpAddr := fs.StringLong("http-addr", cfg.HTTPAddr, "Listen address for the http transport")

	logLevel := fs.StringLong("log-level", cfg.Log.Level, "Log level (debug|info|warn|error)")
	logFormat := fs.StringLong("log-format", cfg.Log.Format, "Log format (json|console)")

	exportEndpoint := fs.StringLong("export-endpoint", "", "Object store host:port for export_query (empty to disable)")
	exportAccessKey := fs.StringLong("export-access-key", "", "Object store access key")
	exportSecretKey := fs.StringLong("export-secret-key", "", "Object store secret key")
	exportSSL := fs.BoolLong("export-ssl", "Use TLS for the object store")
	exportRegion := fs.StringLong("export-region", "", "Object store region")
	exportBucket := fs.StringLong("export-bucket", "", "Bucket export_query writes to")
	exportPrefix := fs.StringLong("export-prefix", cfg.Export.Prefix, "Key prefix for exported results")
	exportTTL := fs.DurationLong("export-url-ttl", cfg.Export.URLTTL, "Lifetime of presigned export URLs")

	_ = fs.String('c', "config", "", "YAML config file (optional)")

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("DBMCP"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(YAMLParser),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return nil, err
	}

	cfg.DB.URL = *url
	cfg.DB.User = *user
	cfg.DB.Password = *password
	cfg.DB.ConnectTimeout = *connectTimeout
	cfg.DB.QueryTimeout = *queryTimeout
	cfg.MaxLongData = *maxLongData
	cfg.APIKey = *apiKey
	cfg.Transport = *transport
	cfg.HTTPAddr = *httpAddr
	cfg.Log.Level = *logLevel
	cfg.Log.Format = *logFormat
	cfg.Export.Store.Endpoint = *exportEndpoint
	cfg.Export.Store.AccessKey = *exportAccessKey
	cfg.Export.Store.SecretKey = *exportSecretKey
	cfg.Export.Store.UseSSL = *exportSSL
	cfg.Export.Store.Region = *exportRegion
	cfg.Export.Store.Bucket = *exportBucket
	cfg.Export.Prefix = *exportPrefix
	cfg.Export.URLTTL = *exportTTL

	return cfg, nil
}
