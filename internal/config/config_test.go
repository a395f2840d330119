package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbmcp/internal/errs"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"--url", "sqlite:/tmp/app.db"})
	require.NoError(t, err)

	assert.Equal(t, "sqlite:/tmp/app.db", cfg.DB.URL)
	assert.Equal(t, 10*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, time.Duration(0), cfg.DB.QueryTimeout)
	assert.Equal(t, 100, cfg.MaxLongData)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Export.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{
		"-u", "postgres://db/app",
		"--user", "svc",
		"--password", "pw",
		"--query-timeout", "30s",
		"--max-long-data", "20",
		"--transport", "http",
		"--http-addr", ":9090",
		"--export-endpoint", "localhost:9000",
		"--export-bucket", "results",
		"--export-ssl",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", cfg.DB.User)
	assert.Equal(t, "pw", cfg.DB.Password)
	assert.Equal(t, 30*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, 20, cfg.MaxLongData)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.Export.Enabled())
	assert.True(t, cfg.Export.Store.UseSSL)
	assert.Equal(t, "results", cfg.Export.Store.Bucket)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DBMCP_URL", "mysql://db:3306/app")
	t.Setenv("DBMCP_API_KEY", "sk-env")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql://db:3306/app", cfg.DB.URL)
	assert.Equal(t, "sk-env", cfg.APIKey)

	cfg, err = Load([]string{"--url", "sqlite:/x.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite:/x.db", cfg.DB.URL, "flags beat environment")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: postgres://db/app
max-long-data: 50
log:
  level: debug
export:
  endpoint: minio:9000
  bucket: results
  url-ttl: 15m
`), 0o600))

	cfg, err := Load([]string{"--config", path, "--max-long-data", "70"})
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/app", cfg.DB.URL)
	assert.Equal(t, 70, cfg.MaxLongData, "flags beat the file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "minio:9000", cfg.Export.Store.Endpoint)
	assert.Equal(t, "results", cfg.Export.Store.Bucket)
	assert.Equal(t, 15*time.Minute, cfg.Export.URLTTL)
}

func TestLoad_UnknownFlag(t *testing.T) {
	_, err := Load([]string{"--no-such-flag"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"missing url", func(c *Config) { c.DB.URL = "" }, "connection URL"},
		{"bad transport", func(c *Config) { c.Transport = "grpc" }, "unknown transport"},
		{"negative timeout", func(c *Config) { c.DB.QueryTimeout = -time.Second }, "timeouts"},
		{"export without bucket", func(c *Config) { c.Export.Store.Endpoint = "minio:9000" }, "export-bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DB.URL = "sqlite:/tmp/a.db"
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAPIKeyOr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultAPIKey, cfg.APIKeyOr(nil))

	cfg.APIKey = "sk-config"
	assert.Equal(t, "sk-config", cfg.APIKeyOr(nil))

	explicit := "sk-call"
	assert.Equal(t, "sk-call", cfg.APIKeyOr(&explicit))
}

func TestYAMLParser(t *testing.T) {
	got := map[string]string{}
	set := func(name, value string) error {
		got[name] = value
		return nil
	}

	err := YAMLParser(strings.NewReader(`
url: sqlite:/a.db
export:
  ssl: true
  nested:
    deep: 3
tags: [a, b]
`), set)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"url":                "sqlite:/a.db",
		"export-ssl":         "true",
		"export-nested-deep": "3",
		"tags":               "a,b",
	}, got)

	require.NoError(t, YAMLParser(strings.NewReader(""), set), "empty file")
}
