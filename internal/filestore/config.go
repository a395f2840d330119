package filestore

import (
	"strings"

	"github.com/koustreak/dbmcp/internal/errs"
)

// Provider identifies the file storage backend.
type Provider string

const (
	ProviderMinIO Provider = "minio"
)

// Config locates the object store and the bucket exports land in.
// A zero Endpoint means no store is configured.
type Config struct {
	Provider Provider

	// Endpoint is host:port, e.g. "localhost:9000".
	Endpoint string

	AccessKey string
	SecretKey string
	UseSSL    bool

	// Region is only needed by region-aware backends such as AWS S3.
	Region string

	// Bucket receives every export. It is created at startup if missing.
	Bucket string
}

// Enabled reports whether a store is configured at all.
func (c *Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// Validate checks a configured store. A disabled store is always valid.
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Provider != "" && c.Provider != ProviderMinIO {
		return errs.New(errs.ErrKindInvalidInput, "unsupported storage provider: "+string(c.Provider))
	}
	if c.Bucket == "" {
		return errs.New(errs.ErrKindInvalidInput, "export-bucket is required when export-endpoint is set")
	}
	return nil
}
