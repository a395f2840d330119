// Command dbmcp serves relational database introspection and query tools
// to MCP clients over stdio or HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v4"

	"github.com/koustreak/dbmcp/internal/config"
	"github.com/koustreak/dbmcp/internal/filestore/minio"
	"github.com/koustreak/dbmcp/internal/logger"
	"github.com/koustreak/dbmcp/internal/tools"
	"github.com/koustreak/dbmcp/internal/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "dbmcp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(&cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []tools.Option{tools.WithLogger(log)}

	if cfg.Export.Enabled() {
		store, err := minio.New(ctx, &cfg.Export.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureBucket(ctx, cfg.Export.Store.Bucket); err != nil {
			return err
		}
		log.With().
			Str("endpoint", cfg.Export.Store.Endpoint).
			Str("bucket", cfg.Export.Store.Bucket).
			Logger().Info("export storage ready")
		opts = append(opts, tools.WithStore(store))
	}

	server := tools.New(cfg, opts...).MCP()

	log.With().
		Str("version", tools.Version).
		Str("transport", cfg.Transport).
		Logger().Info("starting dbmcp")

	switch cfg.Transport {
	case config.TransportHTTP:
		return transport.HTTP(ctx, cfg.HTTPAddr, server, log)
	default:
		return transport.Stdio(ctx, server, log)
	}
}
