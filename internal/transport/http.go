// Package transport serves an MCP server over stdio or streamable HTTP.
package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/logger"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// serve context is cancelled.
const ShutdownTimeout = 15 * time.Second

// Stdio serves server over stdin/stdout until ctx is cancelled or the
// client disconnects.
func Stdio(ctx context.Context, server *mcp.Server, log *logger.Logger) error {
	log.Info("serving MCP over stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

// Router returns the HTTP handler: /mcp for the streamable MCP endpoint and
// /healthz for liveness probes.
func Router(server *mcp.Server, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))

	return r
}

// HTTP serves Router on addr until ctx is cancelled, then shuts down gracefully.
func HTTP(ctx context.Context, addr string, server *mcp.Server, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Router(server, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.With().Str("addr", addr).Logger().Info("serving MCP over HTTP")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.With().Err(err).Logger().Error("HTTP server failed")
		return err
	case <-ctx.Done():
	}

	log.Warn("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(log.WithContext(r.Context())))

			log.Request(logger.Request{
				ID:      middleware.GetReqID(r.Context()),
				Method:  r.Method,
				Path:    r.URL.Path,
				Status:  ww.Status(),
				Bytes:   ww.BytesWritten(),
				Elapsed: time.Since(start),
			})
		})
	}
}
