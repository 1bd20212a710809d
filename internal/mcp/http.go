package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zk-kit/zk-kit-mcp/pkg/buildinfo"
)

// requestIDHeader echoes the per-request id back to the client.
const requestIDHeader = "X-Request-Id"

// shutdownTimeout bounds how long in-flight requests may drain after the
// serve context is canceled.
const shutdownTimeout = 5 * time.Second

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the id assigned to this request by the HTTP shell, or
// "" outside of one.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags every request with a fresh uuid, stored in the context
// and echoed in the response headers.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request with its id, status and timing.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"id", RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

// NewRouter wraps the server's streamable HTTP transport in a chi router
// with request ids, request logging, panic recovery and a health endpoint.
// The MCP endpoint is /mcp.
func NewRouter(s *server.MCPServer, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	streamable := server.NewStreamableHTTPServer(s)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Handle("/mcp", streamable)

	return r
}

// handleHealth answers load-balancer probes without touching the registry.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "{\"status\":\"ok\",\"version\":%q}\n", buildinfo.Version)
}

// ServeHTTP serves the MCP server over streamable HTTP on addr until ctx
// is canceled, then drains in-flight requests before returning.
func ServeHTTP(ctx context.Context, s *server.MCPServer, addr string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(s, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("http transport listening", "addr", addr, "endpoint", "/mcp")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
