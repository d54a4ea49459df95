// Package http provides the kvboard web server.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/http/html"
	"github.com/kvboard/kvboard/internal/logr"
)

// shutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const shutdownTimeout = 1 * time.Second

type (
	// ServerConfig is the http server config
	ServerConfig struct {
		SSL                  bool
		CertFile, KeyFile    string
		EnableRequestLogging bool
		DevMode              bool

		// Ping probes connectivity to the storage backend; its result is
		// reported by the healthz endpoint.
		Ping func(context.Context) error

		Handlers   []internal.Handlers
		Middleware []mux.MiddlewareFunc
	}

	// Server is the kvboard http server
	Server struct {
		logr.Logger
		ServerConfig

		server *http.Server
	}

	healthzPayload struct {
		Version  string
		Commit   string
		Built    string
		Database string
	}
)

// NewServer constructs the kvboard http server
func NewServer(logger logr.Logger, cfg ServerConfig) (*Server, error) {
	if cfg.SSL {
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			return nil, fmt.Errorf("must provide both --cert-file and --key-file")
		}
	}

	r := mux.NewRouter()

	// Catch panics and return 500s
	r.Use(gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true)))

	// Redirect paths with a trailing slash to path without, e.g. /pairs/ ->
	// /pairs. Uses an HTTP301.
	r.StrictSlash(true)

	// Serve static files
	html.AddStaticHandler(r, cfg.DevMode)

	// Prometheus metrics
	r.HandleFunc("/metrics", promhttp.Handler().ServeHTTP)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		payload := healthzPayload{
			Version:  internal.Version,
			Commit:   internal.Commit,
			Built:    internal.Built,
			Database: "connected",
		}
		if cfg.Ping != nil {
			if err := cfg.Ping(r.Context()); err != nil {
				payload.Database = "disconnected"
			}
		}
		w.Header().Set("Content-type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})

	// Subrouter for application routes
	appRouter := r.NewRoute().Subrouter()

	// Subject application routes to provided middleware
	appRouter.Use(cfg.Middleware...)

	// Add handlers for each application
	for _, h := range cfg.Handlers {
		h.AddHandlers(appRouter)
	}

	// Optionally log every request
	if cfg.EnableRequestLogging {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				m := httpsnoop.CaptureMetrics(next, w, r)
				logger.Info("request",
					"duration", fmt.Sprintf("%dms", m.Duration.Milliseconds()),
					"status", m.Code,
					"method", r.Method,
					"path", fmt.Sprintf("%s?%s", r.URL.Path, r.URL.RawQuery))
			})
		})
	}

	return &Server{
		Logger:       logger,
		ServerConfig: cfg,
		server:       &http.Server{Handler: r},
	}, nil
}

// Start starts serving http traffic on the given listener and waits until the
// server exits due to error or the context is cancelled.
func (s *Server) Start(ctx context.Context, ln net.Listener) (err error) {
	errch := make(chan error)

	go func() {
		if s.SSL {
			errch <- s.server.ServeTLS(ln, s.CertFile, s.KeyFile)
		} else {
			errch <- s.server.Serve(ln)
		}
	}()

	s.Info("started server", "address", ln.Addr().String(), "ssl", s.SSL)

	// Block until server stops listening or context is cancelled.
	select {
	case err := <-errch:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.Info("gracefully shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			return s.server.Close()
		}

		return nil
	}
}
