package pair

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/http/html"
	"github.com/kvboard/kvboard/internal/logr"
	"github.com/kvboard/kvboard/internal/sql"
)

type (
	Service struct {
		logr.Logger

		db  *pgdb
		web *web
	}

	Options struct {
		*sql.DB
		Renderer *html.Renderer
		logr.Logger
	}
)

func NewService(opts Options) *Service {
	svc := Service{
		Logger: opts.Logger,
		db:     &pgdb{opts.DB},
	}
	svc.web = &web{
		Renderer: opts.Renderer,
		svc:      &svc,
	}
	return &svc
}

func (s *Service) AddHandlers(r *mux.Router) {
	s.web.addHandlers(r)
}

// Set stores the pair with the given key, or, if the key is already in use,
// overwrites the existing pair's value. Both key and value must be non-empty.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return &internal.ErrMissingParameter{Parameter: "key"}
	}
	if value == "" {
		return &internal.ErrMissingParameter{Parameter: "value"}
	}
	if err := s.db.set(ctx, key, value); err != nil {
		s.Error(err, "setting pair", "key", key)
		return err
	}
	operationsMetric.WithLabelValues("set").Inc()
	s.V(1).Info("set pair", "key", key)
	return nil
}

// List returns every stored pair in insertion order. An empty store produces
// an empty list, not an error.
func (s *Service) List(ctx context.Context) ([]Pair, error) {
	pairs, err := s.db.list(ctx)
	if err != nil {
		s.Error(err, "listing pairs")
		return nil, err
	}
	return pairs, nil
}

// Delete removes the pair with the given key. Deleting an absent key is a
// no-op success.
func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return &internal.ErrMissingParameter{Parameter: "key"}
	}
	if err := s.db.delete(ctx, key); err != nil {
		s.Error(err, "deleting pair", "key", key)
		return err
	}
	operationsMetric.WithLabelValues("delete").Inc()
	s.V(1).Info("deleted pair", "key", key)
	return nil
}

// Ping verifies the storage backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.ping(ctx)
}
