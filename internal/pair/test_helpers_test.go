package pair

import (
	"context"

	"github.com/kvboard/kvboard/internal"
)

// fakeWebService is an in-memory webService mirroring the upsert, ordering
// and idempotent-delete semantics of the postgres implementation.
type fakeWebService struct {
	pairs     []Pair
	pingError error
}

func (f *fakeWebService) Set(_ context.Context, key, value string) error {
	if key == "" {
		return &internal.ErrMissingParameter{Parameter: "key"}
	}
	if value == "" {
		return &internal.ErrMissingParameter{Parameter: "value"}
	}
	if f.pingError != nil {
		return f.pingError
	}
	for i, p := range f.pairs {
		if p.Key == key {
			f.pairs[i].Value = value
			return nil
		}
	}
	f.pairs = append(f.pairs, Pair{Key: key, Value: value})
	return nil
}

func (f *fakeWebService) List(context.Context) ([]Pair, error) {
	if f.pingError != nil {
		return nil, f.pingError
	}
	return f.pairs, nil
}

func (f *fakeWebService) Delete(_ context.Context, key string) error {
	if f.pingError != nil {
		return f.pingError
	}
	for i, p := range f.pairs {
		if p.Key == key {
			f.pairs = append(f.pairs[:i], f.pairs[i+1:]...)
			return nil
		}
	}
	// deleting an absent key is a no-op
	return nil
}

func (f *fakeWebService) Ping(context.Context) error {
	return f.pingError
}
