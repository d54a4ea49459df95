package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/kvboard/kvboard/internal/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_SSLValidation(t *testing.T) {
	_, err := NewServer(logr.Discard(), ServerConfig{SSL: true})
	assert.Error(t, err)
}

func TestServer_Healthz(t *testing.T) {
	tests := []struct {
		name string
		ping func(context.Context) error
		want string
	}{
		{"connected", func(context.Context) error { return nil }, "connected"},
		{"disconnected", func(context.Context) error { return errors.New("unreachable") }, "disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(logr.Discard(), ServerConfig{Ping: tt.ping})
			require.NoError(t, err)

			ln, err := net.Listen("tcp", "127.0.0.1:0")
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			done := make(chan error)
			go func() { done <- server.Start(ctx, ln) }()

			resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
			require.NoError(t, err)
			defer resp.Body.Close()

			var payload struct{ Database string }
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
			assert.Equal(t, tt.want, payload.Database)

			cancel()
			require.NoError(t, <-done)
		})
	}
}
