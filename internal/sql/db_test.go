package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultMaxConnections(t *testing.T) {
	tests := []struct {
		name    string
		connstr string
		want    string
	}{
		{"empty dsn", "", "pool_max_conns=20"},
		{"non-empty dsn", "user=kv host=localhost", "user=kv host=localhost pool_max_conns=20"},
		{"url", "postgres:///kvboard", "postgres:///kvboard?pool_max_conns=20"},
		{"url with query", "postgres:///kvboard?host=/tmp", "postgres:///kvboard?host=/tmp&pool_max_conns=20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := setDefaultMaxConnections(tt.connstr, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
