package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Valid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  bool
	}{
		{"defaults", Config{Database: "postgres:///kvboard"}, false},
		{"missing database", Config{}, true},
		{"ssl without cert", Config{Database: "postgres:///kvboard", SSL: true, KeyFile: "key.pem"}, true},
		{"ssl without key", Config{Database: "postgres:///kvboard", SSL: true, CertFile: "cert.pem"}, true},
		{"ssl with cert and key", Config{Database: "postgres:///kvboard", SSL: true, CertFile: "cert.pem", KeyFile: "key.pem"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Valid()
			if tt.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
