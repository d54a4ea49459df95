package daemon

import (
	"fmt"

	"github.com/kvboard/kvboard/internal/logr"
)

// Config configures the kvboardd daemon. Descriptions of each field can be
// found in the flag definitions in ./cmd/kvboardd
type Config struct {
	Address              string
	Database             string
	SSL                  bool
	CertFile, KeyFile    string
	EnableRequestLogging bool
	DevMode              bool
	LogConfig            logr.Config
}

func (cfg *Config) Valid() error {
	if cfg.Database == "" {
		return fmt.Errorf("--database cannot be empty")
	}
	if cfg.SSL && (cfg.CertFile == "" || cfg.KeyFile == "") {
		return fmt.Errorf("must provide both --cert-file and --key-file")
	}
	return nil
}
