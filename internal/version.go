package internal

// Build-time parameters set -ldflags
var (
	Version = "unknown"
	Commit  = "unknown"
	Built   = "unknown"
)
