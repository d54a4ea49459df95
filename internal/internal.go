// Package internal is code only for consumption from within the kvboard
// project.
package internal

import "github.com/gorilla/mux"

// Handlers is an http application with handlers
type Handlers interface {
	// AddHandlers adds http handlers to the router.
	AddHandlers(*mux.Router)
}
