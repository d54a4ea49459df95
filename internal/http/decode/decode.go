// Package decode contains decoders for various HTTP artefacts
package decode

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

// decoder caches struct metadata and is safe for sharing.
var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// All collectively decodes route params, query params and form params into
// dst (a pointer to a struct)
func All(dst any, r *http.Request) error {
	if err := Form(dst, r); err != nil {
		return err
	}
	if err := Query(dst, r.URL.Query()); err != nil {
		return err
	}
	return Route(dst, r)
}

// Form decodes the request's form parameters into dst.
func Form(dst any, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, r.PostForm)
}

// Query decodes the query parameters into dst.
func Query(dst any, query url.Values) error {
	return decoder.Decode(dst, query)
}

// Route decodes the route parameters into dst.
func Route(dst any, r *http.Request) error {
	// decoder only takes map[string][]string, not map[string]string
	vars := make(map[string][]string)
	for k, v := range mux.Vars(r) {
		vars[k] = []string{v}
	}
	return decoder.Decode(dst, vars)
}
