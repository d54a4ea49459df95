package html

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
)

var (
	// Files embedded within the go binary
	//
	//go:embed static
	embedded embed.FS

	// Files sourced from local disk, for development purposes: changes to
	// templates and assets are picked up without rebuilding the binary.
	localDisk fs.FS
)

func init() {
	// The working directory differs depending on where go build/test is
	// invoked, so work out the root of the project repo and then join the
	// relative path to the assets.
	wd, err := os.Getwd()
	if err != nil {
		panic(err.Error())
	}
	root := findModuleRoot(wd)
	localDisk = os.DirFS(filepath.Join(root, "internal/http/html"))
}

func findModuleRoot(dir string) (roots string) {
	if dir == "" {
		panic("dir not set")
	}
	dir = filepath.Clean(dir)

	// Look for enclosing go.mod.
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}
		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}
	return ""
}

// AddStaticHandler adds a handler to router serving static assets
// (JS, CSS, etc) from within the go binary, or, in dev mode, from local disk.
func AddStaticHandler(r *mux.Router, devMode bool) {
	var assets fs.FS = embedded
	if devMode {
		assets = localDisk
	}

	r = r.NewRoute().Subrouter()

	// Middleware to add cache control headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Instruct browser to cache static content for a very long time (1
			// year), and rely on the cache buster to insert a hash to each
			// requested URL, ensuring any content change invalidates the cache.
			w.Header().Set("Cache-Control", "max-age=31536000")
			next.ServeHTTP(w, r)
		})
	})
	r.PathPrefix("/static/").Handler(http.FileServer(&CacheBuster{assets})).Methods("GET")
}
