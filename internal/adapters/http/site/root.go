// Package site serves the embedded evaluation form.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded form at / together with its assets.
// Unknown paths fall through to the file server and return 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.FileServer(FS())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
