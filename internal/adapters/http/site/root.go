// Package site serves the pre-built front-end.
package site

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// Error constants
var (
	ErrNotDirectory = errors.New("static path is not a directory")
)

// Register mounts the static handler on every GET path not claimed by
// another route.
func Register(_ context.Context, r chi.Router, h http.Handler) {
	if r == nil {
		panic("router is nil")
	}
	r.Get("/*", h.ServeHTTP)
	r.Head("/*", h.ServeHTTP)
}

// Handler serves files from dir. When dir is missing the embedded
// placeholder is served instead and embedded reports true.
func Handler(dir string) (h http.Handler, embedded bool, err error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.FileServer(FS()), true, nil
	case err != nil:
		return nil, false, err
	case !info.IsDir():
		return nil, false, ErrNotDirectory
	}
	return http.FileServer(http.Dir(dir)), false, nil
}
