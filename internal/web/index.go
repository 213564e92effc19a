package web

import (
	"net/http"
	"os"
	"path/filepath"

	"minimalmon/internal/netx"
)

// StartIndex registers the dashboard page with the given mux
func StartIndex(mux *http.ServeMux, rootPath string) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handleIndex(w, r, rootPath)
	})
}

// handleIndex serves the main dashboard page
func handleIndex(w http.ResponseWriter, r *http.Request, rootPath string) {
	if r.Method != http.MethodGet {
		netx.WriteMethodNotAllowed(w)
		return
	}
	if r.URL.Path != "/" {
		netx.WriteNotFound(w, "Not found")
		return
	}

	index := filepath.Join(rootPath, "index.html")
	if _, err := os.Stat(index); err != nil {
		netx.WriteNotFound(w, "Dashboard page not found")
		return
	}
	http.ServeFile(w, r, index)
}
