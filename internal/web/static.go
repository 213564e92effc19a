package web

import (
	"net/http"
	"path/filepath"
)

// StartAssets serves the dashboard stylesheet and script from <root>/assets
func StartAssets(mux *http.ServeMux, rootPath string) {
	mux.Handle(
		"/assets/", http.StripPrefix(
			"/assets",
			http.FileServer(
				http.Dir(
					filepath.Join(rootPath, "assets"),
				),
			),
		),
	)
}
