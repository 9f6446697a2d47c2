package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var static embed.FS

type Handler struct {
	files http.Handler
}

func New() Handler {
	root, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}

	return Handler{
		files: http.FileServer(http.FS(root)),
	}
}

// Router serves the single page client at the site root.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.files.ServeHTTP)
}
