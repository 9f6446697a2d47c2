package health

import (
	"net/http"
	"sync/atomic"

	"todos/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Status struct {
	Status string `json:"status"`
}

// Handler answers liveness probes. Copies share the draining flag.
type Handler struct {
	draining *atomic.Bool
}

func New() Handler {
	return Handler{
		draining: &atomic.Bool{},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Drain makes subsequent probes report the server as shutting down.
func (handler *Handler) Drain() {
	handler.draining.Store(true)
}

// Health reports whether the server accepts traffic.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} response.Error
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	if handler.draining.Load() {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Status{Status: "ok"})
}
