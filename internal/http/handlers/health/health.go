// Package health implementa la sonda de salud del servicio.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
)

// CheckFunc comprueba que una dependencia del servicio responde.
type CheckFunc func() error

type Handler struct {
	log     *slog.Logger
	checkDB CheckFunc
}

func New(log *slog.Logger, checkDB CheckFunc) *Handler {
	return &Handler{
		log:     log,
		checkDB: checkDB,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.checkDB(); err != nil {
		h.log.Error("base de datos no disponible", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("Servicio no disponible"))
		return
	}

	render.JSON(w, r, response.OKWithMessage("Servicio operativo", map[string]any{
		"status": "ok",
	}))
}
