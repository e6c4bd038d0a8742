// Package stats implementa las estadísticas agregadas del catálogo de líneas.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe las estadísticas de la capa de negocio.
type Service interface {
	Estadisticas(ctx context.Context) (*models.Estadisticas, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.linea.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	estadisticas, err := h.service.Estadisticas(r.Context())
	if err != nil {
		log.Error("no se pudo calcular las estadísticas", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	render.JSON(w, r, response.OK(estadisticas))
}
