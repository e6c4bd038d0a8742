// Package read implementa la consulta de una línea de profundización por id.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe la consulta de líneas de la capa de negocio.
type Service interface {
	Obtener(ctx context.Context, id string) (*models.Linea, error)
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
	const op = "handlers.linea.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("id de línea inválido", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Línea de profundización no encontrada"))
		return
	}

	linea, err := h.service.Obtener(r.Context(), id)
	if err != nil {
		log.Error("no se pudo obtener la línea", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	render.JSON(w, r, response.OK(linea))
}
