// Package remove implementa la desactivación lógica de líneas de profundización.
package remove

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
)

// Service describe la eliminación lógica de líneas de la capa de negocio.
type Service interface {
	Eliminar(ctx context.Context, id string) error
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
	const op = "handlers.linea.remove"

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

	if err := h.service.Eliminar(r.Context(), id); err != nil {
		log.Error("no se pudo eliminar la línea", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	log.Info("línea desactivada", slog.String("linea_id", id))

	render.JSON(w, r, response.OKWithMessage("Línea eliminada exitosamente", nil))
}
