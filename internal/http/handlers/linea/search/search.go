// Package search implementa la búsqueda de texto sobre líneas activas.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe la búsqueda de líneas de la capa de negocio.
type Service interface {
	Buscar(ctx context.Context, termino string, limite int) ([]*models.Linea, error)
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
	const op = "handlers.linea.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	termino := r.URL.Query().Get("q")
	limite, _ := strconv.Atoi(r.URL.Query().Get("limite"))

	lineas, err := h.service.Buscar(r.Context(), termino, limite)
	if err != nil {
		log.Error("no se pudo buscar líneas", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	if lineas == nil {
		lineas = []*models.Linea{}
	}

	render.JSON(w, r, response.Listado(lineas, nil))
}
