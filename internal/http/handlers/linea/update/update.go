// Package update implementa la actualización parcial de líneas de profundización.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe la actualización de líneas de la capa de negocio.
type Service interface {
	Actualizar(ctx context.Context, id string, req models.ActualizarLineaRequest) (*models.Linea, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.linea.update"

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

	var req models.ActualizarLineaRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("no se pudo decodificar el cuerpo de la petición", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Cuerpo de la petición inválido"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)
		log.Error("petición inválida", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	linea, err := h.service.Actualizar(r.Context(), id, req)
	if err != nil {
		log.Error("no se pudo actualizar la línea", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	log.Info("línea actualizada", slog.String("linea_id", linea.ID))

	render.JSON(w, r, response.OKWithMessage("Línea actualizada exitosamente", linea))
}
