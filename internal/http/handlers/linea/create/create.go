// Package create implementa la creación de líneas de profundización.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe la creación de líneas de la capa de negocio.
type Service interface {
	Crear(ctx context.Context, req models.CrearLineaRequest) (*models.Linea, error)
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
	const op = "handlers.linea.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CrearLineaRequest
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

	linea, err := h.service.Crear(r.Context(), req)
	if err != nil {
		log.Error("no se pudo crear la línea", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	log.Info("línea creada", slog.String("linea_id", linea.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("Línea de profundización creada exitosamente", linea))
}
