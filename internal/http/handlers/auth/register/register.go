// Package register implementa el handler de registro de usuarios.
package register

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

// Service describe la operación de registro de la capa de negocio.
type Service interface {
	Registro(ctx context.Context, req models.RegistroRequest) (string, *models.Usuario, error)
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
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegistroRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("no se pudo decodificar el cuerpo", sl.Err(err))
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

	token, usuario, err := h.service.Registro(r.Context(), req)
	if err != nil {
		log.Error("no se pudo registrar el usuario", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	log.Info("usuario registrado", slog.String("uid", usuario.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Auth("Usuario registrado exitosamente", token, usuario))
}
