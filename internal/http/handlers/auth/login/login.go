// Package login implementa el handler de inicio de sesión.
package login

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

// Service describe la operación de login de la capa de negocio.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *models.Usuario, error)
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
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
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

	token, usuario, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login fallido", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	log.Info("login exitoso", slog.String("uid", usuario.UID))
	render.JSON(w, r, response.Auth("Login exitoso", token, usuario))
}
