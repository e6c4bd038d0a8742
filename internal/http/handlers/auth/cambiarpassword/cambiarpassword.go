// Package cambiarpassword implementa el cambio de contraseña del usuario autenticado.
package cambiarpassword

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/lineasdev/lineas-profundizacion/internal/http/middlewarectx"
	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe el cambio de contraseña de la capa de negocio.
type Service interface {
	CambiarPassword(ctx context.Context, userUID, passwordActual, nuevaPassword string) error
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
	const op = "handlers.auth.cambiarpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("uid de usuario ausente en el contexto")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Acceso denegado. Token requerido."))
		return
	}

	var req models.CambiarPasswordRequest
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

	if err := h.service.CambiarPassword(r.Context(), userUID, req.PasswordActual, req.NuevaPassword); err != nil {
		log.Error("no se pudo cambiar la contraseña", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	log.Info("contraseña actualizada", slog.String("user_uid", userUID))

	render.JSON(w, r, response.OKWithMessage("Contraseña actualizada exitosamente", nil))
}
