// Package perfil implementa el handler del perfil propio.
package perfil

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lineasdev/lineas-profundizacion/internal/http/middlewarectx"
	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Service describe la consulta de perfil de la capa de negocio.
type Service interface {
	Perfil(ctx context.Context, userUID string) (*models.Usuario, error)
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
	const op = "handlers.auth.perfil"

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

	usuario, err := h.service.Perfil(r.Context(), userUID)
	if err != nil {
		log.Error("no se pudo obtener el perfil", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	render.JSON(w, r, response.Response{Success: true, Usuario: usuario})
}
