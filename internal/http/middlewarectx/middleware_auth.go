// Package middlewarectx contiene los middleware HTTP del servicio: la
// verificación del token de sesión, el control de rol de administrador,
// el límite de tasa y las métricas de latencia.
//
// JWTMiddleware extrae el token Bearer del encabezado Authorization, lo
// valida y deja el uid y el rol del usuario en el contexto del request.
// Ante cualquier falla responde 401 con el sobre JSON de error. No guarda
// estado entre requests.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/jwt"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Key tipo para las claves del contexto del request.
type Key string

const (
	// UserUID clave del uid del usuario autenticado.
	UserUID Key = "useruid"
	// Rol clave del rol del usuario autenticado.
	Rol Key = "rol"
)

// TokenValidator describe la validación del token de sesión.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware devuelve el middleware que exige un token Bearer válido.
func JWTMiddleware(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("encabezado de autorización ausente o inválido")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Acceso denegado. Token requerido."))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := validator.ValidateToken(tokenStr)
			if err != nil {
				log.Error("token inválido o expirado", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token inválido o expirado"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, claims.Subject)
			ctx = context.WithValue(ctx, Rol, claims.Rol)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin exige que la identidad ya autenticada tenga rol admin;
// si no, responde 403. Debe montarse después de JWTMiddleware.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			rol, ok := r.Context().Value(Rol).(string)
			if !ok || rol != models.RolAdmin {
				log.With(slog.String("op", op)).Warn("acceso denegado por rol",
					slog.String("rol", rol))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Se requiere rol de administrador"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
