package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/lineasdev/lineas-profundizacion/internal/http/response"
)

// RateLimitMiddleware limita las escrituras con un cupo global de proceso.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("demasiadas peticiones", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("Demasiadas peticiones, intente más tarde"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
