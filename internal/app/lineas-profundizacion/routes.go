// Package lineasprofundizacion registra las rutas del servicio.
package lineasprofundizacion

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/auth/cambiarpassword"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/auth/login"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/auth/perfil"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/auth/register"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/health"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/create"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/list"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/read"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/remove"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/search"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/stats"
	"github.com/lineasdev/lineas-profundizacion/internal/http/handlers/linea/update"
	"github.com/lineasdev/lineas-profundizacion/internal/http/middlewarectx"
	authservice "github.com/lineasdev/lineas-profundizacion/internal/services/auth"
	lineaservice "github.com/lineasdev/lineas-profundizacion/internal/services/linea"
	"github.com/lineasdev/lineas-profundizacion/internal/storage/repository"
)

// RegisterRoutes registra todas las rutas de la aplicación.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, lineaService *lineaservice.Service, db *repository.Storage) {
	// Middleware globales
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.HTTPMetrics,
	)

	writeLimiter := rate.NewLimiter(rate.Limit(5), 10)

	// Conexión y registro
	r.Post("/auth/registro", register.New(logger, authService).ServeHTTP)
	r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

	// Perfil propio, requiere token
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Get("/auth/perfil", perfil.New(logger, authService).ServeHTTP)
		r.Put("/auth/cambiar-password", cambiarpassword.New(logger, authService).ServeHTTP)
	})

	// Catálogo de lectura pública
	r.Get("/lineas", list.New(logger, lineaService).ServeHTTP)
	r.Get("/lineas/estadisticas", stats.New(logger, lineaService).ServeHTTP)
	r.Get("/lineas/buscar", search.New(logger, lineaService).ServeHTTP)
	r.Get("/lineas/{id}", read.New(logger, lineaService).ServeHTTP)

	// Escrituras del catálogo, solo administradores
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RequireAdmin(logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, writeLimiter))
		r.Post("/lineas", create.New(logger, lineaService).ServeHTTP)
		r.Put("/lineas/{id}", update.New(logger, lineaService).ServeHTTP)
		r.Delete("/lineas/{id}", remove.New(logger, lineaService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, func() error {
		return repository.CheckDatabaseReady(db)
	}).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
