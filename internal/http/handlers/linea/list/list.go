// Package list implementa el listado filtrado y paginado de líneas de profundización.
package list

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

// Service describe el listado de líneas de la capa de negocio.
type Service interface {
	Listar(ctx context.Context, filtro models.FiltroLineas) ([]*models.Linea, *models.Paginacion, error)
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
	const op = "handlers.linea.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filtro := parseFiltro(r)

	lineas, paginacion, err := h.service.Listar(r.Context(), filtro)
	if err != nil {
		log.Error("no se pudo listar las líneas", sl.Err(err))
		response.RenderAppError(w, r, err)
		return
	}

	if lineas == nil {
		lineas = []*models.Linea{}
	}

	render.JSON(w, r, response.Listado(lineas, paginacion))
}

// parseFiltro lee los parámetros de consulta sin validar rangos:
// la capa de negocio normaliza página y límite.
func parseFiltro(r *http.Request) models.FiltroLineas {
	query := r.URL.Query()

	filtro := models.FiltroLineas{
		Areas:   query["area"],
		Estado:  query.Get("estado"),
		Ordenar: query.Get("ordenar"),
	}

	if pagina, err := strconv.Atoi(query.Get("pagina")); err == nil {
		filtro.Pagina = pagina
	}
	if limite, err := strconv.Atoi(query.Get("limite")); err == nil {
		filtro.Limite = limite
	}

	return filtro
}
