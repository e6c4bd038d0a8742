// Package linea contiene la lógica de negocio del catálogo de líneas de
// profundización: altas, actualizaciones parciales, borrado lógico,
// listado filtrado y paginado, búsqueda por texto y estadísticas.
package linea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lineasdev/lineas-profundizacion/internal/apperr"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
	"github.com/lineasdev/lineas-profundizacion/internal/storage/repository"
)

// Límites del listado y la búsqueda.
const (
	LimiteDefecto = 10
	LimiteMaximo  = 50

	cacheTTL = time.Hour

	estadisticasCacheKey = "lineas:estadisticas"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LineaRepository describe el contrato con el almacén de líneas.
type LineaRepository interface {
	CreateLinea(ctx context.Context, linea models.Linea) (*models.Linea, error)
	GetLinea(ctx context.Context, id string) (*models.Linea, error)
	ExistsLineaByNombre(ctx context.Context, nombre, excludeID string) (bool, error)
	UpdateLinea(ctx context.Context, linea models.Linea, id string) (*models.Linea, error)
	SoftDeleteLinea(ctx context.Context, id string) error
	CountLineas(ctx context.Context, filtro models.FiltroLineas) (int, error)
	ListLineas(ctx context.Context, filtro models.FiltroLineas) ([]*models.Linea, error)
	SearchLineas(ctx context.Context, term string, limit int) ([]*models.Linea, error)
	GetEstadisticas(ctx context.Context) (*models.Estadisticas, error)
}

// Cache describe los métodos de la caché de lecturas.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service implementa las operaciones del catálogo.
type Service struct {
	repo  LineaRepository
	cache Cache
	log   *slog.Logger
}

// NewService crea un Service.
func NewService(repo LineaRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Crear da de alta una línea activa. El nombre duplicado (sin distinguir
// mayúsculas) es Conflict: el pre-chequeo responde rápido y el índice
// único del almacén decide la carrera entre creaciones concurrentes.
func (s *Service) Crear(ctx context.Context, req models.CrearLineaRequest) (*models.Linea, error) {
	nombre := strings.TrimSpace(req.Nombre)
	descripcion := strings.TrimSpace(req.Descripcion)
	coordinador := strings.TrimSpace(req.Coordinador)
	emailCoordinador := strings.ToLower(strings.TrimSpace(req.EmailCoordinador))

	if nombre == "" || descripcion == "" || coordinador == "" || emailCoordinador == "" ||
		req.AreaConocimiento == "" || req.CreditosRequeridos == nil {
		return nil, apperr.Validation("Todos los campos obligatorios deben ser proporcionados")
	}
	if *req.CreditosRequeridos < 0 {
		return nil, apperr.Validation("Los créditos requeridos deben ser un número positivo")
	}
	if !emailRegex.MatchString(emailCoordinador) {
		return nil, apperr.Validation("El email del coordinador no es válido")
	}

	exists, err := s.repo.ExistsLineaByNombre(ctx, nombre, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Ya existe una línea de profundización con ese nombre")
	}

	materias := make([]string, 0, len(req.Materias))
	for _, m := range req.Materias {
		materias = append(materias, strings.TrimSpace(m))
	}

	linea := models.Linea{
		Nombre:             nombre,
		Descripcion:        descripcion,
		Coordinador:        coordinador,
		EmailCoordinador:   emailCoordinador,
		AreaConocimiento:   req.AreaConocimiento,
		CreditosRequeridos: *req.CreditosRequeridos,
		Materias:           materias,
	}
	created, err := s.repo.CreateLinea(ctx, linea)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperr.Conflict("Ya existe una línea de profundización con ese nombre")
		}
		return nil, err
	}

	s.log.Info("línea de profundización creada",
		slog.String("id", created.ID), slog.String("nombre", created.Nombre),
		slog.String("area", created.AreaConocimiento))

	s.cacheLinea(ctx, created)
	s.invalidateEstadisticas(ctx)
	return created, nil
}

// Actualizar aplica un reemplazo parcial de campos. Si cambia el nombre se
// revalida la unicidad excluyendo la propia línea; si cambia el email del
// coordinador se revalida su forma. Cada actualización incrementa el
// contador de versión, que es solo informativo.
func (s *Service) Actualizar(ctx context.Context, id string, req models.ActualizarLineaRequest) (*models.Linea, error) {
	actual, err := s.repo.GetLinea(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Línea de profundización no encontrada")
		}
		return nil, err
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return nil, apperr.Validation("El nombre no puede estar vacío")
		}
		if !strings.EqualFold(nombre, actual.Nombre) {
			exists, err := s.repo.ExistsLineaByNombre(ctx, nombre, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperr.Conflict("Ya existe otra línea de profundización con ese nombre")
			}
		}
		actual.Nombre = nombre
	}
	if req.Descripcion != nil {
		descripcion := strings.TrimSpace(*req.Descripcion)
		if descripcion == "" {
			return nil, apperr.Validation("La descripción no puede estar vacía")
		}
		actual.Descripcion = descripcion
	}
	if req.Coordinador != nil {
		coordinador := strings.TrimSpace(*req.Coordinador)
		if coordinador == "" {
			return nil, apperr.Validation("El coordinador no puede estar vacío")
		}
		actual.Coordinador = coordinador
	}
	if req.EmailCoordinador != nil {
		email := strings.ToLower(strings.TrimSpace(*req.EmailCoordinador))
		if !emailRegex.MatchString(email) {
			return nil, apperr.Validation("El email del coordinador no es válido")
		}
		actual.EmailCoordinador = email
	}
	if req.AreaConocimiento != nil {
		actual.AreaConocimiento = *req.AreaConocimiento
	}
	if req.CreditosRequeridos != nil {
		if *req.CreditosRequeridos < 0 {
			return nil, apperr.Validation("Los créditos requeridos deben ser un número positivo")
		}
		actual.CreditosRequeridos = *req.CreditosRequeridos
	}
	if req.Materias != nil {
		materias := make([]string, 0, len(*req.Materias))
		for _, m := range *req.Materias {
			materias = append(materias, strings.TrimSpace(m))
		}
		actual.Materias = materias
	}
	if req.Estado != nil {
		actual.Estado = *req.Estado
	}

	updated, err := s.repo.UpdateLinea(ctx, *actual, id)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperr.Conflict("Ya existe otra línea de profundización con ese nombre")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Línea de profundización no encontrada")
		}
		return nil, err
	}

	s.log.Info("línea de profundización actualizada",
		slog.String("id", id), slog.Int("version", updated.Version))

	s.cacheLinea(ctx, updated)
	s.invalidateEstadisticas(ctx)
	return updated, nil
}

// Eliminar marca la línea como inactiva. Nunca hay borrado físico: la fila
// sigue siendo consultable por id y con el filtro estado=inactiva.
func (s *Service) Eliminar(ctx context.Context, id string) error {
	if err := s.repo.SoftDeleteLinea(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Línea de profundización no encontrada")
		}
		return err
	}

	s.log.Warn("línea de profundización eliminada (marcada como inactiva)",
		slog.String("id", id))

	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("no se pudo invalidar la caché", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.invalidateEstadisticas(ctx)
	return nil
}

// Obtener devuelve la línea por id, usando la caché cuando hay acierto.
func (s *Service) Obtener(ctx context.Context, id string) (*models.Linea, error) {
	var cached models.Linea
	found, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("fallo leyendo la caché", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	linea, err := s.repo.GetLinea(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Línea de profundización no encontrada")
		}
		return nil, err
	}
	s.cacheLinea(ctx, linea)
	return linea, nil
}

// Listar devuelve la página pedida y los metadatos de paginación. El conteo
// y la página son dos lecturas independientes: bajo escrituras concurrentes
// pueden divergir en el borde de página y eso se acepta.
func (s *Service) Listar(ctx context.Context, filtro models.FiltroLineas) ([]*models.Linea, *models.Paginacion, error) {
	filtro = normalizarFiltro(filtro)

	total, err := s.repo.CountLineas(ctx, filtro)
	if err != nil {
		return nil, nil, err
	}
	lineas, err := s.repo.ListLineas(ctx, filtro)
	if err != nil {
		return nil, nil, err
	}

	totalPaginas := (total + filtro.Limite - 1) / filtro.Limite
	paginacion := &models.Paginacion{
		Total:          total,
		Pagina:         filtro.Pagina,
		Limite:         filtro.Limite,
		TotalPaginas:   totalPaginas,
		TieneSiguiente: filtro.Pagina < totalPaginas,
		TieneAnterior:  filtro.Pagina > 1,
	}
	return lineas, paginacion, nil
}

// Buscar hace la búsqueda por subcadena sobre líneas activas. El término
// debe tener al menos dos caracteres.
func (s *Service) Buscar(ctx context.Context, term string, limite int) ([]*models.Linea, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < 2 {
		return nil, apperr.Validation("Término de búsqueda debe tener al menos 2 caracteres")
	}
	if limite <= 0 {
		limite = LimiteDefecto
	}
	if limite > LimiteMaximo {
		limite = LimiteMaximo
	}
	return s.repo.SearchLineas(ctx, term, limite)
}

// Estadisticas devuelve los agregados del catálogo, cacheados hasta la
// próxima mutación.
func (s *Service) Estadisticas(ctx context.Context) (*models.Estadisticas, error) {
	var cached models.Estadisticas
	found, err := s.cache.Get(ctx, estadisticasCacheKey, &cached)
	if err != nil {
		s.log.Warn("fallo leyendo la caché", slog.String("key", estadisticasCacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	stats, err := s.repo.GetEstadisticas(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, estadisticasCacheKey, stats, cacheTTL); err != nil {
		s.log.Warn("no se pudo cachear las estadísticas", slog.Any("err", err))
	}
	return stats, nil
}

// normalizarFiltro sanea página, límite y orden del listado.
func normalizarFiltro(f models.FiltroLineas) models.FiltroLineas {
	if f.Pagina < 1 {
		f.Pagina = 1
	}
	if f.Limite <= 0 {
		f.Limite = LimiteDefecto
	}
	if f.Limite > LimiteMaximo {
		f.Limite = LimiteMaximo
	}
	switch f.Ordenar {
	case "nombre", "fecha", "creditos":
	default:
		f.Ordenar = "nombre"
	}
	return f
}

func cacheKey(id string) string {
	return fmt.Sprintf("linea:%s", id)
}

func (s *Service) cacheLinea(ctx context.Context, linea *models.Linea) {
	if err := s.cache.Set(ctx, cacheKey(linea.ID), linea, cacheTTL); err != nil {
		s.log.Warn("no se pudo cachear la línea", slog.String("key", cacheKey(linea.ID)), slog.Any("err", err))
	}
}

func (s *Service) invalidateEstadisticas(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, estadisticasCacheKey); err != nil {
		s.log.Warn("no se pudo invalidar la caché", slog.String("key", estadisticasCacheKey), slog.Any("err", err))
	}
}
