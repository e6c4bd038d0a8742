package linea

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lineasdev/lineas-profundizacion/internal/apperr"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
	"github.com/lineasdev/lineas-profundizacion/internal/storage/repository"
)

// MockLineaRepository implementa la interfaz linea.LineaRepository
type MockLineaRepository struct {
	mock.Mock
}

func (m *MockLineaRepository) CreateLinea(ctx context.Context, linea models.Linea) (*models.Linea, error) {
	args := m.Called(ctx, linea)
	if res := args.Get(0); res != nil {
		return res.(*models.Linea), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLineaRepository) GetLinea(ctx context.Context, id string) (*models.Linea, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Linea), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLineaRepository) ExistsLineaByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	args := m.Called(ctx, nombre, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLineaRepository) UpdateLinea(ctx context.Context, linea models.Linea, id string) (*models.Linea, error) {
	args := m.Called(ctx, linea, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Linea), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLineaRepository) SoftDeleteLinea(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLineaRepository) CountLineas(ctx context.Context, filtro models.FiltroLineas) (int, error) {
	args := m.Called(ctx, filtro)
	return args.Int(0), args.Error(1)
}

func (m *MockLineaRepository) ListLineas(ctx context.Context, filtro models.FiltroLineas) ([]*models.Linea, error) {
	args := m.Called(ctx, filtro)
	if res := args.Get(0); res != nil {
		return res.([]*models.Linea), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLineaRepository) SearchLineas(ctx context.Context, term string, limit int) ([]*models.Linea, error) {
	args := m.Called(ctx, term, limit)
	if res := args.Get(0); res != nil {
		return res.([]*models.Linea), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLineaRepository) GetEstadisticas(ctx context.Context) (*models.Estadisticas, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*models.Estadisticas), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCache implementa la interfaz linea.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestService(repo LineaRepository, cache Cache) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewService(repo, cache, logger)
}

// permissiveCache acepta cualquier operación de caché.
func permissiveCache() *MockCache {
	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	cache.On("Invalidate", mock.Anything, mock.Anything).Return(nil).Maybe()
	return cache
}

func creditos(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func TestCrear(t *testing.T) {
	const lineaID = "3c7a9d41-0b6e-4f1a-8a2c-abcdefabcdef"

	validReq := models.CrearLineaRequest{
		Nombre:             "IA Aplicada",
		Descripcion:        "Aprendizaje automático en producción",
		Coordinador:        "Dra. Gómez",
		EmailCoordinador:   "Gomez@Uni.edu",
		AreaConocimiento:   "IA",
		CreditosRequeridos: creditos(12),
		Materias:           []string{" Aprendizaje Automático "},
	}

	t.Run("creación exitosa normaliza los campos", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("ExistsLineaByNombre", mock.Anything, "IA Aplicada", "").Return(false, nil)
		repo.On("CreateLinea", mock.Anything, mock.MatchedBy(func(l models.Linea) bool {
			return l.EmailCoordinador == "gomez@uni.edu" && l.Materias[0] == "Aprendizaje Automático"
		})).Return(&models.Linea{ID: lineaID, Nombre: "IA Aplicada", Estado: models.EstadoActiva}, nil)

		svc := newTestService(repo, permissiveCache())
		created, err := svc.Crear(context.Background(), validReq)

		require.NoError(t, err)
		assert.Equal(t, lineaID, created.ID)
		assert.Equal(t, models.EstadoActiva, created.Estado)
		repo.AssertExpectations(t)
	})

	t.Run("campos obligatorios ausentes", func(t *testing.T) {
		svc := newTestService(new(MockLineaRepository), permissiveCache())
		_, err := svc.Crear(context.Background(), models.CrearLineaRequest{Nombre: "IA Aplicada"})

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "Todos los campos obligatorios deben ser proporcionados", appErr.Message)
	})

	t.Run("créditos negativos", func(t *testing.T) {
		req := validReq
		req.CreditosRequeridos = creditos(-1)

		svc := newTestService(new(MockLineaRepository), permissiveCache())
		_, err := svc.Crear(context.Background(), req)

		appErr := apperr.From(err)
		assert.Equal(t, "Los créditos requeridos deben ser un número positivo", appErr.Message)
	})

	t.Run("email del coordinador sin forma válida", func(t *testing.T) {
		req := validReq
		req.EmailCoordinador = "gomez-arroba-uni"

		svc := newTestService(new(MockLineaRepository), permissiveCache())
		_, err := svc.Crear(context.Background(), req)

		appErr := apperr.From(err)
		assert.Equal(t, "El email del coordinador no es válido", appErr.Message)
	})

	t.Run("nombre duplicado detectado en el pre-chequeo", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("ExistsLineaByNombre", mock.Anything, "IA Aplicada", "").Return(true, nil)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Crear(context.Background(), validReq)

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusConflict, appErr.Status)
		assert.Equal(t, "Ya existe una línea de profundización con ese nombre", appErr.Message)
	})

	t.Run("carrera cerrada por el índice único", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("ExistsLineaByNombre", mock.Anything, "IA Aplicada", "").Return(false, nil)
		repo.On("CreateLinea", mock.Anything, mock.Anything).Return(nil, repository.ErrUniqueViolation)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Crear(context.Background(), validReq)

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusConflict, appErr.Status)
	})
}

func TestActualizar(t *testing.T) {
	const lineaID = "3c7a9d41-0b6e-4f1a-8a2c-abcdefabcdef"

	base := &models.Linea{
		ID: lineaID, Nombre: "IA Aplicada", Descripcion: "desc",
		Coordinador: "Dra. Gómez", EmailCoordinador: "gomez@uni.edu",
		AreaConocimiento: "IA", CreditosRequeridos: 12, Version: 2,
	}

	t.Run("actualiza solo los campos enviados", func(t *testing.T) {
		copia := *base
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).Return(&copia, nil)
		repo.On("UpdateLinea", mock.Anything, mock.MatchedBy(func(l models.Linea) bool {
			return l.CreditosRequeridos == 15 && l.Nombre == "IA Aplicada"
		}), lineaID).Return(&models.Linea{ID: lineaID, CreditosRequeridos: 15, Version: 3}, nil)

		svc := newTestService(repo, permissiveCache())
		updated, err := svc.Actualizar(context.Background(), lineaID, models.ActualizarLineaRequest{
			CreditosRequeridos: creditos(15),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, updated.Version)
		repo.AssertExpectations(t)
	})

	t.Run("línea no existe", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).Return(nil, repository.ErrNotFound)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Actualizar(context.Background(), lineaID, models.ActualizarLineaRequest{})

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})

	t.Run("cambio de mayúsculas del propio nombre no consulta unicidad", func(t *testing.T) {
		copia := *base
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).Return(&copia, nil)
		repo.On("UpdateLinea", mock.Anything, mock.Anything, lineaID).
			Return(&models.Linea{ID: lineaID, Nombre: "ia aplicada", Version: 3}, nil)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Actualizar(context.Background(), lineaID, models.ActualizarLineaRequest{
			Nombre: strPtr("ia aplicada"),
		})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsLineaByNombre", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nombre nuevo duplicado", func(t *testing.T) {
		copia := *base
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).Return(&copia, nil)
		repo.On("ExistsLineaByNombre", mock.Anything, "Otra Línea", lineaID).Return(true, nil)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Actualizar(context.Background(), lineaID, models.ActualizarLineaRequest{
			Nombre: strPtr("Otra Línea"),
		})

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusConflict, appErr.Status)
		assert.Equal(t, "Ya existe otra línea de profundización con ese nombre", appErr.Message)
	})

	t.Run("nombre vacío", func(t *testing.T) {
		copia := *base
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).Return(&copia, nil)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Actualizar(context.Background(), lineaID, models.ActualizarLineaRequest{
			Nombre: strPtr("   "),
		})

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
	})
}

func TestEliminar(t *testing.T) {
	const lineaID = "3c7a9d41-0b6e-4f1a-8a2c-abcdefabcdef"

	t.Run("marca como inactiva e invalida la caché", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("SoftDeleteLinea", mock.Anything, lineaID).Return(nil)

		cache := new(MockCache)
		cache.On("Invalidate", mock.Anything, "linea:"+lineaID).Return(nil)
		cache.On("Invalidate", mock.Anything, "lineas:estadisticas").Return(nil)

		svc := newTestService(repo, cache)
		err := svc.Eliminar(context.Background(), lineaID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("línea no existe", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("SoftDeleteLinea", mock.Anything, lineaID).Return(repository.ErrNotFound)

		svc := newTestService(repo, permissiveCache())
		err := svc.Eliminar(context.Background(), lineaID)

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})
}

func TestObtener(t *testing.T) {
	const lineaID = "3c7a9d41-0b6e-4f1a-8a2c-abcdefabcdef"

	t.Run("acierto de caché no toca el almacén", func(t *testing.T) {
		repo := new(MockLineaRepository)

		cache := new(MockCache)
		cache.On("Get", mock.Anything, "linea:"+lineaID, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(*models.Linea)
				out.ID = lineaID
				out.Nombre = "IA Aplicada"
			}).Return(true, nil)

		svc := newTestService(repo, cache)
		linea, err := svc.Obtener(context.Background(), lineaID)

		require.NoError(t, err)
		assert.Equal(t, "IA Aplicada", linea.Nombre)
		repo.AssertNotCalled(t, "GetLinea", mock.Anything, mock.Anything)
	})

	t.Run("fallo de caché lee el almacén y cachea", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).
			Return(&models.Linea{ID: lineaID, Nombre: "IA Aplicada"}, nil)

		cache := new(MockCache)
		cache.On("Get", mock.Anything, "linea:"+lineaID, mock.Anything).Return(false, nil)
		cache.On("Set", mock.Anything, "linea:"+lineaID, mock.Anything, mock.Anything).Return(nil)

		svc := newTestService(repo, cache)
		linea, err := svc.Obtener(context.Background(), lineaID)

		require.NoError(t, err)
		assert.Equal(t, lineaID, linea.ID)
		cache.AssertExpectations(t)
	})

	t.Run("línea no existe", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("GetLinea", mock.Anything, lineaID).Return(nil, repository.ErrNotFound)

		svc := newTestService(repo, permissiveCache())
		_, err := svc.Obtener(context.Background(), lineaID)

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
		assert.Equal(t, "Línea de profundización no encontrada", appErr.Message)
	})
}

func TestListar(t *testing.T) {
	t.Run("normaliza página, límite y orden", func(t *testing.T) {
		esperado := models.FiltroLineas{Pagina: 1, Limite: LimiteDefecto, Ordenar: "nombre"}

		repo := new(MockLineaRepository)
		repo.On("CountLineas", mock.Anything, esperado).Return(0, nil)
		repo.On("ListLineas", mock.Anything, esperado).Return(nil, nil)

		svc := newTestService(repo, permissiveCache())
		_, paginacion, err := svc.Listar(context.Background(), models.FiltroLineas{
			Pagina: -3, Limite: 0, Ordenar: "saldo",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, paginacion.Pagina)
		assert.Equal(t, LimiteDefecto, paginacion.Limite)
		repo.AssertExpectations(t)
	})

	t.Run("límite acotado al máximo", func(t *testing.T) {
		esperado := models.FiltroLineas{Pagina: 1, Limite: LimiteMaximo, Ordenar: "nombre"}

		repo := new(MockLineaRepository)
		repo.On("CountLineas", mock.Anything, esperado).Return(0, nil)
		repo.On("ListLineas", mock.Anything, esperado).Return(nil, nil)

		svc := newTestService(repo, permissiveCache())
		_, _, err := svc.Listar(context.Background(), models.FiltroLineas{Limite: 500})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("metadatos de paginación", func(t *testing.T) {
		filtro := models.FiltroLineas{Pagina: 2, Limite: 5, Ordenar: "fecha"}

		repo := new(MockLineaRepository)
		repo.On("CountLineas", mock.Anything, filtro).Return(12, nil)
		repo.On("ListLineas", mock.Anything, filtro).
			Return([]*models.Linea{{ID: "1"}, {ID: "2"}}, nil)

		svc := newTestService(repo, permissiveCache())
		lineas, paginacion, err := svc.Listar(context.Background(), filtro)

		require.NoError(t, err)
		assert.Len(t, lineas, 2)
		assert.Equal(t, 12, paginacion.Total)
		assert.Equal(t, 3, paginacion.TotalPaginas)
		assert.True(t, paginacion.TieneSiguiente)
		assert.True(t, paginacion.TieneAnterior)
	})
}

func TestBuscar(t *testing.T) {
	t.Run("término demasiado corto", func(t *testing.T) {
		svc := newTestService(new(MockLineaRepository), permissiveCache())
		_, err := svc.Buscar(context.Background(), " a ", 10)

		appErr := apperr.From(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "Término de búsqueda debe tener al menos 2 caracteres", appErr.Message)
	})

	t.Run("límite por defecto y acotado", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("SearchLineas", mock.Anything, "redes", LimiteDefecto).Return(nil, nil)
		repo.On("SearchLineas", mock.Anything, "redes", LimiteMaximo).Return(nil, nil)

		svc := newTestService(repo, permissiveCache())

		_, err := svc.Buscar(context.Background(), "redes", 0)
		require.NoError(t, err)

		_, err = svc.Buscar(context.Background(), "redes", 999)
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})
}

func TestEstadisticas(t *testing.T) {
	t.Run("acierto de caché", func(t *testing.T) {
		repo := new(MockLineaRepository)

		cache := new(MockCache)
		cache.On("Get", mock.Anything, "lineas:estadisticas", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(*models.Estadisticas)
				out.TotalLineas = 4
			}).Return(true, nil)

		svc := newTestService(repo, cache)
		stats, err := svc.Estadisticas(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalLineas)
		repo.AssertNotCalled(t, "GetEstadisticas", mock.Anything)
	})

	t.Run("fallo de caché consulta y cachea", func(t *testing.T) {
		repo := new(MockLineaRepository)
		repo.On("GetEstadisticas", mock.Anything).
			Return(&models.Estadisticas{TotalLineas: 7, LineasActivas: 5}, nil)

		cache := new(MockCache)
		cache.On("Get", mock.Anything, "lineas:estadisticas", mock.Anything).Return(false, nil)
		cache.On("Set", mock.Anything, "lineas:estadisticas", mock.Anything, mock.Anything).Return(nil)

		svc := newTestService(repo, cache)
		stats, err := svc.Estadisticas(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, stats.TotalLineas)
		cache.AssertExpectations(t)
	})
}
