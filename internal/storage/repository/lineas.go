package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

const lineaColumns = `id, nombre, descripcion, coordinador, email_coordinador,
			      area_conocimiento, creditos_requeridos, materias, estado, version, fecha_creacion`

// CreateLinea inserta una línea nueva con estado activa y devuelve la fila
// creada. La unicidad del nombre la garantiza el índice sobre lower(nombre).
func (s *Storage) CreateLinea(ctx context.Context, linea models.Linea) (*models.Linea, error) {
	const op = "storage.CreateLinea"

	materias, err := json.Marshal(linea.Materias)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO lineas_profundizacion
			      (nombre, descripcion, coordinador, email_coordinador,
			       area_conocimiento, creditos_requeridos, materias, estado)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, 'activa')
			  RETURNING ` + lineaColumns
	row := s.DB.QueryRowContext(ctx, query,
		linea.Nombre, linea.Descripcion, linea.Coordinador, linea.EmailCoordinador,
		linea.AreaConocimiento, linea.CreditosRequeridos, materias)
	created, err := scanLinea(row)
	if err != nil {
		return nil, mapWriteError(op, err)
	}
	return created, nil
}

// GetLinea devuelve la línea por su id, esté activa o inactiva.
func (s *Storage) GetLinea(ctx context.Context, id string) (*models.Linea, error) {
	const op = "storage.GetLinea"

	query := `SELECT ` + lineaColumns + `
			  FROM lineas_profundizacion
			  WHERE id = $1`
	linea, err := scanLinea(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return linea, nil
}

// ExistsLineaByNombre indica si ya hay una línea con ese nombre sin
// distinguir mayúsculas, excluyendo opcionalmente un id (para updates).
// Es el pre-chequeo de camino rápido; la garantía real es el índice único.
func (s *Storage) ExistsLineaByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	const op = "storage.ExistsLineaByNombre"

	var exclude *string
	if excludeID != "" {
		exclude = &excludeID
	}
	var exists bool
	query := `SELECT EXISTS (
			      SELECT 1 FROM lineas_profundizacion
			      WHERE lower(nombre) = lower($1)
			        AND ($2::uuid IS NULL OR id <> $2::uuid)
			  )`
	if err := s.DB.QueryRowContext(ctx, query, nombre, exclude).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateLinea reemplaza los campos de la línea e incrementa el contador de
// versión. El contador es solo una señal de auditoría: una escritura
// obsoleta no se rechaza.
func (s *Storage) UpdateLinea(ctx context.Context, linea models.Linea, id string) (*models.Linea, error) {
	const op = "storage.UpdateLinea"

	materias, err := json.Marshal(linea.Materias)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE lineas_profundizacion
			  SET nombre = $1, descripcion = $2, coordinador = $3,
			      email_coordinador = $4, area_conocimiento = $5,
			      creditos_requeridos = $6, materias = $7, estado = $8,
			      version = version + 1
			  WHERE id = $9
			  RETURNING ` + lineaColumns
	row := s.DB.QueryRowContext(ctx, query,
		linea.Nombre, linea.Descripcion, linea.Coordinador, linea.EmailCoordinador,
		linea.AreaConocimiento, linea.CreditosRequeridos, materias, linea.Estado, id)
	updated, err := scanLinea(row)
	if err != nil {
		return nil, mapWriteError(op, err)
	}
	return updated, nil
}

// SoftDeleteLinea marca la línea como inactiva. La fila sigue siendo
// consultable por id y con el filtro estado=inactiva.
func (s *Storage) SoftDeleteLinea(ctx context.Context, id string) error {
	const op = "storage.SoftDeleteLinea"

	query := `UPDATE lineas_profundizacion SET estado = 'inactiva' WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CountLineas cuenta las líneas que satisfacen el filtro. Se ejecuta como
// lectura independiente del listado; bajo escrituras concurrentes ambos
// pueden divergir transitoriamente y eso se acepta.
func (s *Storage) CountLineas(ctx context.Context, filtro models.FiltroLineas) (int, error) {
	const op = "storage.CountLineas"

	where, args := buildLineaFilter(filtro)
	var total int
	query := `SELECT COUNT(*) FROM lineas_profundizacion` + where
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListLineas devuelve la página pedida del listado filtrado y ordenado.
func (s *Storage) ListLineas(ctx context.Context, filtro models.FiltroLineas) ([]*models.Linea, error) {
	const op = "storage.ListLineas"

	where, args := buildLineaFilter(filtro)

	var orderBy string
	switch filtro.Ordenar {
	case "fecha":
		orderBy = "fecha_creacion DESC"
	case "creditos":
		orderBy = "creditos_requeridos ASC"
	default:
		orderBy = "nombre ASC"
	}

	offset := (filtro.Pagina - 1) * filtro.Limite
	query := `SELECT ` + lineaColumns + `
			  FROM lineas_profundizacion` + where + `
			  ORDER BY ` + orderBy + `
			  LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, filtro.Limite, offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectLineas(op, rows)
}

// SearchLineas busca por subcadena sin distinguir mayúsculas en nombre,
// descripción, coordinador, área y materias, solo sobre líneas activas.
// El orden de los resultados es el natural del almacén.
func (s *Storage) SearchLineas(ctx context.Context, term string, limit int) ([]*models.Linea, error) {
	const op = "storage.SearchLineas"

	pattern := "%" + term + "%"
	query := `SELECT ` + lineaColumns + `
			  FROM lineas_profundizacion
			  WHERE estado = 'activa'
			    AND (nombre ILIKE $1
			      OR descripcion ILIKE $1
			      OR coordinador ILIKE $1
			      OR area_conocimiento ILIKE $1
			      OR materias::text ILIKE $1)
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectLineas(op, rows)
}

// GetEstadisticas calcula los agregados del catálogo: totales por estado,
// conteo por área (descendente) y promedio de créditos.
func (s *Storage) GetEstadisticas(ctx context.Context) (*models.Estadisticas, error) {
	const op = "storage.GetEstadisticas"

	stats := &models.Estadisticas{LineasPorArea: make(map[string]int)}

	query := `SELECT COUNT(*),
			     COUNT(*) FILTER (WHERE estado = 'activa'),
			     COUNT(*) FILTER (WHERE estado = 'inactiva'),
			     COALESCE(AVG(creditos_requeridos), 0)
			  FROM lineas_profundizacion`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&stats.TotalLineas,
		&stats.LineasActivas, &stats.LineasInactivas, &stats.CreditosPromedio); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT area_conocimiento, COUNT(*)
			  FROM lineas_profundizacion
			  GROUP BY area_conocimiento
			  ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var area string
		var count int
		if err = rows.Scan(&area, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.LineasPorArea[area] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// buildLineaFilter arma la cláusula WHERE del listado. Sin área no hay
// restricción por área; sin estado, tampoco por estado.
func buildLineaFilter(filtro models.FiltroLineas) (string, []any) {
	var conds []string
	var args []any

	if len(filtro.Areas) == 1 {
		args = append(args, filtro.Areas[0])
		conds = append(conds, fmt.Sprintf("area_conocimiento = $%d", len(args)))
	} else if len(filtro.Areas) > 1 {
		args = append(args, filtro.Areas)
		conds = append(conds, fmt.Sprintf("area_conocimiento = ANY($%d)", len(args)))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLinea(row rowScanner) (*models.Linea, error) {
	var l models.Linea
	var materias []byte
	if err := row.Scan(&l.ID, &l.Nombre, &l.Descripcion, &l.Coordinador,
		&l.EmailCoordinador, &l.AreaConocimiento, &l.CreditosRequeridos,
		&materias, &l.Estado, &l.Version, &l.FechaCreacion); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(materias, &l.Materias); err != nil {
		return nil, err
	}
	if l.Materias == nil {
		l.Materias = []string{}
	}
	return &l, nil
}

func collectLineas(op string, rows *sql.Rows) ([]*models.Linea, error) {
	var result []*models.Linea
	for rows.Next() {
		linea, err := scanLinea(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, linea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
