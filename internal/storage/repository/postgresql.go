// Package repository implementa el almacén de datos sobre PostgreSQL
// para usuarios y líneas de profundización: altas, lecturas,
// actualizaciones, borrado lógico, listados paginados, búsqueda y agregados.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Registro del driver pgx para database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// Errores de almacenamiento que la capa de servicios traduce al dominio.
var (
	// ErrNotFound la fila pedida no existe.
	ErrNotFound = errors.New("row not found")
	// ErrUniqueViolation el almacén rechazó la escritura por índice único.
	// Es la señal autoritativa de conflicto; los pre-chequeos de la capa
	// de servicios son solo un atajo para fallar rápido.
	ErrUniqueViolation = errors.New("unique violation")
)

// Storage encapsula la conexión con PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New abre la conexión con PostgreSQL y la verifica con un ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady comprueba que el esquema está migrado.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'lineas_profundizacion'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table lineas_profundizacion missing or query error: %w", err)
	}
	return nil
}

// mapWriteError traduce errores del driver a los errores del almacén.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
