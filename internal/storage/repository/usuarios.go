package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// RegisterUser inserta un usuario nuevo y devuelve su UID. La unicidad del
// email la garantiza el índice único sobre lower(email); una colisión se
// reporta como ErrUniqueViolation.
func (s *Storage) RegisterUser(ctx context.Context, user models.Usuario) (string, error) {
	const op = "storage.RegisterUser"

	var newUID string
	query := `INSERT INTO usuarios (nombre, email, password_hash, rol)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Nombre, user.Email, user.PasswordHash, user.Rol).Scan(&newUID); err != nil {
		return "", mapWriteError(op, err)
	}
	return newUID, nil
}

// GetUserByEmail devuelve el usuario cuyo email coincide sin distinguir
// mayúsculas, o ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT uid, nombre, email, password_hash, rol, ultimo_login, fecha_creacion
			  FROM usuarios
			  WHERE lower(email) = lower($1)`
	return s.scanUser(op, s.DB.QueryRowContext(ctx, query, email))
}

// GetUser devuelve el usuario por su UID, o ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.Usuario, error) {
	const op = "storage.GetUser"

	query := `SELECT uid, nombre, email, password_hash, rol, ultimo_login, fecha_creacion
			  FROM usuarios
			  WHERE uid = $1`
	return s.scanUser(op, s.DB.QueryRowContext(ctx, query, userUID))
}

// UpdateUltimoLogin registra la fecha del login exitoso.
func (s *Storage) UpdateUltimoLogin(ctx context.Context, userUID string) error {
	const op = "storage.UpdateUltimoLogin"

	query := `UPDATE usuarios SET ultimo_login = now() WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePasswordHash reemplaza el hash de contraseña del usuario.
func (s *Storage) UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"

	query := `UPDATE usuarios SET password_hash = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, userUID)
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

func (s *Storage) scanUser(op string, row *sql.Row) (*models.Usuario, error) {
	u := &models.Usuario{}
	var ultimoLogin sql.NullTime
	if err := row.Scan(&u.UID, &u.Nombre, &u.Email, &u.PasswordHash,
		&u.Rol, &ultimoLogin, &u.FechaCreacion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ultimoLogin.Valid {
		u.UltimoLogin = &ultimoLogin.Time
	}
	return u, nil
}
