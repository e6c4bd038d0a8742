// Package auth contiene la lógica de negocio de cuentas y sesiones:
// registro, login, perfil, cambio de contraseña y validación de tokens.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lineasdev/lineas-profundizacion/internal/apperr"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/jwt"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/password"
	"github.com/lineasdev/lineas-profundizacion/internal/lib/sl"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
	"github.com/lineasdev/lineas-profundizacion/internal/storage/repository"
)

// emailRegex patrón mínimo de forma de email, el mismo del resto del sistema.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository describe el contrato con el almacén de usuarios.
type UserRepository interface {
	// RegisterUser guarda un usuario nuevo y devuelve su UID.
	RegisterUser(ctx context.Context, user models.Usuario) (string, error)
	// GetUserByEmail devuelve el usuario por email o repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.Usuario, error)
	// GetUser devuelve el usuario por UID o repository.ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.Usuario, error)
	// UpdateUltimoLogin registra la fecha del login exitoso.
	UpdateUltimoLogin(ctx context.Context, userUID string) error
	// UpdatePasswordHash reemplaza el hash de contraseña.
	UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error
}

// Service implementa el flujo de registro y autenticación.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewService crea un Service.
func NewService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Registro crea la cuenta, emite un token y devuelve ambos. El rol por
// defecto es estudiante. El email duplicado es Conflict: el pre-chequeo
// falla rápido y el índice único del almacén cierra la carrera.
func (s *Service) Registro(ctx context.Context, req models.RegistroRequest) (string, *models.Usuario, error) {
	nombre := strings.TrimSpace(req.Nombre)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if nombre == "" || email == "" || req.Password == "" {
		return "", nil, apperr.Validation("Nombre, email y contraseña son requeridos")
	}
	if len(req.Password) < 6 {
		return "", nil, apperr.Validation("La contraseña debe tener al menos 6 caracteres")
	}
	if !emailRegex.MatchString(email) {
		return "", nil, apperr.Validation("El formato del email no es válido")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		s.log.Warn("intento de registro con email existente", slog.String("email", email))
		return "", nil, apperr.Conflict("El usuario ya existe")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", nil, err
	}

	rol := req.Rol
	if rol == "" {
		rol = models.RolEstudiante
	}
	user := models.Usuario{
		Nombre:       nombre,
		Email:        email,
		PasswordHash: hashed,
		Rol:          rol,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return "", nil, apperr.Conflict("El usuario ya existe")
		}
		return "", nil, err
	}

	token, err := s.jwtMaker.GenerateToken(uid, rol)
	if err != nil {
		return "", nil, err
	}
	user.UID = uid
	return token, &user, nil
}

// Login verifica las credenciales y emite un token. El mensaje de error no
// distingue "email desconocido" de "contraseña incorrecta" para no filtrar
// qué cuentas existen.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.Usuario, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || rawPassword == "" {
		return "", nil, apperr.Validation("Email y contraseña son requeridos")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("intento de login con email no encontrado", slog.String("email", email))
			return "", nil, apperr.Unauthenticated("Credenciales inválidas")
		}
		return "", nil, err
	}

	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			// hash corrupto en el almacén: misma respuesta al cliente,
			// pero queda registrado como error y no como credencial mala
			s.log.Error("hash de contraseña corrupto", slog.String("uid", user.UID), sl.Err(err))
		} else {
			s.log.Warn("intento de login con contraseña incorrecta", slog.String("email", email))
		}
		return "", nil, apperr.Unauthenticated("Credenciales inválidas")
	}

	if user.Rol == models.RolInactivo {
		return "", nil, apperr.Forbidden("Cuenta inactiva. Contacte al administrador.")
	}

	if err = s.users.UpdateUltimoLogin(ctx, user.UID); err != nil {
		return "", nil, err
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Rol)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Perfil devuelve la cuenta del usuario autenticado.
func (s *Service) Perfil(ctx context.Context, userUID string) (*models.Usuario, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	return user, nil
}

// CambiarPassword verifica la contraseña actual y guarda el hash de la
// nueva. Los tokens emitidos siguen siendo válidos hasta su expiración:
// no hay lista de revocación, es una debilidad documentada del diseño.
func (s *Service) CambiarPassword(ctx context.Context, userUID, actual, nueva string) error {
	if actual == "" || nueva == "" {
		return apperr.Validation("La contraseña actual y la nueva contraseña son requeridas")
	}
	if len(nueva) < 6 {
		return apperr.Validation("La nueva contraseña debe tener al menos 6 caracteres")
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Usuario no encontrado")
		}
		return err
	}

	if err = password.CompareHash(user.PasswordHash, actual); err != nil {
		s.log.Warn("intento de cambio de contraseña con credenciales incorrectas",
			slog.String("uid", userUID))
		return apperr.Unauthenticated("La contraseña actual es incorrecta")
	}

	hashed, err := password.GetHash(nueva)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userUID, hashed)
}

// ValidateToken valida el token de sesión y devuelve sus claims.
func (s *Service) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, apperr.Wrap(http.StatusUnauthorized, "Token inválido o expirado", err)
	}
	return claims, nil
}
