// Package jwt implementa la emisión y validación de tokens de sesión JWT
// con claims propios del servicio.
//
// Maker define la interfaz para generar y verificar tokens con el uid y el
// rol del usuario. MakerImpl es la implementación concreta firmada con
// HMAC-SHA256 y un secreto de proceso.
package jwt

import (
	"time"
)

// Issuer es la etiqueta de emisor incluida y exigida en cada token.
const Issuer = "lineas-profundizacion-api"

// Maker describe la interfaz para emitir y verificar tokens de sesión.
type Maker interface {
	// GenerateToken emite un token firmado para el usuario y rol dados.
	GenerateToken(userUID, rol string) (string, error)
	// ParseToken valida firma, emisor y expiración, y devuelve los claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implementa Maker con un secreto compartido y un TTL fijo.
type MakerImpl struct {
	secretKey string        // secreto de firma, configuración de proceso
	tokenTTL  time.Duration // tiempo de vida del token
}

// NewJWTMaker crea un MakerImpl con el secreto y TTL indicados.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
