package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims son los datos de sesión transportados en el JWT.
// El uid del usuario viaja en Subject; el rol es un claim propio.
type CustomClaims struct {
	Rol                  string `json:"rol"`
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt, Subject, Issuer
}

// GenerateToken emite un token HS256 con subject=userUID, el emisor del
// servicio, iat=ahora y exp=ahora+TTL.
func (j *MakerImpl) GenerateToken(userUID, rol string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Rol: rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken valida el token y devuelve sus claims. El algoritmo queda
// fijado a HS256 y el emisor al del servicio: un token firmado con otro
// método o emitido por otro servicio se rechaza aunque la firma cuadre.
// Un token en exp exacto ya se considera expirado.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(j.secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
