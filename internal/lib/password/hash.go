// Package password implementa el hash y la verificación segura de contraseñas.
//
// GetHash genera un hash bcrypt con salt aleatorio para almacenamiento.
// CompareHash verifica una contraseña contra el hash guardado en tiempo
// independiente de dónde difieran los bytes.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash recibe la contraseña en claro y devuelve su hash bcrypt.
// El factor de costo es el de bcrypt por defecto (10 rondas).
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash compara el hash bcrypt almacenado con la contraseña recibida.
// Devuelve nil si coinciden; un hash corrupto produce un error distinto
// de bcrypt.ErrMismatchedHashAndPassword, que el llamador puede inspeccionar.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
