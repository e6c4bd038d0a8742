// Package models contiene el modelo de dominio del servicio: usuarios y
// líneas de profundización, junto con los tipos auxiliares para recibir
// datos de peticiones JSON antes de validarlos.
package models

import "time"

// Roles de usuario reconocidos por el servicio.
const (
	RolEstudiante = "estudiante"
	RolAdmin      = "admin"
	// RolInactivo marca una cuenta desactivada; el login lo rechaza con 403.
	RolInactivo = "inactivo"
)

// Usuario representa una cuenta registrada.
type Usuario struct {
	UID           string     `json:"id"`
	Nombre        string     `json:"nombre"`
	Email         string     `json:"email"` // único, en minúsculas
	PasswordHash  string     `json:"-"`     // nunca se serializa
	Rol           string     `json:"rol"`
	UltimoLogin   *time.Time `json:"ultimoLogin,omitempty"`
	FechaCreacion time.Time  `json:"fechaCreacion"`
}

// RegistroRequest datos de entrada del registro.
type RegistroRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol,omitempty" validate:"omitempty,oneof=estudiante admin"`
}

// LoginRequest datos de entrada del login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CambiarPasswordRequest datos de entrada del cambio de contraseña.
type CambiarPasswordRequest struct {
	PasswordActual string `json:"passwordActual" validate:"required"`
	NuevaPassword  string `json:"nuevaPassword" validate:"required,min=6"`
}
