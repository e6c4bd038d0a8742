// Package apperr define el error etiquetado del dominio: un código de
// estado HTTP más un mensaje apto para el cliente. Cualquier error sin
// etiqueta se convierte en un 500 genérico en el borde HTTP.
package apperr

import (
	"errors"
	"net/http"
)

// Error es la falla etiquetada que viaja por las capas del servicio.
type Error struct {
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

// Unwrap expone la causa para errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.err }

// New crea un error etiquetado sin causa.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap crea un error etiquetado conservando la causa.
func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, err: err}
}

// Validation entrada corregible por el cliente (400).
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthenticated token ausente, inválido o credenciales erróneas (401).
func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden identidad válida sin el rol requerido (403).
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound recurso inexistente (404).
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict violación de unicidad (409).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// From devuelve el error etiquetado si lo hay; cualquier otro error se
// reporta como 500 con un mensaje seguro, sin filtrar detalle interno.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(http.StatusInternalServerError, "Error interno del servidor")
}
