// Package sl contiene ayudas para el logger slog, en particular para
// registrar errores con un atributo uniforme.
package sl

import "log/slog"

// Err devuelve un slog.Attr con clave "error" y el texto del error.
//
// Ejemplo:
//
//	log.Error("no se pudo guardar", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
