// Package response define el sobre JSON uniforme del servicio y las ayudas
// para construirlo: éxitos con datos, listados con conteo y paginación,
// respuestas de autenticación y errores, incluidos los de validación.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/lineasdev/lineas-profundizacion/internal/apperr"
	"github.com/lineasdev/lineas-profundizacion/internal/models"
)

// Response es el sobre de todas las respuestas del servicio.
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data,omitempty"`
	Token      string             `json:"token,omitempty"`
	Usuario    *models.Usuario    `json:"usuario,omitempty"`
	Count      *int               `json:"count,omitempty"`
	Paginacion *models.Paginacion `json:"paginacion,omitempty"`
}

// OK respuesta exitosa con datos.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKWithMessage respuesta exitosa con mensaje y datos opcionales.
func OKWithMessage(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Auth respuesta de registro o login: token más usuario.
func Auth(message, token string, usuario *models.Usuario) Response {
	return Response{Success: true, Message: message, Token: token, Usuario: usuario}
}

// Listado respuesta de listado con conteo y, si aplica, paginación.
func Listado(data []*models.Linea, paginacion *models.Paginacion) Response {
	count := len(data)
	return Response{Success: true, Data: data, Count: &count, Paginacion: paginacion}
}

// Error respuesta de falla con mensaje legible.
func Error(msg string) Response {
	return Response{Success: false, Message: msg}
}

// ValidationError arma la respuesta de error a partir de las violaciones
// de validación, en un solo mensaje legible.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s es obligatorio", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no alcanza el mínimo requerido", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s tiene un valor fuera del conjunto permitido", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s debe ser un uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no es válido", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}

// RenderAppError convierte cualquier error en el sobre de falla con su
// código de estado; los errores sin etiqueta salen como 500 genérico.
func RenderAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	render.Status(r, appErr.Status)
	render.JSON(w, r, Error(appErr.Message))
}
