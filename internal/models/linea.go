package models

import "time"

// Estados posibles de una línea. El borrado nunca es físico: solo la
// transición activa -> inactiva.
const (
	EstadoActiva   = "activa"
	EstadoInactiva = "inactiva"
)

// AreasConocimiento es el conjunto cerrado de áreas admitidas.
var AreasConocimiento = []string{"Software", "Hardware", "Redes", "IA", "Ciberseguridad", "Datos"}

// Linea representa una línea de profundización del catálogo.
type Linea struct {
	ID                 string    `json:"id"`
	Nombre             string    `json:"nombre"` // único sin distinguir mayúsculas
	Descripcion        string    `json:"descripcion"`
	Coordinador        string    `json:"coordinador"`
	EmailCoordinador   string    `json:"emailCoordinador"`
	AreaConocimiento   string    `json:"areaConocimiento"`
	CreditosRequeridos int       `json:"creditosRequeridos"`
	Materias           []string  `json:"materias"` // orden de inserción, solo para mostrar
	Estado             string    `json:"estado"`
	Version            int       `json:"version"` // contador de actualizaciones, solo informativo
	FechaCreacion      time.Time `json:"fechaCreacion"`
}

// CrearLineaRequest datos de entrada para crear una línea.
type CrearLineaRequest struct {
	Nombre             string   `json:"nombre" validate:"required"`
	Descripcion        string   `json:"descripcion" validate:"required"`
	Coordinador        string   `json:"coordinador" validate:"required"`
	EmailCoordinador   string   `json:"emailCoordinador" validate:"required"`
	AreaConocimiento   string   `json:"areaConocimiento" validate:"required,oneof=Software Hardware Redes IA Ciberseguridad Datos"`
	CreditosRequeridos *int     `json:"creditosRequeridos" validate:"required,min=0"`
	Materias           []string `json:"materias,omitempty"`
}

// ActualizarLineaRequest datos de entrada para la actualización parcial.
// Los punteros distinguen "no enviado" de "enviado vacío".
type ActualizarLineaRequest struct {
	Nombre             *string   `json:"nombre,omitempty"`
	Descripcion        *string   `json:"descripcion,omitempty"`
	Coordinador        *string   `json:"coordinador,omitempty"`
	EmailCoordinador   *string   `json:"emailCoordinador,omitempty"`
	AreaConocimiento   *string   `json:"areaConocimiento,omitempty" validate:"omitempty,oneof=Software Hardware Redes IA Ciberseguridad Datos"`
	CreditosRequeridos *int      `json:"creditosRequeridos,omitempty" validate:"omitempty,min=0"`
	Materias           *[]string `json:"materias,omitempty"`
	Estado             *string   `json:"estado,omitempty" validate:"omitempty,oneof=activa inactiva"`
}

// FiltroLineas parámetros ya saneados del listado.
type FiltroLineas struct {
	Areas   []string // vacío: sin restricción por área
	Estado  string   // vacío: sin restricción por estado
	Pagina  int      // >= 1
	Limite  int      // acotado a [1,50]
	Ordenar string   // nombre | fecha | creditos
}

// Paginacion metadatos derivados del listado; nunca se almacenan.
type Paginacion struct {
	Total          int  `json:"total"`
	Pagina         int  `json:"pagina"`
	Limite         int  `json:"limite"`
	TotalPaginas   int  `json:"totalPaginas"`
	TieneSiguiente bool `json:"tieneSiguiente"`
	TieneAnterior  bool `json:"tieneAnterior"`
}

// Estadisticas agregados del catálogo.
type Estadisticas struct {
	TotalLineas      int            `json:"totalLineas"`
	LineasActivas    int            `json:"lineasActivas"`
	LineasInactivas  int            `json:"lineasInactivas"`
	LineasPorArea    map[string]int `json:"lineasPorArea"`
	CreditosPromedio float64        `json:"creditosPromedio"`
}
