package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de rodeo.
const (
	RodeoCrianza      = "crianza"
	RodeoRecria       = "recria"
	RodeoEngorde      = "engorde"
	RodeoReproduccion = "reproduccion"
	RodeoOtro         = "otro"
)

// Estados de rodeo.
const (
	RodeoActivo   = "activo"
	RodeoInactivo = "inactivo"
)

// Rodeo is a herd within an establecimiento. Owns zero or more terneros;
// a rodeo with assigned terneros can only be deactivated, never deleted.
type Rodeo struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstablecimientoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre            string    `gorm:"not null"`
	Tipo              string    `gorm:"type:varchar(20);not null;default:'otro'"`
	Estado            string    `gorm:"type:varchar(10);not null;default:'activo'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
