package model

import (
	"time"

	"github.com/google/uuid"
)

// Turnos de aplicacion de tratamientos.
const (
	TurnoManana = "manana"
	TurnoTarde  = "tarde"
)

// Tratamiento records one treatment application. TerneroID is optional
// (herd-level treatments exist); when set, the ternero must belong to the
// same establecimiento.
type Tratamiento struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstablecimientoID uuid.UUID `gorm:"type:uuid;index;not null"`
	// TipoEnfermedad is free text — breeders use their own nomenclature
	TipoEnfermedad string     `gorm:"not null;index"`
	Turno          string     `gorm:"type:varchar(10);not null"`
	TerneroID      *uuid.UUID `gorm:"type:uuid;index"`
	Medicamento    *string
	Fecha          time.Time `gorm:"not null"`
	Notas          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Ternero *Ternero `gorm:"foreignKey:TerneroID"`
}
