package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una madre.
const (
	MadreSeca   = "seca"
	MadreOrdene = "ordene"
)

// Madre is a dam (cow). Owns zero or more terneros; deleting a madre clears
// the terneros' madre reference, it never cascades.
type Madre struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstablecimientoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Caravana          string    `gorm:"not null"`
	Estado            string    `gorm:"type:varchar(10);not null;default:'seca'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
