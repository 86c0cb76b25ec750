package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de un ternero.
const (
	EstadoVivo   = "vivo"
	EstadoMuerto = "muerto"
)

// Ternero is a calf. Owned by exactly one establecimiento; optionally linked
// to a Madre and a Rodeo — both links must share the same establecimiento.
type Ternero struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstablecimientoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ternero_caravana,priority:1"`
	// Caravana is the ear tag, unique within the establecimiento
	Caravana        string          `gorm:"not null;uniqueIndex:idx_ternero_caravana,priority:2"`
	FechaNacimiento time.Time       `gorm:"not null"`
	Estado          string          `gorm:"type:varchar(10);not null;default:'vivo'"`
	PesoActual      decimal.Decimal `gorm:"type:decimal(6,2)"`
	MadreID         *uuid.UUID      `gorm:"type:uuid;index"`
	RodeoID         *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Madre   *Madre   `gorm:"foreignKey:MadreID"`
	Rodeo   *Rodeo   `gorm:"foreignKey:RodeoID"`
	Pesajes []Pesaje `gorm:"foreignKey:TerneroID"`
}

// Pesaje is one entry of a ternero's weight series.
type Pesaje struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TerneroID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Peso      decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Fecha     time.Time       `gorm:"not null"`
	CreatedAt time.Time
}
