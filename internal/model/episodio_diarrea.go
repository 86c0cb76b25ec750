package model

import (
	"time"

	"github.com/google/uuid"
)

// Severidades de un episodio de diarrea.
const (
	SeveridadLeve     = "leve"
	SeveridadModerada = "moderada"
	SeveridadSevera   = "severa"
	SeveridadCritica  = "critica"
)

// SeveridadUrgente reports whether a severity requires immediate attention.
func SeveridadUrgente(s string) bool {
	return s == SeveridadSevera || s == SeveridadCritica
}

// EpisodioDiarrea is one recorded diarrhea occurrence for a ternero.
// NumeroEpisodio is assigned sequentially per ternero at creation time and is
// immutable afterwards; the composite unique index is what makes the
// count-then-insert assignment safe under concurrency (the losing insert gets
// a duplicate-key error and retries with a fresh count).
type EpisodioDiarrea struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstablecimientoID uuid.UUID `gorm:"type:uuid;index;not null"`
	TerneroID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_episodio_ternero_numero,priority:1"`
	NumeroEpisodio    int       `gorm:"not null;uniqueIndex:idx_episodio_ternero_numero,priority:2"`
	Severidad         string    `gorm:"type:varchar(10);not null"`
	Fecha             time.Time `gorm:"not null"`
	Notas             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Ternero *Ternero `gorm:"foreignKey:TerneroID"`
}
