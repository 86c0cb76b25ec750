package model

import (
	"time"

	"github.com/google/uuid"
)

// Establecimiento is the tenancy root: every animal, madre, tratamiento,
// episodio and rodeo belongs to exactly one establecimiento.
// Never hard-deleted — only toggled via Activo.
type Establecimiento struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	// EmailContacto receives sanitary alert emails (episodios severos/criticos)
	EmailContacto *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
