package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles del sistema.
const (
	RolAdministrador = "administrador"
	RolVeterinario   = "veterinario"
	RolOperario      = "operario"
)

// Usuario stores system users with role-based access.
/// EstablecimientoID is nil only for administradores: a veterinario or operario
// must be assigned to an establecimiento before performing any operation.
type Usuario struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username          string    `gorm:"uniqueIndex;not null"`
	Nombre            string    `gorm:"not null"`
	Email             *string
	PasswordHash      string     `gorm:"not null"`
	Rol               string     `gorm:"type:varchar(20);not null"`
	EstablecimientoID *uuid.UUID `gorm:"type:uuid;index"`
	Activo            bool       `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Establecimiento *Establecimiento `gorm:"foreignKey:EstablecimientoID"`
}
