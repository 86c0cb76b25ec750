package dto

type CrearEstablecimientoRequest struct {
	Nombre        string  `json:"nombre" validate:"required,min=2,max=150"`
	EmailContacto *string `json:"email_contacto" validate:"omitempty,email"`
}

type ActualizarEstablecimientoRequest struct {
	Nombre        string  `json:"nombre" validate:"omitempty,min=2,max=150"`
	EmailContacto *string `json:"email_contacto" validate:"omitempty,email"`
}

type EstablecimientoResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	EmailContacto *string `json:"email_contacto"`
	Activo        bool    `json:"activo"`
}
