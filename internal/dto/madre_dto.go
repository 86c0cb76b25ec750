package dto

type CrearMadreRequest struct {
	Caravana          string  `json:"caravana" validate:"required,min=1,max=50"`
	Estado            string  `json:"estado" validate:"omitempty,oneof=seca ordene"`
	EstablecimientoID *string `json:"establecimiento_id" validate:"omitempty,uuid"`
}

type ActualizarMadreRequest struct {
	Caravana string `json:"caravana" validate:"omitempty,min=1,max=50"`
	Estado   string `json:"estado" validate:"omitempty,oneof=seca ordene"`
}

type MadreResponse struct {
	ID                string `json:"id"`
	EstablecimientoID string `json:"establecimiento_id"`
	Caravana          string `json:"caravana"`
	Estado            string `json:"estado"`
}
