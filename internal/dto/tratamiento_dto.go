package dto

type CrearTratamientoRequest struct {
	TipoEnfermedad    string  `json:"tipo_enfermedad" validate:"required,min=1,max=150"`
	Turno             string  `json:"turno" validate:"required,oneof=manana tarde"`
	TerneroID         *string `json:"ternero_id" validate:"omitempty,uuid"`
	Medicamento       *string `json:"medicamento" validate:"omitempty,max=150"`
	Fecha             string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Notas             *string `json:"notas"`
	EstablecimientoID *string `json:"establecimiento_id" validate:"omitempty,uuid"`
}

type ActualizarTratamientoRequest struct {
	TipoEnfermedad string  `json:"tipo_enfermedad" validate:"omitempty,min=1,max=150"`
	Turno          string  `json:"turno" validate:"omitempty,oneof=manana tarde"`
	TerneroID      *string `json:"ternero_id" validate:"omitempty,uuid"`
	Medicamento    *string `json:"medicamento" validate:"omitempty,max=150"`
	Fecha          string  `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Notas          *string `json:"notas"`
}

type TratamientoFilter struct {
	TipoEnfermedad string `form:"tipo_enfermedad"`
	Turno          string `form:"turno"`
	TerneroID      string `form:"ternero_id"`
	Page           int    `form:"page,default=1"`
	Limit          int    `form:"limit,default=50"`
}

type TratamientoResponse struct {
	ID                string  `json:"id"`
	EstablecimientoID string  `json:"establecimiento_id"`
	TipoEnfermedad    string  `json:"tipo_enfermedad"`
	Turno             string  `json:"turno"`
	TerneroID         *string `json:"ternero_id"`
	Medicamento       *string `json:"medicamento"`
	Fecha             string  `json:"fecha"`
	Notas             *string `json:"notas"`
}

type TratamientoListResponse struct {
	Items []TratamientoResponse `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
