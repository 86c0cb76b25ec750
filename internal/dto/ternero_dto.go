package dto

import "github.com/shopspring/decimal"

type CrearTerneroRequest struct {
	Caravana        string  `json:"caravana" validate:"required,min=1,max=50"`
	FechaNacimiento string  `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	PesoNacimiento  *decimal.Decimal `json:"peso_nacimiento" validate:"omitempty,gt=0"`
	MadreID         *string `json:"madre_id" validate:"omitempty,uuid"`
	RodeoID         *string `json:"rodeo_id" validate:"omitempty,uuid"`
	// Only honored for admin callers; non-admins are forced to their own
	EstablecimientoID *string `json:"establecimiento_id" validate:"omitempty,uuid"`
}

type ActualizarTerneroRequest struct {
	Caravana string  `json:"caravana" validate:"omitempty,min=1,max=50"`
	Estado   string  `json:"estado" validate:"omitempty,oneof=vivo muerto"`
	MadreID  *string `json:"madre_id" validate:"omitempty,uuid"`
	RodeoID  *string `json:"rodeo_id" validate:"omitempty,uuid"`
}

type TerneroFilter struct {
	Estado  string `form:"estado"`
	RodeoID string `form:"rodeo_id"`
	MadreID string `form:"madre_id"`
	Page    int    `form:"page,default=1"`
	Limit   int    `form:"limit,default=50"`
}

type RegistrarPesajeRequest struct {
	Peso  decimal.Decimal `json:"peso" validate:"required,gt=0"`
	Fecha string          `json:"fecha" validate:"required,datetime=2006-01-02"`
}

type PesajeResponse struct {
	ID    string          `json:"id"`
	Peso  decimal.Decimal `json:"peso"`
	Fecha string          `json:"fecha"`
}

type TerneroResponse struct {
	ID                string          `json:"id"`
	EstablecimientoID string          `json:"establecimiento_id"`
	Caravana          string          `json:"caravana"`
	FechaNacimiento   string          `json:"fecha_nacimiento"`
	Estado            string          `json:"estado"`
	PesoActual        decimal.Decimal `json:"peso_actual"`
	MadreID           *string         `json:"madre_id"`
	RodeoID           *string         `json:"rodeo_id"`
}

type TerneroListResponse struct {
	Items []TerneroResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
