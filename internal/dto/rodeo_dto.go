package dto

import "github.com/shopspring/decimal"

type CrearRodeoRequest struct {
	Nombre            string  `json:"nombre" validate:"required,min=1,max=100"`
	Tipo              string  `json:"tipo" validate:"required,oneof=crianza recria engorde reproduccion otro"`
	EstablecimientoID *string `json:"establecimiento_id" validate:"omitempty,uuid"`
}

type ActualizarRodeoRequest struct {
	Nombre string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Tipo   string `json:"tipo" validate:"omitempty,oneof=crianza recria engorde reproduccion otro"`
}

type RodeoResponse struct {
	ID                string `json:"id"`
	EstablecimientoID string `json:"establecimiento_id"`
	Nombre            string `json:"nombre"`
	Tipo              string `json:"tipo"`
	Estado            string `json:"estado"`
}

// EstadisticasRodeoResponse is the per-rodeo roll-up: the same health
// computation as the establishment-wide report, restricted to the rodeo's
// terneros, plus the average current weight. Field names are the analytics
// contract consumed by the frontend.
type EstadisticasRodeoResponse struct {
	RodeoID          string          `json:"rodeo_id"`
	Nombre           string          `json:"nombre"`
	TotalAnimals     int64           `json:"totalAnimals"`
	DeadAnimals      int64           `json:"deadAnimals"`
	AliveAnimals     int64           `json:"aliveAnimals"`
	MortalityPercent decimal.Decimal `json:"mortalityPercent"`
	MorbidityPercent decimal.Decimal `json:"morbidityPercent"`
	AverageWeight    decimal.Decimal `json:"averageWeight"`
	BothProblems     int64           `json:"bothProblems"`
	OnlyTreatment    int64           `json:"onlyTreatment"`
	OnlyDiarrhea     int64           `json:"onlyDiarrhea"`
	Healthy          int64           `json:"healthy"`
}
