package dto

import "github.com/shopspring/decimal"

// TratamientoPorTipo is one row of the treatment breakdown, ordered by count
// descending.
type TratamientoPorTipo struct {
	TipoEnfermedad string `json:"tipo_enfermedad"`
	Cantidad       int64  `json:"cantidad"`
}

// DesgloseSeveridad counts diarrhea episodes per severity; absent severities
// report 0.
type DesgloseSeveridad struct {
	Leve     int64 `json:"mild"`
	Moderada int64 `json:"moderate"`
	Severa   int64 `json:"severe"`
	Critica  int64 `json:"critical"`
}

// ReporteSanitarioResponse is the consolidated herd health report. The field
// names are the stable analytics contract consumed by every frontend view —
// do not rename.
type ReporteSanitarioResponse struct {
	TotalAnimals     int64           `json:"totalAnimals"`
	DeadAnimals      int64           `json:"deadAnimals"`
	AliveAnimals     int64           `json:"aliveAnimals"`
	MortalityPercent decimal.Decimal `json:"mortalityPercent"`
	MorbidityPercent decimal.Decimal `json:"morbidityPercent"`

	TreatedAnimals     int64                `json:"treatedAnimals"`
	TreatmentsTotal    int64                `json:"treatmentsTotal"`
	TreatmentBreakdown []TratamientoPorTipo `json:"treatmentBreakdown"`

	DiarrheaAnimals       int64             `json:"diarrheaAnimals"`
	DiarrheaEpisodesTotal int64             `json:"diarrheaEpisodesTotal"`
	DiarrheaBreakdown     DesgloseSeveridad `json:"diarrheaBreakdown"`

	// Four-way partition: every animal falls in exactly one bucket and the
	// four buckets always sum to TotalAnimals
	BothProblems  int64 `json:"bothProblems"`
	OnlyTreatment int64 `json:"onlyTreatment"`
	OnlyDiarrhea  int64 `json:"onlyDiarrhea"`
	Healthy       int64 `json:"healthy"`
}
