package dto

// Alert tags carried on episode responses. These names are part of the
// frontend contract — do not rename.
const (
	AlertaRecurrente    = "recurring"
	AlertaAltaSeveridad = "high-severity"
)

type RegistrarEpisodioRequest struct {
	TerneroID string  `json:"ternero_id" validate:"required,uuid"`
	Severidad string  `json:"severidad" validate:"required,oneof=leve moderada severa critica"`
	Fecha     string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Notas     *string `json:"notas"`
}

type ActualizarEpisodioRequest struct {
	Severidad string  `json:"severidad" validate:"omitempty,oneof=leve moderada severa critica"`
	Fecha     string  `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Notas     *string `json:"notas"`
	TerneroID *string `json:"ternero_id" validate:"omitempty,uuid"`
	// NumeroEpisodio is immutable; any attempt to change it is rejected
	NumeroEpisodio *int `json:"episodeNumber"`
}

// EpisodioResponse keeps the frontend's stable field names for the episode
// number and alert tags; the rest follows the usual snake_case convention.
type EpisodioResponse struct {
	ID                string   `json:"id"`
	EstablecimientoID string   `json:"establecimiento_id"`
	TerneroID         string   `json:"ternero_id"`
	Severidad         string   `json:"severidad"`
	EpisodeNumber     int      `json:"episodeNumber"`
	Fecha             string   `json:"fecha"`
	Notas             *string  `json:"notas"`
	Alerts            []string `json:"alerts"`
}

type EpisodioListResponse struct {
	Items []EpisodioResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type EpisodioFilter struct {
	TerneroID string `form:"ternero_id"`
	Severidad string `form:"severidad"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=50"`
}

// EstadisticasEpisodiosResponse summarizes a ternero's episode history.
type EstadisticasEpisodiosResponse struct {
	TerneroID          string  `json:"ternero_id"`
	TotalEpisodios     int     `json:"total_episodios"`
	UltimoEpisodio     *string `json:"ultimo_episodio"`
	DiasDesdeUltimo    *int    `json:"dias_desde_ultimo"`
	SeveridadFrecuente *string `json:"severidad_frecuente"`
	RequiereAtencion   bool    `json:"requiere_atencion"`
}
