package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/repository"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"
	"github.com/manucavallera/Ganaderia-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// umbralRecurrente: from the 4th episode on, the calf needs specialist
// attention.
const umbralRecurrente = 3

// AvisoDispatcher enqueues sanitary alert emails. *worker.Dispatcher
// satisfies it; nil disables avisos (unit tests, degraded mode).
type AvisoDispatcher interface {
	EnqueueAviso(ctx context.Context, payload interface{}) error
}

// EpisodioService is the diarrhea episode ledger: it assigns per-ternero
// sequential episode numbers and derives clinical alerts as data.
type EpisodioService interface {
	Registrar(ctx context.Context, f tenancy.Filtro, req dto.RegistrarEpisodioRequest) (*dto.EpisodioResponse, error)
	ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.EpisodioResponse, error)
	Listar(ctx context.Context, f tenancy.Filtro, filter dto.EpisodioFilter) (*dto.EpisodioListResponse, error)
	Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarEpisodioRequest) (*dto.EpisodioResponse, error)
	Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error
	EstadisticasPorTernero(ctx context.Context, f tenancy.Filtro, terneroID uuid.UUID) (*dto.EstadisticasEpisodiosResponse, error)
}

type episodioService struct {
	repo        repository.EpisodioRepository
	terneroRepo repository.TerneroRepository
	estRepo     repository.EstablecimientoRepository
	dispatcher  AvisoDispatcher
}

func NewEpisodioService(
	repo repository.EpisodioRepository,
	terneroRepo repository.TerneroRepository,
	estRepo repository.EstablecimientoRepository,
	dispatcher AvisoDispatcher,
) EpisodioService {
	return &episodioService{
		repo:        repo,
		terneroRepo: terneroRepo,
		estRepo:     estRepo,
		dispatcher:  dispatcher,
	}
}

// Registrar assigns numero_episodio = count+1 and persists. The count and
// the insert are not a single statement, so two concurrent registrations for
// the same ternero can collide on the (ternero_id, numero_episodio) unique
// index; the loser re-reads the count and retries once before giving up with
// ErrConflicto.
func (s *episodioService) Registrar(ctx context.Context, f tenancy.Filtro, req dto.RegistrarEpisodioRequest) (*dto.EpisodioResponse, error) {
	terneroID, err := uuid.Parse(req.TerneroID)
	if err != nil {
		return nil, fmt.Errorf("ternero_id invalido: %w", err)
	}
	ternero, err := s.terneroRepo.FindByID(ctx, terneroID)
	if err != nil {
		return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
	}
	if !f.Alcanza(ternero.EstablecimientoID) {
		return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
	}
	fecha, err := parseFecha("fecha", req.Fecha)
	if err != nil {
		return nil, err
	}

	var episodio *model.EpisodioDiarrea
	for intento := 0; intento < 2; intento++ {
		n, err := s.repo.ContarPorTernero(ctx, ternero.ID)
		if err != nil {
			return nil, err
		}
		candidato := &model.EpisodioDiarrea{
			EstablecimientoID: ternero.EstablecimientoID,
			TerneroID:         ternero.ID,
			NumeroEpisodio:    int(n) + 1,
			Severidad:         req.Severidad,
			Fecha:             fecha,
			Notas:             req.Notas,
		}
		err = s.repo.Create(ctx, candidato)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race — another episode took this number
			continue
		}
		if err != nil {
			return nil, err
		}
		episodio = candidato
		break
	}
	if episodio == nil {
		return nil, fmt.Errorf("numero de episodio para ternero %s: %w", ternero.Caravana, ErrConflicto)
	}

	resp := episodioToResponse(episodio)
	if model.SeveridadUrgente(episodio.Severidad) {
		s.despacharAviso(ctx, ternero, episodio)
	}
	return resp, nil
}

func (s *episodioService) ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.EpisodioResponse, error) {
	e, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	return episodioToResponse(e), nil
}

func (s *episodioService) Listar(ctx context.Context, f tenancy.Filtro, filter dto.EpisodioFilter) (*dto.EpisodioListResponse, error) {
	episodios, total, err := s.repo.List(ctx, f, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EpisodioResponse, len(episodios))
	for i := range episodios {
		items[i] = *episodioToResponse(&episodios[i])
	}
	return &dto.EpisodioListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualizar may change severidad, fecha, notas and the animal link;
// numero_episodio is immutable once assigned.
func (s *episodioService) Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarEpisodioRequest) (*dto.EpisodioResponse, error) {
	e, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}

	if req.NumeroEpisodio != nil && *req.NumeroEpisodio != e.NumeroEpisodio {
		return nil, errors.New("numero de episodio es inmutable")
	}
	if req.Severidad != "" {
		e.Severidad = req.Severidad
	}
	if req.Fecha != "" {
		fecha, err := parseFecha("fecha", req.Fecha)
		if err != nil {
			return nil, err
		}
		e.Fecha = fecha
	}
	if req.Notas != nil {
		e.Notas = req.Notas
	}
	if req.TerneroID != nil {
		terneroID, err := uuid.Parse(*req.TerneroID)
		if err != nil {
			return nil, fmt.Errorf("ternero_id invalido: %w", err)
		}
		ternero, err := s.terneroRepo.FindByID(ctx, terneroID)
		if err != nil {
			return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
		}
		if ternero.EstablecimientoID != e.EstablecimientoID {
			return nil, fmt.Errorf("ternero: %w", ErrVinculoCruzado)
		}
		e.TerneroID = terneroID
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return episodioToResponse(e), nil
}

func (s *episodioService) Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error {
	e, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, e.ID)
}

// EstadisticasPorTernero summarizes the episode history of one calf.
// Most-frequent severity tie-break: the most severe of the tied values wins.
func (s *episodioService) EstadisticasPorTernero(ctx context.Context, f tenancy.Filtro, terneroID uuid.UUID) (*dto.EstadisticasEpisodiosResponse, error) {
	ternero, err := s.terneroRepo.FindByID(ctx, terneroID)
	if err != nil {
		return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
	}
	if !f.Alcanza(ternero.EstablecimientoID) {
		return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
	}

	episodios, err := s.repo.ListPorTernero(ctx, ternero.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EstadisticasEpisodiosResponse{
		TerneroID:      ternero.ID.String(),
		TotalEpisodios: len(episodios),
	}
	if len(episodios) == 0 {
		return resp, nil
	}

	frecuencia := make(map[string]int)
	var ultimo time.Time
	algunoUrgente := false
	for _, e := range episodios {
		frecuencia[e.Severidad]++
		if e.Fecha.After(ultimo) {
			ultimo = e.Fecha
		}
		if model.SeveridadUrgente(e.Severidad) {
			algunoUrgente = true
		}
	}

	masFrecuente := severidadMasFrecuente(frecuencia)
	ultimoStr := ultimo.Format(formatoFecha)
	dias := int(time.Since(ultimo).Hours() / 24)

	resp.UltimoEpisodio = &ultimoStr
	resp.DiasDesdeUltimo = &dias
	resp.SeveridadFrecuente = &masFrecuente
	resp.RequiereAtencion = len(episodios) >= umbralRecurrente || algunoUrgente
	return resp, nil
}

// ordenSeveridad: fixed clinical ordering used for the tie-break.
var ordenSeveridad = []string{
	model.SeveridadCritica,
	model.SeveridadSevera,
	model.SeveridadModerada,
	model.SeveridadLeve,
}

func severidadMasFrecuente(frecuencia map[string]int) string {
	mejor := ""
	mejorN := -1
	// iterate in severity order so frequency ties resolve to the most severe
	for _, sev := range ordenSeveridad {
		if n := frecuencia[sev]; n > mejorN {
			mejor = sev
			mejorN = n
		}
	}
	return mejor
}

func (s *episodioService) cargarVisible(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*model.EpisodioDiarrea, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("episodio %w", ErrNoEncontrado)
	}
	if !f.Alcanza(e.EstablecimientoID) {
		return nil, fmt.Errorf("episodio %w", ErrNoEncontrado)
	}
	return e, nil
}

// despacharAviso enqueues the sanitary alert email. Best effort: the episode
// is already persisted and the alert tags already annotate the response.
func (s *episodioService) despacharAviso(ctx context.Context, ternero *model.Ternero, e *model.EpisodioDiarrea) {
	if s.dispatcher == nil || s.estRepo == nil {
		return
	}
	est, err := s.estRepo.FindByID(ctx, ternero.EstablecimientoID)
	if err != nil || est.EmailContacto == nil {
		return
	}
	payload := worker.AvisoPayload{
		ToEmail:   *est.EmailContacto,
		Caravana:  ternero.Caravana,
		Severidad: e.Severidad,
		Numero:    e.NumeroEpisodio,
		Fecha:     e.Fecha.Format(formatoFecha),
	}
	if err := s.dispatcher.EnqueueAviso(ctx, payload); err != nil {
		log.Warn().Err(err).Str("ternero", ternero.ID.String()).Msg("no se pudo encolar el aviso sanitario")
	}
}

// alertasDe derives the informational alert tags for an episode.
func alertasDe(e *model.EpisodioDiarrea) []string {
	alerts := []string{}
	if e.NumeroEpisodio > umbralRecurrente {
		alerts = append(alerts, dto.AlertaRecurrente)
	}
	if model.SeveridadUrgente(e.Severidad) {
		alerts = append(alerts, dto.AlertaAltaSeveridad)
	}
	return alerts
}

func episodioToResponse(e *model.EpisodioDiarrea) *dto.EpisodioResponse {
	return &dto.EpisodioResponse{
		ID:                e.ID.String(),
		EstablecimientoID: e.EstablecimientoID.String(),
		TerneroID:         e.TerneroID.String(),
		Severidad:         e.Severidad,
		EpisodeNumber:     e.NumeroEpisodio,
		Fecha:             e.Fecha.Format(formatoFecha),
		Notas:             e.Notas,
		Alerts:            alertasDe(e),
	}
}
