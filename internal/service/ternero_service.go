package service

import (
	"context"
	"fmt"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/repository"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
)

// TerneroService implements calf CRUD under the resolved tenancy filter.
// establecimientoID on Crear arrives already forced by the boundary
// (tenancy.EstablecimientoParaAlta) — non-admins can never plant an animal in
// a foreign establecimiento.
type TerneroService interface {
	Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearTerneroRequest) (*dto.TerneroResponse, error)
	ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.TerneroResponse, error)
	Listar(ctx context.Context, f tenancy.Filtro, filter dto.TerneroFilter) (*dto.TerneroListResponse, error)
	Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarTerneroRequest) (*dto.TerneroResponse, error)
	Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error

	RegistrarPesaje(ctx context.Context, f tenancy.Filtro, terneroID uuid.UUID, req dto.RegistrarPesajeRequest) (*dto.PesajeResponse, error)
	ListarPesajes(ctx context.Context, f tenancy.Filtro, terneroID uuid.UUID) ([]dto.PesajeResponse, error)
}

type terneroService struct {
	repo            repository.TerneroRepository
	madreRepo       repository.MadreRepository
	rodeoRepo       repository.RodeoRepository
	tratamientoRepo repository.TratamientoRepository
	episodioRepo    repository.EpisodioRepository
}

func NewTerneroService(
	repo repository.TerneroRepository,
	madreRepo repository.MadreRepository,
	rodeoRepo repository.RodeoRepository,
	tratamientoRepo repository.TratamientoRepository,
	episodioRepo repository.EpisodioRepository,
) TerneroService {
	return &terneroService{
		repo:            repo,
		madreRepo:       madreRepo,
		rodeoRepo:       rodeoRepo,
		tratamientoRepo: tratamientoRepo,
		episodioRepo:    episodioRepo,
	}
}

func (s *terneroService) Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearTerneroRequest) (*dto.TerneroResponse, error) {
	nacimiento, err := parseFecha("fecha_nacimiento", req.FechaNacimiento)
	if err != nil {
		return nil, err
	}
	madreID, err := parseUUIDPtr("madre_id", req.MadreID)
	if err != nil {
		return nil, err
	}
	rodeoID, err := parseUUIDPtr("rodeo_id", req.RodeoID)
	if err != nil {
		return nil, err
	}

	if err := s.validarVinculos(ctx, establecimientoID, madreID, rodeoID); err != nil {
		return nil, err
	}

	t := &model.Ternero{
		EstablecimientoID: establecimientoID,
		Caravana:          req.Caravana,
		FechaNacimiento:   nacimiento,
		Estado:            model.EstadoVivo,
		MadreID:           madreID,
		RodeoID:           rodeoID,
	}
	if req.PesoNacimiento != nil {
		t.PesoActual = *req.PesoNacimiento
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return terneroToResponse(t), nil
}

func (s *terneroService) ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.TerneroResponse, error) {
	t, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	return terneroToResponse(t), nil
}

func (s *terneroService) Listar(ctx context.Context, f tenancy.Filtro, filter dto.TerneroFilter) (*dto.TerneroListResponse, error) {
	terneros, total, err := s.repo.List(ctx, f, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TerneroResponse, len(terneros))
	for i := range terneros {
		items[i] = *terneroToResponse(&terneros[i])
	}
	return &dto.TerneroListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *terneroService) Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarTerneroRequest) (*dto.TerneroResponse, error) {
	t, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}

	if req.Caravana != "" {
		t.Caravana = req.Caravana
	}
	if req.Estado != "" {
		t.Estado = req.Estado
	}
	madreID, err := parseUUIDPtr("madre_id", req.MadreID)
	if err != nil {
		return nil, err
	}
	rodeoID, err := parseUUIDPtr("rodeo_id", req.RodeoID)
	if err != nil {
		return nil, err
	}
	if err := s.validarVinculos(ctx, t.EstablecimientoID, madreID, rodeoID); err != nil {
		return nil, err
	}
	if madreID != nil {
		t.MadreID = madreID
	}
	if rodeoID != nil {
		t.RodeoID = rodeoID
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return terneroToResponse(t), nil
}

func (s *terneroService) Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error {
	t, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return err
	}

	tratamientos, err := s.tratamientoRepo.ContarPorTernero(ctx, t.ID)
	if err != nil {
		return err
	}
	episodios, err := s.episodioRepo.ContarPorTernero(ctx, t.ID)
	if err != nil {
		return err
	}
	if tratamientos > 0 || episodios > 0 {
		return fmt.Errorf("no se puede eliminar el ternero: tiene %d tratamientos y %d episodios registrados", tratamientos, episodios)
	}
	return s.repo.Delete(ctx, t.ID)
}

func (s *terneroService) RegistrarPesaje(ctx context.Context, f tenancy.Filtro, terneroID uuid.UUID, req dto.RegistrarPesajeRequest) (*dto.PesajeResponse, error) {
	t, err := s.cargarVisible(ctx, f, terneroID)
	if err != nil {
		return nil, err
	}
	fecha, err := parseFecha("fecha", req.Fecha)
	if err != nil {
		return nil, err
	}

	p := &model.Pesaje{TerneroID: t.ID, Peso: req.Peso, Fecha: fecha}
	if err := s.repo.CreatePesaje(ctx, p); err != nil {
		return nil, err
	}

	// The latest weighing becomes the calf's current weight
	t.PesoActual = req.Peso
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return &dto.PesajeResponse{
		ID:    p.ID.String(),
		Peso:  p.Peso,
		Fecha: p.Fecha.Format(formatoFecha),
	}, nil
}

func (s *terneroService) ListarPesajes(ctx context.Context, f tenancy.Filtro, terneroID uuid.UUID) ([]dto.PesajeResponse, error) {
	t, err := s.cargarVisible(ctx, f, terneroID)
	if err != nil {
		return nil, err
	}
	pesajes, err := s.repo.ListPesajes(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PesajeResponse, len(pesajes))
	for i, p := range pesajes {
		resp[i] = dto.PesajeResponse{
			ID:    p.ID.String(),
			Peso:  p.Peso,
			Fecha: p.Fecha.Format(formatoFecha),
		}
	}
	return resp, nil
}

// cargarVisible fetches a ternero and re-checks tenancy after the fetch:
// an existing row outside the filter is reported exactly like a missing one.
func (s *terneroService) cargarVisible(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*model.Ternero, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
	}
	if !f.Alcanza(t.EstablecimientoID) {
		return nil, fmt.Errorf("ternero %w", ErrNoEncontrado)
	}
	return t, nil
}

// validarVinculos rejects madre/rodeo references that cross establecimientos.
func (s *terneroService) validarVinculos(ctx context.Context, establecimientoID uuid.UUID, madreID, rodeoID *uuid.UUID) error {
	if madreID != nil {
		madre, err := s.madreRepo.FindByID(ctx, *madreID)
		if err != nil {
			return fmt.Errorf("madre %w", ErrNoEncontrado)
		}
		if madre.EstablecimientoID != establecimientoID {
			return fmt.Errorf("madre: %w", ErrVinculoCruzado)
		}
	}
	if rodeoID != nil {
		rodeo, err := s.rodeoRepo.FindByID(ctx, *rodeoID)
		if err != nil {
			return fmt.Errorf("rodeo %w", ErrNoEncontrado)
		}
		if rodeo.EstablecimientoID != establecimientoID {
			return fmt.Errorf("rodeo: %w", ErrVinculoCruzado)
		}
	}
	return nil
}

func terneroToResponse(t *model.Ternero) *dto.TerneroResponse {
	return &dto.TerneroResponse{
		ID:                t.ID.String(),
		EstablecimientoID: t.EstablecimientoID.String(),
		Caravana:          t.Caravana,
		FechaNacimiento:   t.FechaNacimiento.Format(formatoFecha),
		Estado:            t.Estado,
		PesoActual:        t.PesoActual,
		MadreID:           uuidPtrToString(t.MadreID),
		RodeoID:           uuidPtrToString(t.RodeoID),
	}
}
