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

// RodeoService manages herds and their health roll-up.
type RodeoService interface {
	Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearRodeoRequest) (*dto.RodeoResponse, error)
	ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.RodeoResponse, error)
	Listar(ctx context.Context, f tenancy.Filtro, incluirInactivos bool) ([]dto.RodeoResponse, error)
	Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarRodeoRequest) (*dto.RodeoResponse, error)
	Desactivar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error
	Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error
	Estadisticas(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.EstadisticasRodeoResponse, error)
}

type rodeoService struct {
	repo            repository.RodeoRepository
	terneroRepo     repository.TerneroRepository
	tratamientoRepo repository.TratamientoRepository
	episodioRepo    repository.EpisodioRepository
}

func NewRodeoService(
	repo repository.RodeoRepository,
	terneroRepo repository.TerneroRepository,
	tratamientoRepo repository.TratamientoRepository,
	episodioRepo repository.EpisodioRepository,
) RodeoService {
	return &rodeoService{
		repo:            repo,
		terneroRepo:     terneroRepo,
		tratamientoRepo: tratamientoRepo,
		episodioRepo:    episodioRepo,
	}
}

func (s *rodeoService) Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearRodeoRequest) (*dto.RodeoResponse, error) {
	rodeo := &model.Rodeo{
		EstablecimientoID: establecimientoID,
		Nombre:            req.Nombre,
		Tipo:              req.Tipo,
		Estado:            model.RodeoActivo,
	}
	if err := s.repo.Create(ctx, rodeo); err != nil {
		return nil, err
	}
	return rodeoToResponse(rodeo), nil
}

func (s *rodeoService) ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.RodeoResponse, error) {
	rodeo, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	return rodeoToResponse(rodeo), nil
}

func (s *rodeoService) Listar(ctx context.Context, f tenancy.Filtro, incluirInactivos bool) ([]dto.RodeoResponse, error) {
	rodeos, err := s.repo.List(ctx, f, incluirInactivos)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RodeoResponse, len(rodeos))
	for i := range rodeos {
		items[i] = *rodeoToResponse(&rodeos[i])
	}
	return items, nil
}

func (s *rodeoService) Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarRodeoRequest) (*dto.RodeoResponse, error) {
	rodeo, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != "" {
		rodeo.Nombre = req.Nombre
	}
	if req.Tipo != "" {
		rodeo.Tipo = req.Tipo
	}
	if err := s.repo.Update(ctx, rodeo); err != nil {
		return nil, err
	}
	return rodeoToResponse(rodeo), nil
}

func (s *rodeoService) Desactivar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error {
	rodeo, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return err
	}
	rodeo.Estado = model.RodeoInactivo
	return s.repo.Update(ctx, rodeo)
}

// Eliminar removes a rodeo without terneros; a rodeo with assigned animals
// must be emptied (or deactivated) first.
func (s *rodeoService) Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error {
	rodeo, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return err
	}
	n, err := s.terneroRepo.ContarPorRodeo(ctx, rodeo.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("no se puede eliminar el rodeo %s: tiene %d terneros asignados: %w", rodeo.Nombre, n, ErrConflicto)
	}
	return s.repo.Delete(ctx, rodeo.ID)
}

// Estadisticas computes the establishment report restricted to one rodeo,
// plus the average current weight of its terneros.
func (s *rodeoService) Estadisticas(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.EstadisticasRodeoResponse, error) {
	rodeo, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}

	total, muertos, err := s.terneroRepo.Contar(ctx, f, &rodeo.ID)
	if err != nil {
		return nil, err
	}
	tratados, err := s.tratamientoRepo.TernerosTratados(ctx, f, &rodeo.ID)
	if err != nil {
		return nil, err
	}
	conDiarrea, err := s.episodioRepo.TernerosConDiarrea(ctx, f, &rodeo.ID)
	if err != nil {
		return nil, err
	}
	pesoPromedio, err := s.terneroRepo.PesoPromedio(ctx, rodeo.ID)
	if err != nil {
		return nil, err
	}

	particion, err := calcularParticion(total, tratados, conDiarrea)
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasRodeoResponse{
		RodeoID:          rodeo.ID.String(),
		Nombre:           rodeo.Nombre,
		TotalAnimals:     total,
		DeadAnimals:      muertos,
		AliveAnimals:     total - muertos,
		MortalityPercent: porcentaje(muertos, total),
		MorbidityPercent: porcentaje(particion.Enfermos(), total),
		AverageWeight:    pesoPromedio.Round(2),
		BothProblems:     particion.Ambos,
		OnlyTreatment:    particion.SoloTratamiento,
		OnlyDiarrhea:     particion.SoloDiarrea,
		Healthy:          particion.Sanos,
	}, nil
}

func (s *rodeoService) cargarVisible(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*model.Rodeo, error) {
	rodeo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rodeo %w", ErrNoEncontrado)
	}
	if !f.Alcanza(rodeo.EstablecimientoID) {
		return nil, fmt.Errorf("rodeo %w", ErrNoEncontrado)
	}
	return rodeo, nil
}

func rodeoToResponse(r *model.Rodeo) *dto.RodeoResponse {
	return &dto.RodeoResponse{
		ID:                r.ID.String(),
		EstablecimientoID: r.EstablecimientoID.String(),
		Nombre:            r.Nombre,
		Tipo:              r.Tipo,
		Estado:            r.Estado,
	}
}
