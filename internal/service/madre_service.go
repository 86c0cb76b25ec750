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

type MadreService interface {
	Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearMadreRequest) (*dto.MadreResponse, error)
	ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.MadreResponse, error)
	Listar(ctx context.Context, f tenancy.Filtro) ([]dto.MadreResponse, error)
	Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarMadreRequest) (*dto.MadreResponse, error)
	Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error
}

type madreService struct {
	repo        repository.MadreRepository
	terneroRepo repository.TerneroRepository
}

func NewMadreService(repo repository.MadreRepository, terneroRepo repository.TerneroRepository) MadreService {
	return &madreService{repo: repo, terneroRepo: terneroRepo}
}

func (s *madreService) Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearMadreRequest) (*dto.MadreResponse, error) {
	estado := req.Estado
	if estado == "" {
		estado = model.MadreSeca
	}
	m := &model.Madre{
		EstablecimientoID: establecimientoID,
		Caravana:          req.Caravana,
		Estado:            estado,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return madreToResponse(m), nil
}

func (s *madreService) ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.MadreResponse, error) {
	m, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	return madreToResponse(m), nil
}

func (s *madreService) Listar(ctx context.Context, f tenancy.Filtro) ([]dto.MadreResponse, error) {
	madres, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MadreResponse, len(madres))
	for i := range madres {
		resp[i] = *madreToResponse(&madres[i])
	}
	return resp, nil
}

func (s *madreService) Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarMadreRequest) (*dto.MadreResponse, error) {
	m, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	if req.Caravana != "" {
		m.Caravana = req.Caravana
	}
	if req.Estado != "" {
		m.Estado = req.Estado
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return madreToResponse(m), nil
}

// Eliminar removes a madre after detaching her terneros; the calves are
// never cascaded.
func (s *madreService) Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error {
	m, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return err
	}
	if err := s.terneroRepo.ClearMadre(ctx, m.ID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, m.ID)
}

func (s *madreService) cargarVisible(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*model.Madre, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("madre %w", ErrNoEncontrado)
	}
	if !f.Alcanza(m.EstablecimientoID) {
		return nil, fmt.Errorf("madre %w", ErrNoEncontrado)
	}
	return m, nil
}

func madreToResponse(m *model.Madre) *dto.MadreResponse {
	return &dto.MadreResponse{
		ID:                m.ID.String(),
		EstablecimientoID: m.EstablecimientoID.String(),
		Caravana:          m.Caravana,
		Estado:            m.Estado,
	}
}
