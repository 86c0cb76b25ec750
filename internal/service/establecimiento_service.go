package service

import (
	"context"
	"fmt"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/repository"

	"github.com/google/uuid"
)

// EstablecimientoService manages tenants. Admin-only at the router level.
type EstablecimientoService interface {
	Crear(ctx context.Context, req dto.CrearEstablecimientoRequest) (*dto.EstablecimientoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EstablecimientoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.EstablecimientoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEstablecimientoRequest) (*dto.EstablecimientoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type establecimientoService struct {
	repo repository.EstablecimientoRepository
}

func NewEstablecimientoService(repo repository.EstablecimientoRepository) EstablecimientoService {
	return &establecimientoService{repo: repo}
}

func (s *establecimientoService) Crear(ctx context.Context, req dto.CrearEstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	e := &model.Establecimiento{
		Nombre:        req.Nombre,
		EmailContacto: req.EmailContacto,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return establecimientoToResponse(e), nil
}

func (s *establecimientoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.EstablecimientoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("establecimiento %w", ErrNoEncontrado)
	}
	return establecimientoToResponse(e), nil
}

func (s *establecimientoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.EstablecimientoResponse, error) {
	list, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EstablecimientoResponse, len(list))
	for i := range list {
		resp[i] = *establecimientoToResponse(&list[i])
	}
	return resp, nil
}

func (s *establecimientoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("establecimiento %w", ErrNoEncontrado)
	}
	if req.Nombre != "" {
		e.Nombre = req.Nombre
	}
	if req.EmailContacto != nil {
		e.EmailContacto = req.EmailContacto
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return establecimientoToResponse(e), nil
}

func (s *establecimientoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("establecimiento %w", ErrNoEncontrado)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *establecimientoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("establecimiento %w", ErrNoEncontrado)
	}
	return s.repo.Reactivar(ctx, id)
}

func establecimientoToResponse(e *model.Establecimiento) *dto.EstablecimientoResponse {
	return &dto.EstablecimientoResponse{
		ID:            e.ID.String(),
		Nombre:        e.Nombre,
		EmailContacto: e.EmailContacto,
		Activo:        e.Activo,
	}
}
