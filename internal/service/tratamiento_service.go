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

type TratamientoService interface {
	Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearTratamientoRequest) (*dto.TratamientoResponse, error)
	ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.TratamientoResponse, error)
	Listar(ctx context.Context, f tenancy.Filtro, filter dto.TratamientoFilter) (*dto.TratamientoListResponse, error)
	Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarTratamientoRequest) (*dto.TratamientoResponse, error)
	Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error
}

type tratamientoService struct {
	repo        repository.TratamientoRepository
	terneroRepo repository.TerneroRepository
}

func NewTratamientoService(repo repository.TratamientoRepository, terneroRepo repository.TerneroRepository) TratamientoService {
	return &tratamientoService{repo: repo, terneroRepo: terneroRepo}
}

func (s *tratamientoService) Crear(ctx context.Context, establecimientoID uuid.UUID, req dto.CrearTratamientoRequest) (*dto.TratamientoResponse, error) {
	fecha, err := parseFecha("fecha", req.Fecha)
	if err != nil {
		return nil, err
	}
	terneroID, err := parseUUIDPtr("ternero_id", req.TerneroID)
	if err != nil {
		return nil, err
	}
	if err := s.validarTernero(ctx, establecimientoID, terneroID); err != nil {
		return nil, err
	}

	t := &model.Tratamiento{
		EstablecimientoID: establecimientoID,
		TipoEnfermedad:    req.TipoEnfermedad,
		Turno:             req.Turno,
		TerneroID:         terneroID,
		Medicamento:       req.Medicamento,
		Fecha:             fecha,
		Notas:             req.Notas,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return tratamientoToResponse(t), nil
}

func (s *tratamientoService) ObtenerPorID(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*dto.TratamientoResponse, error) {
	t, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}
	return tratamientoToResponse(t), nil
}

func (s *tratamientoService) Listar(ctx context.Context, f tenancy.Filtro, filter dto.TratamientoFilter) (*dto.TratamientoListResponse, error) {
	tratamientos, total, err := s.repo.List(ctx, f, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TratamientoResponse, len(tratamientos))
	for i := range tratamientos {
		items[i] = *tratamientoToResponse(&tratamientos[i])
	}
	return &dto.TratamientoListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *tratamientoService) Actualizar(ctx context.Context, f tenancy.Filtro, id uuid.UUID, req dto.ActualizarTratamientoRequest) (*dto.TratamientoResponse, error) {
	t, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return nil, err
	}

	if req.TipoEnfermedad != "" {
		t.TipoEnfermedad = req.TipoEnfermedad
	}
	if req.Turno != "" {
		t.Turno = req.Turno
	}
	if req.Medicamento != nil {
		t.Medicamento = req.Medicamento
	}
	if req.Notas != nil {
		t.Notas = req.Notas
	}
	if req.Fecha != "" {
		fecha, err := parseFecha("fecha", req.Fecha)
		if err != nil {
			return nil, err
		}
		t.Fecha = fecha
	}
	if req.TerneroID != nil {
		terneroID, err := parseUUIDPtr("ternero_id", req.TerneroID)
		if err != nil {
			return nil, err
		}
		if err := s.validarTernero(ctx, t.EstablecimientoID, terneroID); err != nil {
			return nil, err
		}
		t.TerneroID = terneroID
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return tratamientoToResponse(t), nil
}

func (s *tratamientoService) Eliminar(ctx context.Context, f tenancy.Filtro, id uuid.UUID) error {
	t, err := s.cargarVisible(ctx, f, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, t.ID)
}

func (s *tratamientoService) cargarVisible(ctx context.Context, f tenancy.Filtro, id uuid.UUID) (*model.Tratamiento, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tratamiento %w", ErrNoEncontrado)
	}
	if !f.Alcanza(t.EstablecimientoID) {
		return nil, fmt.Errorf("tratamiento %w", ErrNoEncontrado)
	}
	return t, nil
}

// validarTernero rejects a treatment linked to an animal of another
// establecimiento.
func (s *tratamientoService) validarTernero(ctx context.Context, establecimientoID uuid.UUID, terneroID *uuid.UUID) error {
	if terneroID == nil {
		return nil
	}
	ternero, err := s.terneroRepo.FindByID(ctx, *terneroID)
	if err != nil {
		return fmt.Errorf("ternero %w", ErrNoEncontrado)
	}
	if ternero.EstablecimientoID != establecimientoID {
		return fmt.Errorf("ternero: %w", ErrVinculoCruzado)
	}
	return nil
}

func tratamientoToResponse(t *model.Tratamiento) *dto.TratamientoResponse {
	return &dto.TratamientoResponse{
		ID:                t.ID.String(),
		EstablecimientoID: t.EstablecimientoID.String(),
		TipoEnfermedad:    t.TipoEnfermedad,
		Turno:             t.Turno,
		TerneroID:         uuidPtrToString(t.TerneroID),
		Medicamento:       t.Medicamento,
		Fecha:             t.Fecha.Format(formatoFecha),
		Notas:             t.Notas,
	}
}
