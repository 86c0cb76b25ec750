package repository

import (
	"context"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TratamientoRepository defines data access for treatments plus the
// aggregation queries behind the health report.
type TratamientoRepository interface {
	Create(ctx context.Context, t *model.Tratamiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tratamiento, error)
	List(ctx context.Context, f tenancy.Filtro, filter dto.TratamientoFilter) ([]model.Tratamiento, int64, error)
	Update(ctx context.Context, t *model.Tratamiento) error
	Delete(ctx context.Context, id uuid.UUID) error
	ContarPorTernero(ctx context.Context, terneroID uuid.UUID) (int64, error)

	// TernerosTratados returns the distinct ternero ids with at least one
	// linked treatment under the filter (rodeoID restricts further when set)
	TernerosTratados(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) ([]uuid.UUID, error)
	Contar(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, error)
	ContarPorTipo(ctx context.Context, f tenancy.Filtro) ([]dto.TratamientoPorTipo, error)
}

type tratamientoRepo struct{ db *gorm.DB }

func NewTratamientoRepository(db *gorm.DB) TratamientoRepository {
	return &tratamientoRepo{db: db}
}

func (r *tratamientoRepo) Create(ctx context.Context, t *model.Tratamiento) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tratamientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tratamiento, error) {
	var t model.Tratamiento
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *tratamientoRepo) List(ctx context.Context, f tenancy.Filtro, filter dto.TratamientoFilter) ([]model.Tratamiento, int64, error) {
	var tratamientos []model.Tratamiento
	var total int64

	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.Tratamiento{}))
	if filter.TipoEnfermedad != "" {
		q = q.Where("tipo_enfermedad ILIKE ?", "%"+filter.TipoEnfermedad+"%")
	}
	if filter.Turno != "" {
		q = q.Where("turno = ?", filter.Turno)
	}
	if filter.TerneroID != "" {
		q = q.Where("ternero_id = ?", filter.TerneroID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC").Limit(filter.Limit).Offset(offset).Find(&tratamientos).Error
	return tratamientos, total, err
}

func (r *tratamientoRepo) Update(ctx context.Context, t *model.Tratamiento) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tratamientoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tratamiento{}, "id = ?", id).Error
}

func (r *tratamientoRepo) ContarPorTernero(ctx context.Context, terneroID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Tratamiento{}).
		Where("ternero_id = ?", terneroID).Count(&n).Error
	return n, err
}

func (r *tratamientoRepo) TernerosTratados(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.Tratamiento{})).
		Where("ternero_id IS NOT NULL")
	if rodeoID != nil {
		q = q.Where("ternero_id IN (?)",
			r.db.Model(&model.Ternero{}).Select("id").Where("rodeo_id = ?", *rodeoID))
	}
	err := q.Distinct("ternero_id").Pluck("ternero_id", &ids).Error
	return ids, err
}

func (r *tratamientoRepo) Contar(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, error) {
	var n int64
	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.Tratamiento{}))
	if rodeoID != nil {
		q = q.Where("ternero_id IN (?)",
			r.db.Model(&model.Ternero{}).Select("id").Where("rodeo_id = ?", *rodeoID))
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *tratamientoRepo) ContarPorTipo(ctx context.Context, f tenancy.Filtro) ([]dto.TratamientoPorTipo, error) {
	var rows []dto.TratamientoPorTipo
	err := f.Aplicar(r.db.WithContext(ctx).Model(&model.Tratamiento{})).
		Select("tipo_enfermedad, COUNT(*) as cantidad").
		Group("tipo_enfermedad").
		Order("cantidad DESC").
		Scan(&rows).Error
	return rows, err
}
