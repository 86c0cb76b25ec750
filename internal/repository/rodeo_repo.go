package repository

import (
	"context"

	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RodeoRepository interface {
	Create(ctx context.Context, r *model.Rodeo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rodeo, error)
	List(ctx context.Context, f tenancy.Filtro, incluirInactivos bool) ([]model.Rodeo, error)
	Update(ctx context.Context, r *model.Rodeo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type rodeoRepo struct{ db *gorm.DB }

func NewRodeoRepository(db *gorm.DB) RodeoRepository { return &rodeoRepo{db: db} }

func (r *rodeoRepo) Create(ctx context.Context, m *model.Rodeo) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *rodeoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rodeo, error) {
	var m model.Rodeo
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *rodeoRepo) List(ctx context.Context, f tenancy.Filtro, incluirInactivos bool) ([]model.Rodeo, error) {
	var rodeos []model.Rodeo
	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.Rodeo{}))
	if !incluirInactivos {
		q = q.Where("estado = ?", model.RodeoActivo)
	}
	err := q.Order("nombre ASC").Find(&rodeos).Error
	return rodeos, err
}

func (r *rodeoRepo) Update(ctx context.Context, m *model.Rodeo) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *rodeoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Rodeo{}, "id = ?", id).Error
}
