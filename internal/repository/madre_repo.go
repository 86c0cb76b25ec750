package repository

import (
	"context"

	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MadreRepository interface {
	Create(ctx context.Context, m *model.Madre) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Madre, error)
	List(ctx context.Context, f tenancy.Filtro) ([]model.Madre, error)
	Update(ctx context.Context, m *model.Madre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type madreRepo struct{ db *gorm.DB }

func NewMadreRepository(db *gorm.DB) MadreRepository { return &madreRepo{db: db} }

func (r *madreRepo) Create(ctx context.Context, m *model.Madre) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *madreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Madre, error) {
	var m model.Madre
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *madreRepo) List(ctx context.Context, f tenancy.Filtro) ([]model.Madre, error) {
	var madres []model.Madre
	err := f.Aplicar(r.db.WithContext(ctx).Model(&model.Madre{})).
		Order("caravana ASC").Find(&madres).Error
	return madres, err
}

func (r *madreRepo) Update(ctx context.Context, m *model.Madre) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *madreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Madre{}, "id = ?", id).Error
}
