package repository

import (
	"context"

	"github.com/manucavallera/Ganaderia-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstablecimientoRepository manages tenants. Establecimientos are never
// hard-deleted: scoped data may reference them forever.
type EstablecimientoRepository interface {
	Create(ctx context.Context, e *model.Establecimiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Establecimiento, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Establecimiento, error)
	Update(ctx context.Context, e *model.Establecimiento) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type establecimientoRepo struct{ db *gorm.DB }

func NewEstablecimientoRepository(db *gorm.DB) EstablecimientoRepository {
	return &establecimientoRepo{db: db}
}

func (r *establecimientoRepo) Create(ctx context.Context, e *model.Establecimiento) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *establecimientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Establecimiento, error) {
	var e model.Establecimiento
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *establecimientoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Establecimiento, error) {
	var list []model.Establecimiento
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *establecimientoRepo) Update(ctx context.Context, e *model.Establecimiento) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *establecimientoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Establecimiento{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *establecimientoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Establecimiento{}).Where("id = ?", id).Update("activo", true).Error
}
