package repository

import (
	"context"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TerneroRepository defines the data access contract for calves, including
// the population counts the health aggregator is built on.
type TerneroRepository interface {
	Create(ctx context.Context, t *model.Ternero) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ternero, error)
	List(ctx context.Context, f tenancy.Filtro, filter dto.TerneroFilter) ([]model.Ternero, int64, error)
	Update(ctx context.Context, t *model.Ternero) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearMadre detaches all terneros from a madre before the madre is
	// deleted — the calves themselves are untouched
	ClearMadre(ctx context.Context, madreID uuid.UUID) error
	ContarPorRodeo(ctx context.Context, rodeoID uuid.UUID) (int64, error)

	// Contar returns (total, muertos) under the filter; rodeoID further
	// restricts to one rodeo when non-nil
	Contar(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, int64, error)
	PesoPromedio(ctx context.Context, rodeoID uuid.UUID) (decimal.Decimal, error)

	CreatePesaje(ctx context.Context, p *model.Pesaje) error
	ListPesajes(ctx context.Context, terneroID uuid.UUID) ([]model.Pesaje, error)
}

type terneroRepo struct{ db *gorm.DB }

func NewTerneroRepository(db *gorm.DB) TerneroRepository { return &terneroRepo{db: db} }

func (r *terneroRepo) Create(ctx context.Context, t *model.Ternero) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *terneroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ternero, error) {
	var t model.Ternero
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *terneroRepo) List(ctx context.Context, f tenancy.Filtro, filter dto.TerneroFilter) ([]model.Ternero, int64, error) {
	var terneros []model.Ternero
	var total int64

	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.Ternero{}))
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.RodeoID != "" {
		q = q.Where("rodeo_id = ?", filter.RodeoID)
	}
	if filter.MadreID != "" {
		q = q.Where("madre_id = ?", filter.MadreID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("caravana ASC").Limit(filter.Limit).Offset(offset).Find(&terneros).Error
	return terneros, total, err
}

func (r *terneroRepo) Update(ctx context.Context, t *model.Ternero) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *terneroRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ternero{}, "id = ?", id).Error
}

func (r *terneroRepo) ClearMadre(ctx context.Context, madreID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ternero{}).
		Where("madre_id = ?", madreID).
		Update("madre_id", nil).Error
}

func (r *terneroRepo) ContarPorRodeo(ctx context.Context, rodeoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ternero{}).
		Where("rodeo_id = ?", rodeoID).Count(&n).Error
	return n, err
}

func (r *terneroRepo) Contar(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, int64, error) {
	base := f.Aplicar(r.db.WithContext(ctx).Model(&model.Ternero{}))
	if rodeoID != nil {
		base = base.Where("rodeo_id = ?", *rodeoID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var muertos int64
	if err := base.Session(&gorm.Session{}).Where("estado = ?", model.EstadoMuerto).Count(&muertos).Error; err != nil {
		return 0, 0, err
	}
	return total, muertos, nil
}

func (r *terneroRepo) PesoPromedio(ctx context.Context, rodeoID uuid.UUID) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Ternero{}).
		Where("rodeo_id = ?", rodeoID).
		Select("COALESCE(AVG(peso_actual), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *terneroRepo) CreatePesaje(ctx context.Context, p *model.Pesaje) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *terneroRepo) ListPesajes(ctx context.Context, terneroID uuid.UUID) ([]model.Pesaje, error) {
	var pesajes []model.Pesaje
	err := r.db.WithContext(ctx).
		Where("ternero_id = ?", terneroID).
		Order("fecha ASC").Find(&pesajes).Error
	return pesajes, err
}
