package repository

import (
	"context"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EpisodioRepository defines data access for diarrhea episodes. Create relies
// on the (ternero_id, numero_episodio) unique index: with TranslateError
// enabled a concurrent duplicate insert surfaces as gorm.ErrDuplicatedKey,
// which the ledger uses to retry with a fresh count.
type EpisodioRepository interface {
	Create(ctx context.Context, e *model.EpisodioDiarrea) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EpisodioDiarrea, error)
	List(ctx context.Context, f tenancy.Filtro, filter dto.EpisodioFilter) ([]model.EpisodioDiarrea, int64, error)
	Update(ctx context.Context, e *model.EpisodioDiarrea) error
	Delete(ctx context.Context, id uuid.UUID) error

	ContarPorTernero(ctx context.Context, terneroID uuid.UUID) (int64, error)
	ListPorTernero(ctx context.Context, terneroID uuid.UUID) ([]model.EpisodioDiarrea, error)

	TernerosConDiarrea(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) ([]uuid.UUID, error)
	Contar(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, error)
	ContarPorSeveridad(ctx context.Context, f tenancy.Filtro) (map[string]int64, error)
}

type episodioRepo struct{ db *gorm.DB }

func NewEpisodioRepository(db *gorm.DB) EpisodioRepository { return &episodioRepo{db: db} }

func (r *episodioRepo) Create(ctx context.Context, e *model.EpisodioDiarrea) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *episodioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EpisodioDiarrea, error) {
	var e model.EpisodioDiarrea
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *episodioRepo) List(ctx context.Context, f tenancy.Filtro, filter dto.EpisodioFilter) ([]model.EpisodioDiarrea, int64, error) {
	var episodios []model.EpisodioDiarrea
	var total int64

	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.EpisodioDiarrea{}))
	if filter.TerneroID != "" {
		q = q.Where("ternero_id = ?", filter.TerneroID)
	}
	if filter.Severidad != "" {
		q = q.Where("severidad = ?", filter.Severidad)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC").Limit(filter.Limit).Offset(offset).Find(&episodios).Error
	return episodios, total, err
}

func (r *episodioRepo) Update(ctx context.Context, e *model.EpisodioDiarrea) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *episodioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EpisodioDiarrea{}, "id = ?", id).Error
}

func (r *episodioRepo) ContarPorTernero(ctx context.Context, terneroID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EpisodioDiarrea{}).
		Where("ternero_id = ?", terneroID).Count(&n).Error
	return n, err
}

func (r *episodioRepo) ListPorTernero(ctx context.Context, terneroID uuid.UUID) ([]model.EpisodioDiarrea, error) {
	var episodios []model.EpisodioDiarrea
	err := r.db.WithContext(ctx).
		Where("ternero_id = ?", terneroID).
		Order("numero_episodio ASC").Find(&episodios).Error
	return episodios, err
}

func (r *episodioRepo) TernerosConDiarrea(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.EpisodioDiarrea{}))
	if rodeoID != nil {
		q = q.Where("ternero_id IN (?)",
			r.db.Model(&model.Ternero{}).Select("id").Where("rodeo_id = ?", *rodeoID))
	}
	err := q.Distinct("ternero_id").Pluck("ternero_id", &ids).Error
	return ids, err
}

func (r *episodioRepo) Contar(ctx context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, error) {
	var n int64
	q := f.Aplicar(r.db.WithContext(ctx).Model(&model.EpisodioDiarrea{}))
	if rodeoID != nil {
		q = q.Where("ternero_id IN (?)",
			r.db.Model(&model.Ternero{}).Select("id").Where("rodeo_id = ?", *rodeoID))
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *episodioRepo) ContarPorSeveridad(ctx context.Context, f tenancy.Filtro) (map[string]int64, error) {
	var rows []struct {
		Severidad string
		Cantidad  int64
	}
	err := f.Aplicar(r.db.WithContext(ctx).Model(&model.EpisodioDiarrea{})).
		Select("severidad, COUNT(*) as cantidad").
		Group("severidad").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Severidad] = row.Cantidad
	}
	return result, nil
}
