package service_test

// In-memory repository stubs shared by the service tests. They mimic the
// postgres-backed implementations closely enough for unit tests; in
// particular, the episodio stub enforces the (ternero_id, numero_episodio)
// unique index and reports violations as gorm.ErrDuplicatedKey, exactly like
// the real repository does with TranslateError enabled.

import (
	"context"
	"sync"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/repository"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Establecimiento ──────────────────────────────────────────────────────────

type stubEstablecimientoRepo struct {
	establecimientos map[uuid.UUID]*model.Establecimiento
}

func newStubEstablecimientoRepo() *stubEstablecimientoRepo {
	return &stubEstablecimientoRepo{establecimientos: make(map[uuid.UUID]*model.Establecimiento)}
}

func (r *stubEstablecimientoRepo) Create(_ context.Context, e *model.Establecimiento) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cloned := *e
	r.establecimientos[e.ID] = &cloned
	return nil
}

func (r *stubEstablecimientoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Establecimiento, error) {
	e, ok := r.establecimientos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEstablecimientoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Establecimiento, error) {
	var result []model.Establecimiento
	for _, e := range r.establecimientos {
		if e.Activo || incluirInactivos {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *stubEstablecimientoRepo) Update(_ context.Context, e *model.Establecimiento) error {
	cloned := *e
	r.establecimientos[e.ID] = &cloned
	return nil
}

func (r *stubEstablecimientoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if e, ok := r.establecimientos[id]; ok {
		e.Activo = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubEstablecimientoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if e, ok := r.establecimientos[id]; ok {
		e.Activo = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

var _ repository.EstablecimientoRepository = (*stubEstablecimientoRepo)(nil)

// ── Ternero ──────────────────────────────────────────────────────────────────

type stubTerneroRepo struct {
	terneros map[uuid.UUID]*model.Ternero
	pesajes  map[uuid.UUID][]model.Pesaje
}

func newStubTerneroRepo() *stubTerneroRepo {
	return &stubTerneroRepo{
		terneros: make(map[uuid.UUID]*model.Ternero),
		pesajes:  make(map[uuid.UUID][]model.Pesaje),
	}
}

func (r *stubTerneroRepo) Create(_ context.Context, t *model.Ternero) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cloned := *t
	r.terneros[t.ID] = &cloned
	return nil
}

func (r *stubTerneroRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ternero, error) {
	t, ok := r.terneros[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *t
	return &cloned, nil
}

func (r *stubTerneroRepo) List(_ context.Context, f tenancy.Filtro, filter dto.TerneroFilter) ([]model.Ternero, int64, error) {
	var result []model.Ternero
	for _, t := range r.terneros {
		if !f.Alcanza(t.EstablecimientoID) {
			continue
		}
		if filter.Estado != "" && t.Estado != filter.Estado {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (r *stubTerneroRepo) Update(_ context.Context, t *model.Ternero) error {
	cloned := *t
	r.terneros[t.ID] = &cloned
	return nil
}

func (r *stubTerneroRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.terneros, id)
	return nil
}

func (r *stubTerneroRepo) ClearMadre(_ context.Context, madreID uuid.UUID) error {
	for _, t := range r.terneros {
		if t.MadreID != nil && *t.MadreID == madreID {
			t.MadreID = nil
		}
	}
	return nil
}

func (r *stubTerneroRepo) ContarPorRodeo(_ context.Context, rodeoID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.terneros {
		if t.RodeoID != nil && *t.RodeoID == rodeoID {
			n++
		}
	}
	return n, nil
}

func (r *stubTerneroRepo) Contar(_ context.Context, f tenancy.Filtro, rodeoID *uuid.UUID) (int64, int64, error) {
	var total, muertos int64
	for _, t := range r.terneros {
		if !f.Alcanza(t.EstablecimientoID) {
			continue
		}
		if rodeoID != nil && (t.RodeoID == nil || *t.RodeoID != *rodeoID) {
			continue
		}
		total++
		if t.Estado == model.EstadoMuerto {
			muertos++
		}
	}
	return total, muertos, nil
}

func (r *stubTerneroRepo) PesoPromedio(_ context.Context, rodeoID uuid.UUID) (decimal.Decimal, error) {
	var suma decimal.Decimal
	var n int64
	for _, t := range r.terneros {
		if t.RodeoID != nil && *t.RodeoID == rodeoID {
			suma = suma.Add(t.PesoActual)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return suma.Div(decimal.NewFromInt(n)), nil
}

func (r *stubTerneroRepo) CreatePesaje(_ context.Context, p *model.Pesaje) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pesajes[p.TerneroID] = append(r.pesajes[p.TerneroID], *p)
	return nil
}

func (r *stubTerneroRepo) ListPesajes(_ context.Context, terneroID uuid.UUID) ([]model.Pesaje, error) {
	return r.pesajes[terneroID], nil
}

var _ repository.TerneroRepository = (*stubTerneroRepo)(nil)

// ── Madre ────────────────────────────────────────────────────────────────────

type stubMadreRepo struct {
	madres map[uuid.UUID]*model.Madre
}

func newStubMadreRepo() *stubMadreRepo {
	return &stubMadreRepo{madres: make(map[uuid.UUID]*model.Madre)}
}

func (r *stubMadreRepo) Create(_ context.Context, m *model.Madre) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cloned := *m
	r.madres[m.ID] = &cloned
	return nil
}

func (r *stubMadreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Madre, error) {
	m, ok := r.madres[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubMadreRepo) List(_ context.Context, f tenancy.Filtro) ([]model.Madre, error) {
	var result []model.Madre
	for _, m := range r.madres {
		if f.Alcanza(m.EstablecimientoID) {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *stubMadreRepo) Update(_ context.Context, m *model.Madre) error {
	cloned := *m
	r.madres[m.ID] = &cloned
	return nil
}

func (r *stubMadreRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.madres, id)
	return nil
}

var _ repository.MadreRepository = (*stubMadreRepo)(nil)

// ── Rodeo ────────────────────────────────────────────────────────────────────

type stubRodeoRepo struct {
	rodeos map[uuid.UUID]*model.Rodeo
}

func newStubRodeoRepo() *stubRodeoRepo {
	return &stubRodeoRepo{rodeos: make(map[uuid.UUID]*model.Rodeo)}
}

func (r *stubRodeoRepo) Create(_ context.Context, rodeo *model.Rodeo) error {
	if rodeo.ID == uuid.Nil {
		rodeo.ID = uuid.New()
	}
	cloned := *rodeo
	r.rodeos[rodeo.ID] = &cloned
	return nil
}

func (r *stubRodeoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Rodeo, error) {
	rodeo, ok := r.rodeos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *rodeo
	return &cloned, nil
}

func (r *stubRodeoRepo) List(_ context.Context, f tenancy.Filtro, incluirInactivos bool) ([]model.Rodeo, error) {
	var result []model.Rodeo
	for _, rodeo := range r.rodeos {
		if !f.Alcanza(rodeo.EstablecimientoID) {
			continue
		}
		if rodeo.Estado == model.RodeoInactivo && !incluirInactivos {
			continue
		}
		result = append(result, *rodeo)
	}
	return result, nil
}

func (r *stubRodeoRepo) Update(_ context.Context, rodeo *model.Rodeo) error {
	cloned := *rodeo
	r.rodeos[rodeo.ID] = &cloned
	return nil
}

func (r *stubRodeoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rodeos, id)
	return nil
}

var _ repository.RodeoRepository = (*stubRodeoRepo)(nil)

// ── Tratamiento ──────────────────────────────────────────────────────────────

type stubTratamientoRepo struct {
	tratamientos map[uuid.UUID]*model.Tratamiento
}

func newStubTratamientoRepo() *stubTratamientoRepo {
	return &stubTratamientoRepo{tratamientos: make(map[uuid.UUID]*model.Tratamiento)}
}

func (r *stubTratamientoRepo) Create(_ context.Context, t *model.Tratamiento) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cloned := *t
	r.tratamientos[t.ID] = &cloned
	return nil
}

func (r *stubTratamientoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tratamiento, error) {
	t, ok := r.tratamientos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *t
	return &cloned, nil
}

func (r *stubTratamientoRepo) List(_ context.Context, f tenancy.Filtro, filter dto.TratamientoFilter) ([]model.Tratamiento, int64, error) {
	var result []model.Tratamiento
	for _, t := range r.tratamientos {
		if !f.Alcanza(t.EstablecimientoID) {
			continue
		}
		if filter.Turno != "" && t.Turno != filter.Turno {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (r *stubTratamientoRepo) Update(_ context.Context, t *model.Tratamiento) error {
	cloned := *t
	r.tratamientos[t.ID] = &cloned
	return nil
}

func (r *stubTratamientoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tratamientos, id)
	return nil
}

func (r *stubTratamientoRepo) ContarPorTernero(_ context.Context, terneroID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.tratamientos {
		if t.TerneroID != nil && *t.TerneroID == terneroID {
			n++
		}
	}
	return n, nil
}

func (r *stubTratamientoRepo) TernerosTratados(_ context.Context, f tenancy.Filtro, _ *uuid.UUID) ([]uuid.UUID, error) {
	vistos := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, t := range r.tratamientos {
		if !f.Alcanza(t.EstablecimientoID) || t.TerneroID == nil || vistos[*t.TerneroID] {
			continue
		}
		vistos[*t.TerneroID] = true
		ids = append(ids, *t.TerneroID)
	}
	return ids, nil
}

func (r *stubTratamientoRepo) Contar(_ context.Context, f tenancy.Filtro, _ *uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.tratamientos {
		if f.Alcanza(t.EstablecimientoID) {
			n++
		}
	}
	return n, nil
}

func (r *stubTratamientoRepo) ContarPorTipo(_ context.Context, f tenancy.Filtro) ([]dto.TratamientoPorTipo, error) {
	porTipo := make(map[string]int64)
	for _, t := range r.tratamientos {
		if f.Alcanza(t.EstablecimientoID) {
			porTipo[t.TipoEnfermedad]++
		}
	}
	var rows []dto.TratamientoPorTipo
	for tipo, n := range porTipo {
		rows = append(rows, dto.TratamientoPorTipo{TipoEnfermedad: tipo, Cantidad: n})
	}
	return rows, nil
}

var _ repository.TratamientoRepository = (*stubTratamientoRepo)(nil)

// ── EpisodioDiarrea ──────────────────────────────────────────────────────────

type stubEpisodioRepo struct {
	mu        sync.Mutex
	episodios map[uuid.UUID]*model.EpisodioDiarrea
	// fallarDuplicado makes the next N Create calls lose the numbering race:
	// a competing row with the same numero is inserted and ErrDuplicatedKey
	// is returned, exactly like a concurrent duplicate under the unique index
	fallarDuplicado int
}

func newStubEpisodioRepo() *stubEpisodioRepo {
	return &stubEpisodioRepo{episodios: make(map[uuid.UUID]*model.EpisodioDiarrea)}
}

func (r *stubEpisodioRepo) Create(_ context.Context, e *model.EpisodioDiarrea) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fallarDuplicado > 0 {
		r.fallarDuplicado--
		competidor := *e
		competidor.ID = uuid.New()
		r.episodios[competidor.ID] = &competidor
		return gorm.ErrDuplicatedKey
	}
	for _, otro := range r.episodios {
		if otro.TerneroID == e.TerneroID && otro.NumeroEpisodio == e.NumeroEpisodio {
			return gorm.ErrDuplicatedKey
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cloned := *e
	r.episodios[e.ID] = &cloned
	return nil
}

func (r *stubEpisodioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EpisodioDiarrea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.episodios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *e
	return &cloned, nil
}

func (r *stubEpisodioRepo) List(_ context.Context, f tenancy.Filtro, filter dto.EpisodioFilter) ([]model.EpisodioDiarrea, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.EpisodioDiarrea
	for _, e := range r.episodios {
		if !f.Alcanza(e.EstablecimientoID) {
			continue
		}
		if filter.Severidad != "" && e.Severidad != filter.Severidad {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (r *stubEpisodioRepo) Update(_ context.Context, e *model.EpisodioDiarrea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cloned := *e
	r.episodios[e.ID] = &cloned
	return nil
}

func (r *stubEpisodioRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.episodios, id)
	return nil
}

func (r *stubEpisodioRepo) ContarPorTernero(_ context.Context, terneroID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.episodios {
		if e.TerneroID == terneroID {
			n++
		}
	}
	return n, nil
}

func (r *stubEpisodioRepo) ListPorTernero(_ context.Context, terneroID uuid.UUID) ([]model.EpisodioDiarrea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.EpisodioDiarrea
	for _, e := range r.episodios {
		if e.TerneroID == terneroID {
			result = append(result, *e)
		}
	}
	// numero_episodio ASC, like the real query
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j-1].NumeroEpisodio > result[j].NumeroEpisodio; j-- {
			result[j-1], result[j] = result[j], result[j-1]
		}
	}
	return result, nil
}

func (r *stubEpisodioRepo) TernerosConDiarrea(_ context.Context, f tenancy.Filtro, _ *uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vistos := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, e := range r.episodios {
		if !f.Alcanza(e.EstablecimientoID) || vistos[e.TerneroID] {
			continue
		}
		vistos[e.TerneroID] = true
		ids = append(ids, e.TerneroID)
	}
	return ids, nil
}

func (r *stubEpisodioRepo) Contar(_ context.Context, f tenancy.Filtro, _ *uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.episodios {
		if f.Alcanza(e.EstablecimientoID) {
			n++
		}
	}
	return n, nil
}

func (r *stubEpisodioRepo) ContarPorSeveridad(_ context.Context, f tenancy.Filtro) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string]int64)
	for _, e := range r.episodios {
		if f.Alcanza(e.EstablecimientoID) {
			result[e.Severidad]++
		}
	}
	return result, nil
}

var _ repository.EpisodioRepository = (*stubEpisodioRepo)(nil)

// ── Usuario ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, otro := range r.usuarios {
		if otro.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, f tenancy.Filtro, incluirInactivos bool) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if u.EstablecimientoID != nil && !f.Alcanza(*u.EstablecimientoID) {
			continue
		}
		if !u.Activo && !incluirInactivos {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Aviso dispatcher ─────────────────────────────────────────────────────────

type stubDispatcher struct {
	mu     sync.Mutex
	avisos []interface{}
	fallar bool
}

func (d *stubDispatcher) EnqueueAviso(_ context.Context, payload interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fallar {
		return context.DeadlineExceeded
	}
	d.avisos = append(d.avisos, payload)
	return nil
}
