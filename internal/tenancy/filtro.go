// Package tenancy implements the single tenancy resolution policy used by
// every data module. Each request resolves its effective filter ONCE at the
// boundary; repositories and services receive the resolved Filtro as a value
// and never re-derive the admin/establecimiento branching themselves.
package tenancy

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSinEstablecimiento: a non-admin caller has no establecimiento assigned.
// The operation is rejected before querying — it never defaults to "see all".
var ErrSinEstablecimiento = errors.New("el usuario no tiene establecimiento asignado")

// ErrEstablecimientoRequerido: an admin create without an explicit
// establecimiento_id — admins are not scoped, so the target must be named.
var ErrEstablecimientoRequerido = errors.New("establecimiento_id es requerido")

// Filtro is the effective tenancy scope of a request: either all
// establecimientos (admin with no explicit selection) or exactly one.
// The zero value is NOT valid; build it via SinFiltro or FiltrarPor.
type Filtro struct {
	establecimientoID *uuid.UUID
	valido            bool
}

// SinFiltro returns the unscoped filter (admin viewing all tenants).
func SinFiltro() Filtro {
	return Filtro{valido: true}
}

// FiltrarPor returns a filter scoped to exactly one establecimiento.
func FiltrarPor(id uuid.UUID) Filtro {
	return Filtro{establecimientoID: &id, valido: true}
}

// Todos reports whether the filter spans all establecimientos.
func (f Filtro) Todos() bool {
	return f.valido && f.establecimientoID == nil
}

// EstablecimientoID returns the scoped establecimiento, if any.
func (f Filtro) EstablecimientoID() (uuid.UUID, bool) {
	if f.establecimientoID == nil {
		return uuid.Nil, false
	}
	return *f.establecimientoID, true
}

// Alcanza reports whether a fetched row with the given establecimiento_id is
// visible under the filter. Single-entity reads must call this after fetch;
// a mismatch is reported as "not found" — never "forbidden" — so callers
// cannot probe for rows in other establecimientos.
func (f Filtro) Alcanza(establecimientoID uuid.UUID) bool {
	if f.establecimientoID == nil {
		return f.valido
	}
	return *f.establecimientoID == establecimientoID
}

// Aplicar adds the tenancy WHERE clause to a query. All scoped tables carry
// an establecimiento_id column, so the clause is shared by every repository.
func (f Filtro) Aplicar(q *gorm.DB) *gorm.DB {
	if f.establecimientoID == nil {
		return q
	}
	return q.Where("establecimiento_id = ?", *f.establecimientoID)
}

// Resolver computes the effective filter for a request.
//
// Admin: an explicit establecimiento_id scopes to that tenant, otherwise the
// filter spans all tenants. Non-admin: always scoped to the caller's own
// establecimiento; a non-admin without one is rejected with
// ErrSinEstablecimiento.
func Resolver(callerEstablecimientoID *uuid.UUID, esAdmin bool, solicitado *uuid.UUID) (Filtro, error) {
	if esAdmin {
		if solicitado != nil {
			return FiltrarPor(*solicitado), nil
		}
		return SinFiltro(), nil
	}
	if callerEstablecimientoID != nil {
		return FiltrarPor(*callerEstablecimientoID), nil
	}
	return Filtro{}, ErrSinEstablecimiento
}

// EstablecimientoParaAlta is the write-path corollary of Resolver: on create,
// a non-admin's entity is forced to the caller's establecimiento regardless of
// the request payload; only an admin may (and must) name one explicitly.
func EstablecimientoParaAlta(callerEstablecimientoID *uuid.UUID, esAdmin bool, solicitado *uuid.UUID) (uuid.UUID, error) {
	if esAdmin {
		if solicitado == nil {
			return uuid.Nil, ErrEstablecimientoRequerido
		}
		return *solicitado, nil
	}
	if callerEstablecimientoID == nil {
		return uuid.Nil, ErrSinEstablecimiento
	}
	return *callerEstablecimientoID, nil
}
