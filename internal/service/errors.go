package service

import "errors"

// Sentinel errors shared by all services; handlers map them to HTTP statuses
// with errors.Is.
var (
	// ErrNoEncontrado covers both a truly absent entity and one outside the
	// caller's effective filter — the two cases are indistinguishable on
	// purpose, so callers cannot probe other establecimientos.
	ErrNoEncontrado = errors.New("no encontrado")

	// ErrVinculoCruzado: an entity referencing another entity of a different
	// establecimiento. Rejected at write time, never silently re-scoped.
	ErrVinculoCruzado = errors.New("las entidades vinculadas pertenecen a establecimientos distintos")

	// ErrConflicto: the episode-number race lost twice in a row.
	ErrConflicto = errors.New("conflicto de concurrencia, reintente la operacion")

	// ErrInvariante: the four-way health partition failed to reconcile.
	// Signals a data-scoping bug, surfaced as a server-side failure.
	ErrInvariante = errors.New("inconsistencia interna en el reporte sanitario")
)
