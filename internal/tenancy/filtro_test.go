package tenancy_test

import (
	"testing"

	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver(t *testing.T) {
	propio := uuid.New()
	otro := uuid.New()

	tests := []struct {
		name       string
		caller     *uuid.UUID
		esAdmin    bool
		solicitado *uuid.UUID
		wantTodos  bool
		wantScope  *uuid.UUID
		wantErr    error
	}{
		{
			name:      "admin sin seleccion ve todos",
			esAdmin:   true,
			wantTodos: true,
		},
		{
			name:       "admin con seleccion queda acotado",
			esAdmin:    true,
			solicitado: &otro,
			wantScope:  &otro,
		},
		{
			name:       "no admin ignora la seleccion y queda en su establecimiento",
			caller:     &propio,
			solicitado: &otro,
			wantScope:  &propio,
		},
		{
			name:      "no admin sin seleccion queda en su establecimiento",
			caller:    &propio,
			wantScope: &propio,
		},
		{
			name:    "no admin sin establecimiento es rechazado",
			wantErr: tenancy.ErrSinEstablecimiento,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tenancy.Resolver(tt.caller, tt.esAdmin, tt.solicitado)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTodos, f.Todos())
			if tt.wantScope != nil {
				id, ok := f.EstablecimientoID()
				require.True(t, ok)
				assert.Equal(t, *tt.wantScope, id)
			}
		})
	}
}

func TestAlcanza(t *testing.T) {
	propio := uuid.New()
	otro := uuid.New()

	sinFiltro := tenancy.SinFiltro()
	assert.True(t, sinFiltro.Alcanza(propio))
	assert.True(t, sinFiltro.Alcanza(otro))

	acotado := tenancy.FiltrarPor(propio)
	assert.True(t, acotado.Alcanza(propio))
	assert.False(t, acotado.Alcanza(otro))

	// the zero value never grants visibility
	var cero tenancy.Filtro
	assert.False(t, cero.Alcanza(propio))
}

func TestEstablecimientoParaAlta(t *testing.T) {
	propio := uuid.New()
	otro := uuid.New()

	t.Run("admin debe nombrar el establecimiento", func(t *testing.T) {
		_, err := tenancy.EstablecimientoParaAlta(nil, true, nil)
		require.ErrorIs(t, err, tenancy.ErrEstablecimientoRequerido)

		id, err := tenancy.EstablecimientoParaAlta(nil, true, &otro)
		require.NoError(t, err)
		assert.Equal(t, otro, id)
	})

	t.Run("no admin queda forzado al propio aunque pida otro", func(t *testing.T) {
		id, err := tenancy.EstablecimientoParaAlta(&propio, false, &otro)
		require.NoError(t, err)
		assert.Equal(t, propio, id)
	})

	t.Run("no admin sin establecimiento es rechazado", func(t *testing.T) {
		_, err := tenancy.EstablecimientoParaAlta(nil, false, &otro)
		require.ErrorIs(t, err, tenancy.ErrSinEstablecimiento)
	})
}
