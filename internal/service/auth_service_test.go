package service_test

import (
	"context"
	"testing"

	"github.com/manucavallera/Ganaderia-sub001/internal/config"
	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authFixture(t *testing.T) (service.AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

// MinCost keeps the fixture fast; production hashes use cost 12.
func usuarioConPassword(t *testing.T, repo *stubUsuarioRepo, username, password, rol string, estID *uuid.UUID) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:          username,
		Nombre:            "Usuario de Prueba",
		PasswordHash:      string(hash),
		Rol:               rol,
		EstablecimientoID: estID,
		Activo:            true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginDevuelveTokens(t *testing.T) {
	svc, repo := authFixture(t)
	estID := uuid.New()
	usuarioConPassword(t, repo, "vet1", "secreto123", model.RolVeterinario, &estID)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "vet1", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "vet1", resp.User.Username)
	require.NotNil(t, resp.User.EstablecimientoID)
	assert.Equal(t, estID.String(), *resp.User.EstablecimientoID)
}

func TestLoginConPasswordIncorrecta(t *testing.T) {
	svc, repo := authFixture(t)
	usuarioConPassword(t, repo, "vet1", "secreto123", model.RolAdministrador, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "vet1", Password: "otra"})
	require.Error(t, err)
	assert.EqualError(t, err, "credenciales invalidas")
}

// The error for an unknown username is identical to a wrong password, so the
// login endpoint never reveals which usernames exist.
func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	require.Error(t, err)
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestLoginUsuarioInactivoRechazado(t *testing.T) {
	svc, repo := authFixture(t)
	u := usuarioConPassword(t, repo, "vet1", "secreto123", model.RolAdministrador, nil)
	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "vet1", Password: "secreto123"})
	require.Error(t, err)
	assert.EqualError(t, err, "credenciales invalidas")
}

func TestRefreshRenuevaTokens(t *testing.T) {
	svc, repo := authFixture(t)
	usuarioConPassword(t, repo, "admin", "secreto123", model.RolAdministrador, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin", resp.User.Username)
}

func TestRefreshConTokenInvalido(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.EqualError(t, err, "refresh token invalido o expirado")
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	svc, repo := authFixture(t)
	u := usuarioConPassword(t, repo, "op1", "secreto123", model.RolAdministrador, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "op1", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestCrearUsuarioOperarioRequiereEstablecimiento(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "op1",
		Nombre:   "Operario Uno",
		Password: "secreto123",
		Rol:      model.RolOperario,
	})
	require.ErrorIs(t, err, tenancy.ErrSinEstablecimiento)
}

func TestCrearUsuarioAdministradorSinEstablecimiento(t *testing.T) {
	svc, _ := authFixture(t)

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "admin2",
		Nombre:   "Administrador Dos",
		Password: "secreto123",
		Rol:      model.RolAdministrador,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.EstablecimientoID)
	assert.True(t, resp.Activo)
}

func TestCrearUsuarioVeterinarioConEstablecimiento(t *testing.T) {
	svc, _ := authFixture(t)
	estID := uuid.New().String()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:          "vet2",
		Nombre:            "Veterinaria Dos",
		Password:          "secreto123",
		Rol:               model.RolVeterinario,
		EstablecimientoID: &estID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.EstablecimientoID)
	assert.Equal(t, estID, *resp.EstablecimientoID)
}

func TestActualizarUsuarioNoPuedeQuedarSinEstablecimiento(t *testing.T) {
	svc, repo := authFixture(t)
	u := usuarioConPassword(t, repo, "admin", "secreto123", model.RolAdministrador, nil)

	_, err := svc.ActualizarUsuario(context.Background(), u.ID, dto.ActualizarUsuarioRequest{
		Rol: model.RolOperario,
	})
	require.ErrorIs(t, err, tenancy.ErrSinEstablecimiento)
}
