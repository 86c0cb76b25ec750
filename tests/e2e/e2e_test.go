//go:build integration

package e2e

// End-to-end integration tests against real Postgres + Redis via
// testcontainers. Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Clinical cycle: alta de ternero → episodios secuenciales → alerta
//     "recurring" en el cuarto → estadisticas del ternero
//   - Tenancy: un veterinario solo ve su establecimiento; los ajenos
//     responden 404
//   - Reporte sanitario: la particion cuatro vias cierra contra lo cargado
//   - Rodeos: no se elimina un rodeo con terneros; estadisticas con peso
//     promedio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manucavallera/Ganaderia-sub001/internal/config"
	"github.com/manucavallera/Ganaderia-sub001/internal/infra"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("ganaderia_test"),
		tcPostgres.WithUsername("ganaderia"),
		tcPostgres.WithPassword("ganaderia"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	seedAdmin(t, db)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "ganaderia2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, db: db, token: loginBody.AccessToken}
}

func seedAdmin(t *testing.T, db *gorm.DB) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("ganaderia2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin@e2e.test",
		Nombre:       "Admin E2E",
		PasswordHash: string(hash),
		Rol:          model.RolAdministrador,
		Activo:       true,
	}).Error)
}

func (env *testEnv) crearEstablecimiento(t *testing.T, nombre string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/establecimientos",
		jsonBody(t, map[string]any{"nombre": nombre}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var est struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &est)
	return est.ID
}

func (env *testEnv) crearTernero(t *testing.T, estID, caravana string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/terneros",
		jsonBody(t, map[string]any{
			"caravana":           caravana,
			"fecha_nacimiento":   "2026-07-01",
			"establecimiento_id": estID,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ternero struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &ternero)
	return ternero.ID
}

func (env *testEnv) registrarEpisodio(t *testing.T, terneroID, severidad, fecha string) map[string]any {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/episodios",
		jsonBody(t, map[string]any{
			"ternero_id": terneroID,
			"severidad":  severidad,
			"fecha":      fecha,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var episodio map[string]any
	decodeJSON(t, resp, &episodio)
	return episodio
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full clinical cycle: episode numbers are assigned server-side in order, the
// fourth episode carries the "recurring" alert, and the per-animal stats
// reflect the whole history.
func TestE2E_CicloClinicoDelTernero(t *testing.T) {
	env := setupTestEnv(t)

	estID := env.crearEstablecimiento(t, "Estancia La Esperanza")
	terneroID := env.crearTernero(t, estID, "E2E-001")

	fechas := []string{"2026-08-01", "2026-08-05", "2026-08-10", "2026-08-15"}
	var ultimo map[string]any
	for i, fecha := range fechas {
		ultimo = env.registrarEpisodio(t, terneroID, "leve", fecha)
		assert.EqualValues(t, i+1, ultimo["episodeNumber"])
	}

	// fourth episode is tagged recurring
	alerts, _ := ultimo["alerts"].([]any)
	require.Len(t, alerts, 1)
	assert.Equal(t, "recurring", alerts[0])

	statsResp := do(t, env.server, "GET", "/v1/terneros/"+terneroID+"/episodios/estadisticas", nil, env.token)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	var stats struct {
		TotalEpisodios   int     `json:"total_episodios"`
		UltimoEpisodio   *string `json:"ultimo_episodio"`
		RequiereAtencion bool    `json:"requiere_atencion"`
	}
	decodeJSON(t, statsResp, &stats)
	assert.Equal(t, 4, stats.TotalEpisodios)
	require.NotNil(t, stats.UltimoEpisodio)
	assert.Equal(t, "2026-08-15", *stats.UltimoEpisodio)
	assert.True(t, stats.RequiereAtencion)
}

// A severa episode carries the high-severity alert even when it is the first.
func TestE2E_EpisodioSeveroAlertado(t *testing.T) {
	env := setupTestEnv(t)

	estID := env.crearEstablecimiento(t, "Estancia El Ombu")
	terneroID := env.crearTernero(t, estID, "E2E-100")

	episodio := env.registrarEpisodio(t, terneroID, "severa", "2026-08-20")
	alerts, _ := episodio["alerts"].([]any)
	require.Len(t, alerts, 1)
	assert.Equal(t, "high-severity", alerts[0])
}

// A veterinario scoped to one establecimiento lists only its animals, and a
// direct GET of a foreign animal responds 404 — never 403.
func TestE2E_AislamientoPorEstablecimiento(t *testing.T) {
	env := setupTestEnv(t)

	estA := env.crearEstablecimiento(t, "Establecimiento A")
	estB := env.crearEstablecimiento(t, "Establecimiento B")
	propioID := env.crearTernero(t, estA, "A-001")
	ajenoID := env.crearTernero(t, estB, "B-001")

	crearResp := do(t, env.server, "POST", "/v1/usuarios",
		jsonBody(t, map[string]any{
			"username":           "vet@e2e.test",
			"nombre":             "Vet E2E",
			"password":           "vetpass123",
			"rol":                "veterinario",
			"establecimiento_id": estA,
		}), env.token)
	require.Equal(t, http.StatusCreated, crearResp.StatusCode)

	loginResp := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "vet@e2e.test", "password": "vetpass123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)

	listResp := do(t, env.server, "GET", "/v1/terneros", nil, login.AccessToken)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	require.EqualValues(t, 1, list.Total)
	assert.Equal(t, propioID, list.Items[0].ID)

	// the query param of another establecimiento is ignored for non-admins
	filtradoResp := do(t, env.server, "GET", "/v1/terneros?establecimiento_id="+estB, nil, login.AccessToken)
	require.Equal(t, http.StatusOK, filtradoResp.StatusCode)
	var filtrado struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, filtradoResp, &filtrado)
	assert.EqualValues(t, 1, filtrado.Total)

	ajenoResp := do(t, env.server, "GET", "/v1/terneros/"+ajenoID, nil, login.AccessToken)
	assert.Equal(t, http.StatusNotFound, ajenoResp.StatusCode)
}

// The health report's four-way partition closes against what was loaded.
func TestE2E_ReporteSanitarioParticionado(t *testing.T) {
	env := setupTestEnv(t)

	estID := env.crearEstablecimiento(t, "Estancia Los Alamos")

	// 4 animals: t1 treated+diarrhea, t2 only treated, t3 only diarrhea, t4 healthy
	t1 := env.crearTernero(t, estID, "R-001")
	t2 := env.crearTernero(t, estID, "R-002")
	env.crearTernero(t, estID, "R-003")
	t3ID := env.crearTernero(t, estID, "R-004")

	for _, terneroID := range []string{t1, t2} {
		resp := do(t, env.server, "POST", "/v1/tratamientos",
			jsonBody(t, map[string]any{
				"tipo_enfermedad":    "neumonia",
				"turno":              "manana",
				"ternero_id":         terneroID,
				"fecha":              "2026-08-10",
				"establecimiento_id": estID,
			}), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	env.registrarEpisodio(t, t1, "moderada", "2026-08-12")
	env.registrarEpisodio(t, t3ID, "leve", "2026-08-13")

	repResp := do(t, env.server, "GET", "/v1/reportes/sanitario?establecimiento_id="+estID, nil, env.token)
	require.Equal(t, http.StatusOK, repResp.StatusCode)
	var rep struct {
		TotalAnimals  int64 `json:"totalAnimals"`
		BothProblems  int64 `json:"bothProblems"`
		OnlyTreatment int64 `json:"onlyTreatment"`
		OnlyDiarrhea  int64 `json:"onlyDiarrhea"`
		Healthy       int64 `json:"healthy"`
		DiarrheaBreakdown struct {
			Mild     int64 `json:"mild"`
			Moderate int64 `json:"moderate"`
		} `json:"diarrheaBreakdown"`
	}
	decodeJSON(t, repResp, &rep)
	assert.EqualValues(t, 4, rep.TotalAnimals)
	assert.EqualValues(t, 1, rep.BothProblems)
	assert.EqualValues(t, 1, rep.OnlyTreatment)
	assert.EqualValues(t, 1, rep.OnlyDiarrhea)
	assert.EqualValues(t, 1, rep.Healthy)
	assert.Equal(t, rep.TotalAnimals, rep.BothProblems+rep.OnlyTreatment+rep.OnlyDiarrhea+rep.Healthy)
	assert.EqualValues(t, 1, rep.DiarrheaBreakdown.Mild)
	assert.EqualValues(t, 1, rep.DiarrheaBreakdown.Moderate)
}

// A rodeo with assigned animals cannot be deleted; deactivation works and the
// stats endpoint reports the average weight of its animals.
func TestE2E_RodeoConTerneros(t *testing.T) {
	env := setupTestEnv(t)

	estID := env.crearEstablecimiento(t, "Estancia Santa Rita")

	rodeoResp := do(t, env.server, "POST", "/v1/rodeos",
		jsonBody(t, map[string]any{
			"nombre":             "Recria Norte",
			"tipo":               "recria",
			"establecimiento_id": estID,
		}), env.token)
	require.Equal(t, http.StatusCreated, rodeoResp.StatusCode)
	var rodeo struct {
		ID string `json:"id"`
	}
	decodeJSON(t, rodeoResp, &rodeo)

	for i, peso := range []float64{80, 120} {
		resp := do(t, env.server, "POST", "/v1/terneros",
			jsonBody(t, map[string]any{
				"caravana":           fmt.Sprintf("RN-%03d", i+1),
				"fecha_nacimiento":   "2026-06-15",
				"establecimiento_id": estID,
				"rodeo_id":           rodeo.ID,
			}), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var ternero struct {
			ID string `json:"id"`
		}
		decodeJSON(t, resp, &ternero)

		pesajeResp := do(t, env.server, "POST", "/v1/terneros/"+ternero.ID+"/pesajes",
			jsonBody(t, map[string]any{"peso": peso, "fecha": "2026-08-25"}), env.token)
		require.Equal(t, http.StatusCreated, pesajeResp.StatusCode)
	}

	delResp := do(t, env.server, "DELETE", "/v1/rodeos/"+rodeo.ID, nil, env.token)
	assert.Equal(t, http.StatusConflict, delResp.StatusCode)

	statsResp := do(t, env.server, "GET", "/v1/rodeos/"+rodeo.ID+"/estadisticas", nil, env.token)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	var stats struct {
		TotalAnimals  int64  `json:"totalAnimals"`
		AverageWeight string `json:"averageWeight"`
		Healthy       int64  `json:"healthy"`
	}
	decodeJSON(t, statsResp, &stats)
	assert.EqualValues(t, 2, stats.TotalAnimals)
	assert.Equal(t, "100", stats.AverageWeight)
	assert.EqualValues(t, 2, stats.Healthy)

	desactivarResp := do(t, env.server, "PATCH", "/v1/rodeos/"+rodeo.ID+"/desactivar", nil, env.token)
	assert.Equal(t, http.StatusNoContent, desactivarResp.StatusCode)
}
