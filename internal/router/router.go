package router

import (
	"time"

	"github.com/manucavallera/Ganaderia-sub001/internal/config"
	"github.com/manucavallera/Ganaderia-sub001/internal/handler"
	"github.com/manucavallera/Ganaderia-sub001/internal/middleware"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/repository"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"
	"github.com/manucavallera/Ganaderia-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	establecimientoRepo := repository.NewEstablecimientoRepository(db)
	terneroRepo := repository.NewTerneroRepository(db)
	madreRepo := repository.NewMadreRepository(db)
	tratamientoRepo := repository.NewTratamientoRepository(db)
	episodioRepo := repository.NewEpisodioRepository(db)
	rodeoRepo := repository.NewRodeoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	establecimientoSvc := service.NewEstablecimientoService(establecimientoRepo)
	terneroSvc := service.NewTerneroService(terneroRepo, madreRepo, rodeoRepo, tratamientoRepo, episodioRepo)
	madreSvc := service.NewMadreService(madreRepo, terneroRepo)
	tratamientoSvc := service.NewTratamientoService(tratamientoRepo, terneroRepo)
	episodioSvc := service.NewEpisodioService(episodioRepo, terneroRepo, establecimientoRepo, dispatcher)
	rodeoSvc := service.NewRodeoService(rodeoRepo, terneroRepo, tratamientoRepo, episodioRepo)
	reporteSvc := service.NewReporteService(terneroRepo, tratamientoRepo, episodioRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	establecimientosH := handler.NewEstablecimientosHandler(establecimientoSvc)
	ternerosH := handler.NewTernerosHandler(terneroSvc)
	madresH := handler.NewMadresHandler(madreSvc)
	tratamientosH := handler.NewTratamientosHandler(tratamientoSvc)
	episodiosH := handler.NewEpisodiosHandler(episodioSvc)
	rodeosH := handler.NewRodeosHandler(rodeoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolAdministrador, model.RolVeterinario, model.RolOperario)
	clinicos := middleware.RequireRole(model.RolAdministrador, model.RolVeterinario)
	admin := middleware.RequireRole(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		// Usuarios y establecimientos — administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}

		establecimientos := v1.Group("/establecimientos", admin)
		{
			establecimientos.POST("", establecimientosH.Crear)
			establecimientos.GET("", establecimientosH.Listar)
			establecimientos.GET("/:id", establecimientosH.ObtenerPorID)
			establecimientos.PUT("/:id", establecimientosH.Actualizar)
			establecimientos.DELETE("/:id", establecimientosH.Desactivar)
			establecimientos.PATCH("/:id/reactivar", establecimientosH.Reactivar)
		}

		// Terneros — every role registers animals and weights
		terneros := v1.Group("/terneros", todos)
		{
			terneros.POST("", ternerosH.Crear)
			terneros.GET("", ternerosH.Listar)
			terneros.GET("/:id", ternerosH.ObtenerPorID)
			terneros.PUT("/:id", ternerosH.Actualizar)
			terneros.DELETE("/:id", admin, ternerosH.Eliminar)
			terneros.POST("/:id/pesajes", ternerosH.RegistrarPesaje)
			terneros.GET("/:id/pesajes", ternerosH.ListarPesajes)
			terneros.GET("/:id/episodios/estadisticas", episodiosH.Estadisticas)
		}

		madres := v1.Group("/madres", todos)
		{
			madres.POST("", madresH.Crear)
			madres.GET("", madresH.Listar)
			madres.GET("/:id", madresH.ObtenerPorID)
			madres.PUT("/:id", madresH.Actualizar)
			madres.DELETE("/:id", admin, madresH.Eliminar)
		}

		// Clinical records — veterinario or administrador
		tratamientos := v1.Group("/tratamientos", clinicos)
		{
			tratamientos.POST("", tratamientosH.Crear)
			tratamientos.GET("", tratamientosH.Listar)
			tratamientos.GET("/:id", tratamientosH.ObtenerPorID)
			tratamientos.PUT("/:id", tratamientosH.Actualizar)
			tratamientos.DELETE("/:id", tratamientosH.Eliminar)
		}

		episodios := v1.Group("/episodios", clinicos)
		{
			episodios.POST("", episodiosH.Registrar)
			episodios.GET("", episodiosH.Listar)
			episodios.GET("/:id", episodiosH.ObtenerPorID)
			episodios.PUT("/:id", episodiosH.Actualizar)
			episodios.DELETE("/:id", episodiosH.Eliminar)
		}

		rodeos := v1.Group("/rodeos", todos)
		{
			rodeos.POST("", rodeosH.Crear)
			rodeos.GET("", rodeosH.Listar)
			rodeos.GET("/:id", rodeosH.ObtenerPorID)
			rodeos.PUT("/:id", rodeosH.Actualizar)
			rodeos.DELETE("/:id", admin, rodeosH.Eliminar)
			rodeos.PATCH("/:id/desactivar", rodeosH.Desactivar)
			rodeos.GET("/:id/estadisticas", rodeosH.Estadisticas)
		}

		reportes := v1.Group("/reportes", todos)
		{
			reportes.GET("/sanitario", reportesH.Sanitario)
			reportes.GET("/sanitario/pdf", reportesH.SanitarioPDF)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
