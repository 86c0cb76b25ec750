package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/infra"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/repository"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ttlReporte: the report aggregates live herd data, so the cache only absorbs
// bursts; a minute of staleness is acceptable.
const ttlReporte = 60 * time.Second

// ReporteService builds the consolidated herd health report.
type ReporteService interface {
	GenerarReporteSanitario(ctx context.Context, f tenancy.Filtro) (*dto.ReporteSanitarioResponse, error)
	GenerarReporteSanitarioPDF(ctx context.Context, f tenancy.Filtro) ([]byte, error)
}

type reporteService struct {
	terneroRepo     repository.TerneroRepository
	tratamientoRepo repository.TratamientoRepository
	episodioRepo    repository.EpisodioRepository
	rdb             *redis.Client // nil disables caching
}

func NewReporteService(
	terneroRepo repository.TerneroRepository,
	tratamientoRepo repository.TratamientoRepository,
	episodioRepo repository.EpisodioRepository,
	rdb *redis.Client,
) ReporteService {
	return &reporteService{
		terneroRepo:     terneroRepo,
		tratamientoRepo: tratamientoRepo,
		episodioRepo:    episodioRepo,
		rdb:             rdb,
	}
}

func (s *reporteService) GenerarReporteSanitario(ctx context.Context, f tenancy.Filtro) (*dto.ReporteSanitarioResponse, error) {
	clave := claveReporte(f)
	if cached := s.leerCache(ctx, clave); cached != nil {
		return cached, nil
	}

	total, muertos, err := s.terneroRepo.Contar(ctx, f, nil)
	if err != nil {
		return nil, err
	}
	tratados, err := s.tratamientoRepo.TernerosTratados(ctx, f, nil)
	if err != nil {
		return nil, err
	}
	conDiarrea, err := s.episodioRepo.TernerosConDiarrea(ctx, f, nil)
	if err != nil {
		return nil, err
	}
	tratamientosTotal, err := s.tratamientoRepo.Contar(ctx, f, nil)
	if err != nil {
		return nil, err
	}
	episodiosTotal, err := s.episodioRepo.Contar(ctx, f, nil)
	if err != nil {
		return nil, err
	}
	porTipo, err := s.tratamientoRepo.ContarPorTipo(ctx, f)
	if err != nil {
		return nil, err
	}
	porSeveridad, err := s.episodioRepo.ContarPorSeveridad(ctx, f)
	if err != nil {
		return nil, err
	}

	particion, err := calcularParticion(total, tratados, conDiarrea)
	if err != nil {
		return nil, err
	}

	reporte := &dto.ReporteSanitarioResponse{
		TotalAnimals:     total,
		DeadAnimals:      muertos,
		AliveAnimals:     total - muertos,
		MortalityPercent: porcentaje(muertos, total),
		MorbidityPercent: porcentaje(particion.Enfermos(), total),

		TreatedAnimals:     int64(len(tratados)),
		TreatmentsTotal:    tratamientosTotal,
		TreatmentBreakdown: porTipo,

		DiarrheaAnimals:       int64(len(conDiarrea)),
		DiarrheaEpisodesTotal: episodiosTotal,
		DiarrheaBreakdown: dto.DesgloseSeveridad{
			Leve:     porSeveridad[model.SeveridadLeve],
			Moderada: porSeveridad[model.SeveridadModerada],
			Severa:   porSeveridad[model.SeveridadSevera],
			Critica:  porSeveridad[model.SeveridadCritica],
		},

		BothProblems:  particion.Ambos,
		OnlyTreatment: particion.SoloTratamiento,
		OnlyDiarrhea:  particion.SoloDiarrea,
		Healthy:       particion.Sanos,
	}

	s.escribirCache(ctx, clave, reporte)
	return reporte, nil
}

func (s *reporteService) GenerarReporteSanitarioPDF(ctx context.Context, f tenancy.Filtro) ([]byte, error) {
	reporte, err := s.GenerarReporteSanitario(ctx, f)
	if err != nil {
		return nil, err
	}
	return infra.GenerarReporteSanitarioPDF(reporte)
}

func claveReporte(f tenancy.Filtro) string {
	if id, ok := f.EstablecimientoID(); ok {
		return "reporte:sanitario:" + id.String()
	}
	return "reporte:sanitario:todos"
}

func (s *reporteService) leerCache(ctx context.Context, clave string) *dto.ReporteSanitarioResponse {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, clave).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("clave", clave).Msg("no se pudo leer el reporte cacheado")
		}
		return nil
	}
	var reporte dto.ReporteSanitarioResponse
	if err := json.Unmarshal(data, &reporte); err != nil {
		return nil
	}
	return &reporte
}

func (s *reporteService) escribirCache(ctx context.Context, clave string, reporte *dto.ReporteSanitarioResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(reporte)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, clave, data, ttlReporte).Err(); err != nil {
		log.Warn().Err(err).Str("clave", clave).Msg("no se pudo cachear el reporte")
	}
}

// Particion is the four-way health split of a population: every animal falls
// in exactly one bucket.
type Particion struct {
	Ambos           int64
	SoloTratamiento int64
	SoloDiarrea     int64
	Sanos           int64
}

// Enfermos is the count of animals with at least one problem.
func (p Particion) Enfermos() int64 {
	return p.Ambos + p.SoloTratamiento + p.SoloDiarrea
}

// calcularParticion splits the population into ambos / solo tratamiento /
// solo diarrea / sanos. The four buckets must sum to total; if they cannot
// (stale ids referencing animals outside the population) the data is
// internally inconsistent and we fail loudly instead of reporting nonsense.
func calcularParticion(total int64, tratados, conDiarrea []uuid.UUID) (Particion, error) {
	diarreaSet := make(map[uuid.UUID]struct{}, len(conDiarrea))
	for _, id := range conDiarrea {
		diarreaSet[id] = struct{}{}
	}
	var ambos int64
	for _, id := range tratados {
		if _, ok := diarreaSet[id]; ok {
			ambos++
		}
	}

	p := Particion{
		Ambos:           ambos,
		SoloTratamiento: int64(len(tratados)) - ambos,
		SoloDiarrea:     int64(len(conDiarrea)) - ambos,
	}
	p.Sanos = total - p.Enfermos()

	if p.Sanos < 0 || p.Ambos+p.SoloTratamiento+p.SoloDiarrea+p.Sanos != total {
		return Particion{}, fmt.Errorf(
			"particion sanitaria no cierra: total=%d ambos=%d soloTratamiento=%d soloDiarrea=%d sanos=%d: %w",
			total, p.Ambos, p.SoloTratamiento, p.SoloDiarrea, p.Sanos, ErrInvariante)
	}
	return p, nil
}

// porcentaje computes parte/total as a percentage rounded to 2 decimals;
// an empty population reports 0 rather than dividing by zero.
func porcentaje(parte, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero.Round(2)
	}
	return decimal.NewFromInt(parte).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2)
}
