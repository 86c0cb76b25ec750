package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/manucavallera/Ganaderia-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is a per-IP sliding window counter shared by the login and the
// general API limiters.
type ventana struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

type limitador struct {
	mu      sync.Mutex
	porIP   map[string]*ventana
	limite  int
	periodo time.Duration
	mensaje string
}

func nuevoLimitador(limite int, periodo time.Duration, mensaje string) *limitador {
	l := &limitador{
		porIP:   make(map[string]*ventana),
		limite:  limite,
		periodo: periodo,
		mensaje: mensaje,
	}
	registrarParaPurga(l)
	return l
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		l.mu.Lock()
		v, ok := l.porIP[ip]
		if !ok {
			v = &ventana{}
			l.porIP[ip] = v
		}
		l.mu.Unlock()

		v.mu.Lock()
		defer v.mu.Unlock()

		now := time.Now()
		if now.After(v.windowEnd) {
			v.count = 0
			v.windowEnd = now.Add(l.periodo)
		}

		v.count++
		if v.count > l.limite {
			c.Header("Retry-After", v.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return nuevoLimitador(20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter is the general sliding-window limiter applied to the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return nuevoLimitador(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// ── Purge goroutine ──────────────────────────────────────────────────────────
// Expired windows are dropped periodically so IPs that never return do not
// accumulate.

const purgeInterval = 5 * time.Minute

var (
	limitadoresMu sync.Mutex
	limitadores   []*limitador
	purgaIniciada bool
)

func registrarParaPurga(l *limitador) {
	limitadoresMu.Lock()
	defer limitadoresMu.Unlock()
	limitadores = append(limitadores, l)
	if !purgaIniciada {
		purgaIniciada = true
		go purgarVentanasVencidas()
	}
}

func purgarVentanasVencidas() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		limitadoresMu.Lock()
		activos := make([]*limitador, len(limitadores))
		copy(activos, limitadores)
		limitadoresMu.Unlock()

		purgadas := 0
		for _, l := range activos {
			l.mu.Lock()
			for ip, v := range l.porIP {
				v.mu.Lock()
				if now.After(v.windowEnd) {
					delete(l.porIP, ip)
					purgadas++
				}
				v.mu.Unlock()
			}
			l.mu.Unlock()
		}

		if purgadas > 0 {
			log.Debug().Int("ventanas_purgadas", purgadas).Msg("rate limiter purged")
		}
	}
}
