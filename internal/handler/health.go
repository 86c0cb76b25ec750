package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports connectivity to Postgres and Redis. Redis being down only
// degrades the service (no cache, no email avisos), so it is reported but
// does not flip the status to 503 on its own.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbOK := false
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			dbOK = true
		}
		redisOK := rdb.Ping(ctx).Err() == nil

		estado := func(ok bool) string {
			if ok {
				return "connected"
			}
			return "error"
		}

		status := http.StatusOK
		if !dbOK {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      dbOK,
			"service": "ganaderia-backend",
			"db":      estado(dbOK),
			"redis":   estado(redisOK),
		})
	}
}
