package db

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StoreStats represents connection statistics of the store handle.
type StoreStats struct {
	Dialect      string `json:"dialect"`
	OpenConns    int    `json:"open_conns"`
	InUse        int    `json:"in_use"`
	Idle         int    `json:"idle"`
	MaxOpenConns int    `json:"max_open_conns"`
	WaitCount    int64  `json:"wait_count"`
	WaitDuration string `json:"wait_duration"`
	Healthy      bool   `json:"healthy"`
}

// GetStoreStats returns connection statistics for s.
func GetStoreStats(s *Store) *StoreStats {
	stat := s.DB.Stats()
	return &StoreStats{
		Dialect:      s.Dialect,
		OpenConns:    stat.OpenConnections,
		InUse:        stat.InUse,
		Idle:         stat.Idle,
		MaxOpenConns: stat.MaxOpenConnections,
		WaitCount:    stat.WaitCount,
		WaitDuration: stat.WaitDuration.String(),
		Healthy:      stat.OpenConnections > 0,
	}
}

// HealthHandler returns a handler for the store health check endpoint.
func HealthHandler(s *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		err := s.DB.PingContext(ctx)
		stats := GetStoreStats(s)

		if err != nil {
			stats.Healthy = false
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
				"store":  stats,
			})
		}

		stats.Healthy = true
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"store":  stats,
		})
	}
}
