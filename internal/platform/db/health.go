package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler returns an echo handler that pings the database with a short
// timeout. A nil pool (memory-only deployment) reports "disabled".
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		if pool == nil {
			return c.JSON(http.StatusOK, map[string]string{"database": "disabled"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"database": "unreachable",
				"error":    err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"database": "ok"})
	}
}
