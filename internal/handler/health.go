package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Status reports API and database liveness at the root path. The store
// is a collaborator whose health is exposed here, not owned: a failed
// ping answers 503 while the API itself keeps serving.
func Status(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"success":  false,
				"message":  "API available but the database is not reachable",
				"database": "down",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  "task API running",
			"database": "up",
		})
	}
}
