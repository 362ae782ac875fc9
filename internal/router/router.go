// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/task-vault/internal/config"
	"github.com/iliyamo/task-vault/internal/handler"
	"github.com/iliyamo/task-vault/internal/middleware"
)

// Register mounts every route. The /auth group sits behind the rate
// limiter; profile update, refresh and all task routes additionally
// sit behind the authorization gate. Unknown routes get a JSON 404 so
// clients never see an HTML error page.
func Register(e *echo.Echo, cfg config.Config, db *sql.DB, rdb *redis.Client,
	auth *handler.AuthHandler, tasks *handler.TaskHandler, accessLog echo.MiddlewareFunc) {

	if accessLog != nil {
		e.Use(accessLog)
	}

	e.GET("/", handler.Status(db))

	limiter := middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb)
	gate := middleware.JWTAuth(cfg.JWTSecret)

	g := e.Group("/auth", limiter)
	g.POST("/register", auth.Register)
	g.POST("/login", auth.Login)
	g.PATCH("/profile", auth.UpdateProfile, gate)
	g.POST("/refresh", auth.Refresh, gate)

	t := e.Group("/tasks", gate)
	t.GET("", tasks.List)
	t.GET("/:id", tasks.Get)
	t.POST("", tasks.Create)
	t.PATCH("/:id", tasks.Update)
	t.DELETE("/:id", tasks.Delete)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"error": echo.Map{
				"message": "route not found",
				"path":    c.Request().URL.Path,
				"method":  c.Request().Method,
			},
		})
	})
}
