package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/config"
	"github.com/iliyamo/task-vault/internal/database"
	"github.com/iliyamo/task-vault/internal/handler"
	"github.com/iliyamo/task-vault/internal/middleware"
	"github.com/iliyamo/task-vault/internal/queue"
	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}

	// Alert pipeline: the access log publishes 5xx events, the consumer
	// appends them to logs/alerts.log.
	go func() {
		if err := queue.StartServerErrorConsumer(); err != nil {
			log.Printf("alert consumer stopped: %v", err)
		}
	}()
	alert := func(ev queue.ServerErrorEvent) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishServerError(ctx, ev)
		}()
	}

	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, db, rdb,
		handler.NewAuthHandler(cfg, users),
		handler.NewTaskHandler(tasks),
		middleware.NewAccessLog("log", alert))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
