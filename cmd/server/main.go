package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/rfuentes/event-invitation/internal/config"
	"github.com/rfuentes/event-invitation/internal/database"
	"github.com/rfuentes/event-invitation/internal/event"
	"github.com/rfuentes/event-invitation/internal/handler"
	"github.com/rfuentes/event-invitation/internal/middleware"
	"github.com/rfuentes/event-invitation/internal/queue"
	"github.com/rfuentes/event-invitation/internal/repository"
	"github.com/rfuentes/event-invitation/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unavailable, caching and rate limiting
	// degrade to no-ops and the API keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	guests := repository.NewGuestRepo(db)
	admins := repository.NewAdminRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := event.NewStore(cfg.EventFile)

	authH := handler.NewAuthHandler(cfg, admins, tokens)
	publicH := handler.NewPublicHandler(guests, events)
	adminH := handler.NewAdminHandler(cfg, guests, events)

	// Background audit consumer; reconnects on its own.
	go func() {
		if err := queue.StartRSVPConsumer(); err != nil {
			log.Printf("rsvp consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheMW, rateMW)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
