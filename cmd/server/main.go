package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/config"
	"github.com/bareloved/gigmaster-sub001/internal/database"
	"github.com/bareloved/gigmaster-sub001/internal/handler"
	"github.com/bareloved/gigmaster-sub001/internal/middleware"
	"github.com/bareloved/gigmaster-sub001/internal/queue"
	"github.com/bareloved/gigmaster-sub001/internal/repository"
	"github.com/bareloved/gigmaster-sub001/internal/router"
	"github.com/bareloved/gigmaster-sub001/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the cache and rate limiter degrade
	// to pass-throughs.
	rdb := config.NewRedisClient()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	gigRepo := repository.NewGigRepo(db)
	lineupRepo := repository.NewLineupRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	packingRepo := repository.NewPackingRepo(db)
	setlistRepo := repository.NewSetlistRepo(db)
	shareRepo := repository.NewShareRepo(db)
	contactRepo := repository.NewContactRepo(db)

	packs := service.NewPackService(db, gigRepo, lineupRepo, scheduleRepo,
		materialRepo, packingRepo, setlistRepo)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	gigHandler := handler.NewGigHandler(cfg, gigRepo, shareRepo,
		contactRepo, lineupRepo, packs)
	publicHandler := handler.NewPublicHandler(gigRepo, shareRepo, packs)

	e := echo.New()
	e.HideBanner = true

	rlCfg := config.LoadRateLimitConfig()
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	cacheCfg := config.LoadCacheConfig()
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterGigs(e, gigHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, cache)

	// In-process consumer of the gig.updated queue; it appends activity
	// lines under logs/. The calendar.sync queue is drained by the
	// external calendar bridge.
	go func() {
		if err := queue.StartGigActivityConsumer(); err != nil {
			log.Printf("gig activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
