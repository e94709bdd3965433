package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/bookhive/reservations/internal/config"
	"github.com/bookhive/reservations/internal/database"
	"github.com/bookhive/reservations/internal/domain"
	"github.com/bookhive/reservations/internal/handler"
	"github.com/bookhive/reservations/internal/middleware"
	"github.com/bookhive/reservations/internal/queue"
	"github.com/bookhive/reservations/internal/repository"
	"github.com/bookhive/reservations/internal/router"
	"github.com/bookhive/reservations/internal/service"
)

func main() {
	// Load .env when present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Options{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		PingTimeout:     cfg.StoreTimeout,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(ctx, db); err != nil {
			log.Fatalf("demo seed failed: %v", err)
		}
	}

	resourceRepo := repository.NewResourceRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	recordRepo := repository.NewRecordRepo(db)

	svc := service.NewReservationService(resourceRepo, reservationRepo, cfg.StoreTimeout)

	// Redis is optional: a nil client turns caching and rate limiting
	// into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	listCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	domains := make([]router.DomainHandlers, 0, 3)
	for _, dom := range domain.All() {
		domains = append(domains, router.DomainHandlers{
			Dom:          dom,
			Resources:    handler.NewResourceHandler(dom, resourceRepo),
			Reservations: handler.NewReservationHandler(dom, svc, reservationRepo, queue.PublishReservationAccepted),
		})
	}

	router.RegisterRoutes(e)
	router.RegisterAPI(e, domains, handler.NewRecordHandler(recordRepo), listCache)

	if cfg.ConsumerEnabled {
		go func() {
			if err := queue.StartReservationConsumer(); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
