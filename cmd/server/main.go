package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"cinema-box-office/internal/config"
	"cinema-box-office/internal/handler"
	"cinema-box-office/internal/monitoring"
	"cinema-box-office/internal/queue"
	"cinema-box-office/internal/repository"
	"cinema-box-office/internal/router"
	"cinema-box-office/internal/service"
	"cinema-box-office/internal/snapshot"
)

func main() {
	// Load .env when present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	// Optional Redis: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and caching disabled")
	}

	// The store owns all state.  Restore the last snapshot when one
	// exists; otherwise seed the demo fixture.
	store := repository.NewStore()
	if state, err := snapshot.Load(cfg.SnapshotPath); err == nil {
		if err := store.Restore(state); err != nil {
			log.Fatalf("restore snapshot: %v", err)
		}
		log.Printf("restored snapshot from %s", cfg.SnapshotPath)
	} else if errors.Is(err, os.ErrNotExist) {
		if err := repository.Seed(store, cfg.BcryptCost); err != nil {
			log.Fatalf("seed store: %v", err)
		}
		log.Printf("no snapshot at %s, seeded demo data", cfg.SnapshotPath)
	} else {
		log.Fatalf("load snapshot: %v", err)
	}

	catalog := repository.NewShowingCatalog(store)
	ledger := repository.NewSalesLedger(store)
	users := repository.NewUserRepo(store)
	monitoring.SetShowingsScheduled(len(catalog.ListAll()))

	// Optional RabbitMQ: events are disabled without a broker URL.
	var publisher service.SalePublisher
	if cfg.RabbitURL != "" {
		publisher = service.NewAMQPPublisher(cfg.RabbitURL)
		if cfg.ConsumerOn {
			go queue.StartSalesConsumer(cfg.RabbitURL)
		}
	}

	showings := service.NewShowingService(catalog, cfg.SeatRows, cfg.SeatCols)
	booking := service.NewBookingService(store, catalog, publisher)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(users, cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays), cfg.JWTSecret)
	router.RegisterBoxOffice(e,
		handler.NewShowingHandler(showings, rdb, cacheCfg),
		handler.NewBookingHandler(booking, rdb, cacheCfg),
		handler.NewHistoryHandler(ledger, catalog),
		cfg.JWTSecret, rdb, rlCfg, cacheCfg)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// Wait for a shutdown signal, then snapshot the store and stop.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := snapshot.Save(cfg.SnapshotPath, store.Export()); err != nil {
		log.Printf("save snapshot: %v", err)
	} else {
		log.Printf("saved snapshot to %s", cfg.SnapshotPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
