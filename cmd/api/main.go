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

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	"github.com/BruksfildServices01/master-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/master-scheduler/internal/db"
	"github.com/BruksfildServices01/master-scheduler/internal/events"
	"github.com/BruksfildServices01/master-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/master-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/master-scheduler/internal/routes"
	"github.com/BruksfildServices01/master-scheduler/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !timezone.IsValid(cfg.DefaultTimezone) {
		log.Fatalf("invalid DEFAULT_TIMEZONE: %q", cfg.DefaultTimezone)
	}
	timezone.SetDefault(cfg.DefaultTimezone)

	db := dbpkg.NewDB(cfg)

	// ======================================================
	// AUDIT SINKS
	// ======================================================
	auditLogger := audit.New(db)
	sinks := []audit.Sink{auditLogger}

	var producer *events.Producer
	if cfg.EventsEnabled() {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		sinks = append(sinks, producer)
		log.Printf("[EVENTS] kafka enabled topic=%s brokers=%v", cfg.KafkaBookingTopic, cfg.KafkaBrokers)
	}

	dispatcher := audit.NewDispatcher(sinks...)

	deps := routes.Dependencies{
		Bookings:  repository.NewBookingGormRepository(db, cfg.LockTimeout()),
		Schedule:  repository.NewScheduleGormRepository(db),
		Catalog:   repository.NewCatalogGormRepository(db),
		Accounts:  repository.NewAccountGormRepository(db),
		Audit:     dispatcher,
		AuditLogs: auditLogger,
	}

	// ======================================================
	// AVAILABILITY CACHE
	// ======================================================
	if cfg.CacheEnabled() {
		client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Printf("[CACHE] redis unreachable addr=%s, caching disabled: %v", cfg.RedisAddr, err)
			_ = client.Close()
		} else {
			deps.Cache = cache.NewAvailabilityCache(client, cfg.AvailabilityCacheTTL())
			defer client.Close()
			log.Printf("[CACHE] redis enabled addr=%s", cfg.RedisAddr)
		}
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	dispatcher.Close()

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("[EVENTS] close producer: %v", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Server stopped")
}
