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
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	"github.com/BruksfildServices01/glamconnect/internal/config"
	dbpkg "github.com/BruksfildServices01/glamconnect/internal/db"
	"github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/infra/identity"
	"github.com/BruksfildServices01/glamconnect/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/glamconnect/internal/infra/repository"
	"github.com/BruksfildServices01/glamconnect/internal/infra/sms"
	"github.com/BruksfildServices01/glamconnect/internal/infra/storage"
	"github.com/BruksfildServices01/glamconnect/internal/platform/logger"
	"github.com/BruksfildServices01/glamconnect/internal/platform/metrics"
	"github.com/BruksfildServices01/glamconnect/internal/routes"
	"github.com/BruksfildServices01/glamconnect/internal/scheduler"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
	ucBooking "github.com/BruksfildServices01/glamconnect/internal/usecase/booking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	if cfg.SeedDemoAdmins {
		if err := dbpkg.SeedDemoAdmins(context.Background(), db, zl); err != nil {
			zl.Fatal("seed demo admins", zap.Error(err))
		}
	}

	if !timezone.IsValid(cfg.Timezone) {
		zl.Warn("unknown SALON_TIMEZONE, using UTC", zap.String("timezone", cfg.Timezone))
	}
	clock := timezone.NewClock(cfg.Timezone)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	gormSessions := infraRepo.NewSessionGormRepository(db)

	var sessions session.Store = gormSessions
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zl.Fatal("redis", zap.Error(err))
		}
		sessions = infraRepo.NewSessionRedisRepository(rdb)
		zl.Info("sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	}

	var images catalog.ImageStore
	if cfg.S3.Enabled() {
		images = storage.NewS3Store(cfg.S3)
	} else {
		zl.Info("S3 not configured, image uploads disabled")
	}

	auditStore := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditStore, zl)
	m := metrics.New("glamconnect")

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Log:      zl,
		Metrics:  m,
		Clock:    clock,
		Users:    infraRepo.NewUserGormRepository(db),
		Admins:   infraRepo.NewAdminGormRepository(db),
		Services: infraRepo.NewServiceGormRepository(db),
		Bookings: bookingRepo,
		Sessions: sessions,
		Mailer:   mailer.New(cfg.SMTP, zl),
		SMS:      sms.New(cfg.Twilio, zl),
		Identity: identity.NewFirebaseClient(
			cfg.Firebase.BaseURL,
			cfg.Firebase.Timeout,
			cfg.Firebase.MaxRetries,
			zl,
		),
		Images:    images,
		Audit:     auditDispatcher,
		AuditLogs: auditStore,
	})

	// ======================================================
	// CRON
	// ======================================================
	cron := scheduler.New(clock.Location(), zl)

	completeElapsed := ucBooking.NewCompleteElapsed(bookingRepo, clock, zl)
	if err := cron.Add(cfg.AutoCompleteCron, "complete_elapsed_bookings", completeElapsed.Execute); err != nil {
		zl.Fatal("cron", zap.Error(err))
	}
	if cfg.Redis.Addr == "" {
		if err := cron.Add("@hourly", "purge_expired_sessions", gormSessions.PurgeExpired); err != nil {
			zl.Fatal("cron", zap.Error(err))
		}
	}
	cron.Start()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	cron.Stop(ctx)
	auditDispatcher.Close()
}
