package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	"github.com/BruksfildServices01/clinic-ledger/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-ledger/internal/db"
	"github.com/BruksfildServices01/clinic-ledger/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-ledger/internal/infra/notify"
	infraRepo "github.com/BruksfildServices01/clinic-ledger/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-ledger/internal/infra/storage"
	"github.com/BruksfildServices01/clinic-ledger/internal/logger"
	"github.com/BruksfildServices01/clinic-ledger/internal/routes"
	"github.com/BruksfildServices01/clinic-ledger/internal/scheduler"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
	ucNotification "github.com/BruksfildServices01/clinic-ledger/internal/usecase/notification"
)

func main() {

	cfg := config.Load()
	logger.Setup(cfg.Env, cfg.LogLevel)

	if !timezone.Configure(cfg.BusinessTimezone) {
		log.Warn().Str("timezone", cfg.BusinessTimezone).Msg("unknown business timezone, using default")
	}

	db := dbpkg.NewDB(cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	deps := routes.Deps{Audit: auditDispatcher}
	if cfg.S3Enabled() {
		deps.Archive = storage.NewS3Archive(cfg.S3)
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("report archive enabled")
	}

	routes.RegisterRoutes(r, db, cfg, deps)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// REMINDERS
	// ======================================================
	sched := scheduler.New(timezone.Location(""))

	var locker ucNotification.Locker
	if cfg.RedisURL != "" {
		redisLocker, err := lock.NewRedisLocker(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisLocker.Close()
		locker = redisLocker
	}

	notifiers := notify.Multi{notify.LogNotifier{}}
	if cfg.SMTPEnabled() {
		notifiers = append(notifiers, notify.NewMailNotifier(cfg.SMTP, cfg.ReminderEmails))
	}

	reminderJob := ucNotification.NewReminderCheck(
		infraRepo.NewNotificationGormRepository(db),
		notifiers,
		locker,
		cfg.ReminderLead,
		cfg.ReminderInterval,
	)
	if err := sched.AddJob(reminderJob); err != nil {
		log.Fatal().Err(err).Msg("failed to register reminder job")
	}
	sched.Start()
	defer sched.Stop()

	// ======================================================
	// SERVE
	// ======================================================
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
