package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	"github.com/khoahotran/portfolio-api/adapters/media_storage"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	backupUC "github.com/khoahotran/portfolio-api/internal/application/usecase/backup"
	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	snapshotUC "github.com/khoahotran/portfolio-api/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Worker...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	repos := persistence.NewPostgresRepositories(dbPool, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(repos, nil, uuid.Nil, appLogger)
	snapshotUseCase := snapshotUC.NewSnapshotUseCase(profileUseCase, uploader, appLogger)
	backupUseCase := backupUC.NewBackupUseCase(backupUC.PgDumper{DSN: cfg.DB.DSN}, uploader, appLogger)

	// Backup Cron
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Backup.Schedule, func() {
		if _, err := backupUseCase.Execute(ctx); err != nil {
			appLogger.Error("Scheduled backup failed", err)
		}
	})
	if err != nil {
		appLogger.Fatal("Failed to schedule backup", err, zap.String("schedule", cfg.Backup.Schedule))
	}
	scheduler.Start()
	appLogger.Info("Backup scheduler started", zap.String("schedule", cfg.Backup.Schedule))
	defer func() { <-scheduler.Stop().Done() }()

	// Kafka Consumer
	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Warn("Kafka brokers not configured, snapshots are disabled")
		<-ctx.Done()
		return
	}
	consumer := event.NewChangeConsumer(event.NewKafkaReader(cfg), snapshotUseCase.HandleChange, appLogger)
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Consumer stopped", err)
	}
	appLogger.Info("Worker stopped")
}
