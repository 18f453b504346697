package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-api/adapters/http"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/adapters/ratelimit"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/portfolio-api/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/records"
	searchUC "github.com/khoahotran/portfolio-api/internal/application/usecase/search"
	skillUC "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	statsUC "github.com/khoahotran/portfolio-api/internal/application/usecase/stats"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Portfolio API Server...", zap.String("env", cfg.App.Env), zap.String("db_driver", cfg.DB.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, appLogger, cfg.App.Name)
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Repositories
	var repos profileUC.Repositories
	switch cfg.DB.Driver {
	case config.DriverMemory:
		appLogger.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		repos = profileUC.Repositories{
			Profiles:       store.Profiles(),
			Education:      store.Education(),
			Skills:         store.Skills(),
			Projects:       store.Projects(),
			Experience:     store.Experience(),
			Certifications: store.Certifications(),
			Achievements:   store.Achievements(),
		}
	default:
		dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Postgres", err)
		}
		defer dbPool.Close()
		repos = persistence.NewPostgresRepositories(dbPool, appLogger)
	}

	// Services
	var publisher service.EventPublisher = service.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := event.NewKafkaPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		publisher = kafkaPublisher
	} else {
		appLogger.Warn("Kafka brokers not configured, change events are dropped")
	}
	defer publisher.Close()

	var limiter service.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = newRateLimiter(cfg, appLogger)
	}

	mainProfileID := uuid.Nil
	if cfg.Portfolio.ProfileID != "" {
		mainProfileID, err = uuid.Parse(cfg.Portfolio.ProfileID)
		if err != nil {
			appLogger.Fatal("invalid portfolio.profile_id", err)
		}
	}

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(repos, publisher, mainProfileID, appLogger)
	skillUseCase := skillUC.NewSkillUseCase(repos.Skills, publisher, appLogger)
	projectUseCase := projectUC.NewProjectUseCase(repos.Projects, publisher, appLogger)
	feedUseCase := projectUC.NewFeedUseCase(profileUseCase, repos.Projects, cfg.Portfolio.SiteURL, appLogger)
	educationUseCase := records.NewEducationUseCase(repos.Education, publisher, appLogger)
	experienceUseCase := records.NewExperienceUseCase(repos.Experience, publisher, appLogger)
	certificationUseCase := records.NewCertificationUseCase(repos.Certifications, publisher, appLogger)
	achievementUseCase := records.NewAchievementUseCase(repos.Achievements, publisher, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(repos.Skills, repos.Projects, repos.Education, repos.Experience, appLogger)
	statsUseCase := statsUC.NewStatsUseCase(profileUseCase, repos.Skills, repos.Projects, repos.Certifications, repos.Achievements, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Profile:       httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Skill:         httpAdapter.NewSkillHandler(skillUseCase, appLogger),
		Project:       httpAdapter.NewProjectHandler(projectUseCase, feedUseCase, appLogger),
		Education:     httpAdapter.NewEducationHandler(educationUseCase, appLogger),
		Experience:    httpAdapter.NewExperienceHandler(experienceUseCase, appLogger),
		Certification: httpAdapter.NewCertificationHandler(certificationUseCase, appLogger),
		Achievement:   httpAdapter.NewAchievementHandler(achievementUseCase, appLogger),
		Search:        httpAdapter.NewSearchHandler(searchUseCase, appLogger),
		Stats:         httpAdapter.NewStatsHandler(statsUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, httpAdapter.RouterOptions{
		Logger:         appLogger,
		RateLimiter:    limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

// newRateLimiter prefers Redis so replicas share one budget and falls back
// to in-process token buckets.
func newRateLimiter(cfg config.Config, log logger.Logger) service.RateLimiter {
	rpm := cfg.RateLimit.RequestsPerMinute
	if cfg.Redis.Addr == "" {
		log.Warn("Redis not configured, using in-process rate limiter")
		return ratelimit.NewLocalLimiter(rpm, time.Minute)
	}
	rdb, err := persistence.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-process rate limiter", zap.Error(err))
		return ratelimit.NewLocalLimiter(rpm, time.Minute)
	}
	return ratelimit.NewRedisLimiter(rdb, rpm, time.Minute)
}
