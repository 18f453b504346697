package stats

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/analytics"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("stats_usecase")

type MainProfileFinder interface {
	Main(ctx context.Context) (*profile.Profile, error)
}

type StatsUseCase struct {
	profiles        MainProfileFinder
	skillRepo       skill.Repository
	projectRepo     project.Repository
	certRepo        certification.Repository
	achievementRepo achievement.Repository
	logger          logger.Logger
}

func NewStatsUseCase(profiles MainProfileFinder, sr skill.Repository, pr project.Repository, cr certification.Repository, ar achievement.Repository, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{
		profiles:        profiles,
		skillRepo:       sr,
		projectRepo:     pr,
		certRepo:        cr,
		achievementRepo: ar,
		logger:          log,
	}
}

// Execute computes the stats of the main profile.
func (uc *StatsUseCase) Execute(ctx context.Context) (*analytics.Stats, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	owner, err := uc.profiles.Main(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	id := owner.ID
	span.SetAttributes(attribute.String("profile_id", id.String()))

	skills, err := uc.skillRepo.List(ctx, skill.Filter{ProfileID: &id})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	projects, err := uc.projectRepo.List(ctx, project.Filter{ProfileID: &id})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	certs, err := uc.certRepo.List(ctx, certification.Filter{ProfileID: &id})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	achievements, err := uc.achievementRepo.List(ctx, achievement.Filter{ProfileID: &id})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	stats := analytics.ComputeStats(analytics.StatsInput{
		Skills:             skills,
		Projects:           projects,
		CertificationCount: len(certs),
		AchievementCount:   len(achievements),
	})
	return &stats, nil
}
