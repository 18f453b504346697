package project

import (
	"context"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/crud"
	"github.com/khoahotran/portfolio-api/internal/domain/analytics"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type ProjectUseCase struct {
	*crud.UseCase[project.Project, *project.Project, project.Filter]
	projectRepo project.Repository
	logger      logger.Logger
}

func NewProjectUseCase(repo project.Repository, publisher service.EventPublisher, log logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{
		UseCase:     crud.NewUseCase[project.Project, *project.Project, project.Filter]("project", repo, publisher, log),
		projectRepo: repo,
		logger:      log,
	}
}

// Featured lists projects with non-empty achievements.
func (uc *ProjectUseCase) Featured(ctx context.Context) ([]*project.Project, error) {
	projects, err := uc.projectRepo.List(ctx, project.Filter{})
	if err != nil {
		return nil, err
	}
	return analytics.FeaturedProjects(projects), nil
}

// Technologies counts technology usage across every project.
func (uc *ProjectUseCase) Technologies(ctx context.Context) ([]analytics.TechnologyCount, error) {
	projects, err := uc.projectRepo.List(ctx, project.Filter{})
	if err != nil {
		return nil, err
	}
	return analytics.TechnologyUsage(projects), nil
}
