package search

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/analytics"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("search_usecase")

type SearchUseCase struct {
	skillRepo      skill.Repository
	projectRepo    project.Repository
	educationRepo  education.Repository
	experienceRepo experience.Repository
	logger         logger.Logger
}

func NewSearchUseCase(sr skill.Repository, pr project.Repository, er education.Repository, wr experience.Repository, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		skillRepo:      sr,
		projectRepo:    pr,
		educationRepo:  er,
		experienceRepo: wr,
		logger:         log,
	}
}

type SearchInput struct {
	Query string
}

func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*analytics.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	corpus, err := uc.loadCorpus(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	res, err := analytics.Search(input.Query, corpus)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyQuery) {
			return nil, apperror.NewInvalidInput("Search query parameter 'q' is required", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("search failed", err)
	}

	span.SetAttributes(attribute.String("query", res.Query), attribute.Int("total_results", res.Total()))
	uc.logger.Info("Search executed", zap.String("query", res.Query), zap.Int("total_results", res.Total()))
	return res, nil
}

func (uc *SearchUseCase) loadCorpus(ctx context.Context) (analytics.Corpus, error) {
	var (
		corpus analytics.Corpus
		err    error
	)
	if corpus.Skills, err = uc.skillRepo.List(ctx, skill.Filter{}); err != nil {
		return corpus, err
	}
	if corpus.Projects, err = uc.projectRepo.List(ctx, project.Filter{}); err != nil {
		return corpus, err
	}
	if corpus.Education, err = uc.educationRepo.List(ctx, education.Filter{}); err != nil {
		return corpus, err
	}
	if corpus.Experience, err = uc.experienceRepo.List(ctx, experience.Filter{}); err != nil {
		return corpus, err
	}
	return corpus, nil
}
