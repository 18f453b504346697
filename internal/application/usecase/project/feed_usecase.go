package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const feedLimit = 20

type MainProfileFinder interface {
	Main(ctx context.Context) (*profile.Profile, error)
}

type FeedUseCase struct {
	profiles    MainProfileFinder
	projectRepo project.Repository
	siteURL     string
	logger      logger.Logger
}

func NewFeedUseCase(profiles MainProfileFinder, repo project.Repository, siteURL string, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		profiles:    profiles,
		projectRepo: repo,
		siteURL:     strings.TrimRight(siteURL, "/"),
		logger:      log,
	}
}

// Execute builds an RSS feed of the main profile's most recent projects.
func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	owner, err := uc.profiles.Main(ctx)
	if err != nil {
		return nil, err
	}
	ownerID := owner.ID
	projects, err := uc.projectRepo.List(ctx, project.Filter{ProfileID: &ownerID})
	if err != nil {
		uc.logger.Error("Failed to list projects for feed", err)
		return nil, err
	}
	if len(projects) > feedLimit {
		projects = projects[:feedLimit]
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - Projects", owner.Name),
		Link:        &feeds.Link{Href: uc.siteURL + "/projects"},
		Description: owner.Summary,
		Author:      &feeds.Author{Name: owner.Name, Email: owner.Email},
		Created:     time.Now().UTC(),
	}

	items := make([]*feeds.Item, 0, len(projects))
	for _, p := range projects {
		link := p.DemoLink
		if link == "" {
			link = p.GithubLink
		}
		if link == "" {
			link = fmt.Sprintf("%s/projects/%s", uc.siteURL, p.ID)
		}
		description := p.Description
		if len(p.Technologies) > 0 {
			description += "\n\nBuilt with: " + strings.Join(p.Technologies, ", ")
		}
		items = append(items, &feeds.Item{
			Id:          p.ID.String(),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: description,
			Created:     p.StartDate.In(time.UTC),
			Updated:     p.UpdatedAt,
		})
	}
	feed.Items = items

	uc.logger.Info("Project feed generated", zap.Int("item_count", len(items)))
	return feed, nil
}
