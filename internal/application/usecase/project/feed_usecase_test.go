package project

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type fixedProfile struct {
	p *profile.Profile
}

func (f fixedProfile) Main(context.Context) (*profile.Profile, error) {
	if f.p == nil {
		return nil, apperror.NewNotFound("profile", "main")
	}
	return f.p, nil
}

func TestFeedListsNewestProjectsFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := &profile.Profile{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Summary: "Engineer", CreatedAt: time.Now()}
	require.NoError(t, store.Profiles().Save(ctx, owner))

	old := &project.Project{ID: uuid.New(), ProfileID: owner.ID, Title: "Old", Description: "first", StartDate: civil.Date{Year: 2020, Month: 1, Day: 1}, GithubLink: "https://github.com/ada/old"}
	recent := &project.Project{ID: uuid.New(), ProfileID: owner.ID, Title: "Recent", Description: "second", StartDate: civil.Date{Year: 2024, Month: 6, Day: 1}, Technologies: project.Technologies{"Go", "Kafka"}}
	require.NoError(t, store.Projects().Save(ctx, old))
	require.NoError(t, store.Projects().Save(ctx, recent))

	uc := NewFeedUseCase(fixedProfile{owner}, store.Projects(), "https://ada.dev/", logger.NewNopLogger())
	feed, err := uc.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Ada - Projects", feed.Title)
	assert.Equal(t, "https://ada.dev/projects", feed.Link.Href)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Recent", feed.Items[0].Title)
	assert.Equal(t, "https://ada.dev/projects/"+recent.ID.String(), feed.Items[0].Link.Href)
	assert.True(t, strings.HasSuffix(feed.Items[0].Description, "Built with: Go, Kafka"))
	assert.Equal(t, "https://github.com/ada/old", feed.Items[1].Link.Href)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Recent</title>")
}

func TestFeedWithoutProfile(t *testing.T) {
	uc := NewFeedUseCase(fixedProfile{}, memory.NewStore().Projects(), "https://ada.dev", logger.NewNopLogger())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
