package stats

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
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

func newUseCase(store *memory.Store, main *profile.Profile) *StatsUseCase {
	return NewStatsUseCase(fixedProfile{main}, store.Skills(), store.Projects(), store.Certifications(), store.Achievements(), logger.NewNopLogger())
}

func TestStatsWithoutProfile(t *testing.T) {
	_, err := newUseCase(memory.NewStore(), nil).Execute(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStatsScopedToMainProfile(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	main := &profile.Profile{ID: uuid.New(), Name: "Main", CreatedAt: time.Now()}
	other := &profile.Profile{ID: uuid.New(), Name: "Other", CreatedAt: time.Now()}
	require.NoError(t, store.Profiles().Save(ctx, main))
	require.NoError(t, store.Profiles().Save(ctx, other))

	start := civil.Date{Year: 2024, Month: 1, Day: 1}
	require.NoError(t, store.Projects().Save(ctx, &project.Project{ID: uuid.New(), ProfileID: main.ID, Title: "a", StartDate: start, Status: project.StatusOngoing, Technologies: project.Technologies{"Go", "Redis"}}))
	require.NoError(t, store.Projects().Save(ctx, &project.Project{ID: uuid.New(), ProfileID: main.ID, Title: "b", StartDate: start, Status: project.StatusCompleted, Technologies: project.Technologies{"Go"}}))
	require.NoError(t, store.Projects().Save(ctx, &project.Project{ID: uuid.New(), ProfileID: other.ID, Title: "c", StartDate: start, Status: project.StatusPaused, Technologies: project.Technologies{"Rust"}}))
	require.NoError(t, store.Skills().Save(ctx, &skill.Skill{ID: uuid.New(), ProfileID: main.ID, Name: "Go", Category: skill.CategoryProgramming, Proficiency: skill.ProficiencyExpert}))
	require.NoError(t, store.Certifications().Save(ctx, &certification.Certification{ID: uuid.New(), ProfileID: main.ID, Name: "CKA"}))

	stats, err := newUseCase(store, main).Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.TotalSkills)
	assert.Equal(t, 1, stats.TotalCertifications)
	assert.Equal(t, 0, stats.TotalAchievements)
	require.Len(t, stats.TopTechnologies, 2)
	assert.Equal(t, "Go", stats.TopTechnologies[0].Name)
	assert.Equal(t, 2, stats.TopTechnologies[0].Count)
	require.Len(t, stats.ProjectsByStatus, 2)
	assert.Equal(t, "completed", stats.ProjectsByStatus[0].Key)
	assert.Equal(t, "ongoing", stats.ProjectsByStatus[1].Key)
}
