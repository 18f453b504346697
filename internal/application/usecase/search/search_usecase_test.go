package search

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func newUseCase(store *memory.Store) *SearchUseCase {
	return NewSearchUseCase(store.Skills(), store.Projects(), store.Education(), store.Experience(), logger.NewNopLogger())
}

func TestSearchBlankQueryIsInvalidInput(t *testing.T) {
	uc := newUseCase(memory.NewStore())

	for _, q := range []string{"", " "} {
		_, err := uc.Execute(context.Background(), SearchInput{Query: q})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "query %q", q)
	}
}

func TestSearchAcrossRecords(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := &profile.Profile{ID: uuid.New(), Name: "Ada", CreatedAt: time.Now()}
	require.NoError(t, store.Profiles().Save(ctx, owner))
	require.NoError(t, store.Skills().Save(ctx, &skill.Skill{ID: uuid.New(), ProfileID: owner.ID, Name: "PyTorch", Category: skill.CategoryMLAI}))
	require.NoError(t, store.Projects().Save(ctx, &project.Project{
		ID: uuid.New(), ProfileID: owner.ID, Title: "Chat assistant", Description: "LLM powered",
		Technologies: project.Technologies{"OpenAI"}, StartDate: civil.Date{Year: 2024, Month: 3, Day: 1},
	}))
	require.NoError(t, store.Education().Save(ctx, &education.Education{
		ID: uuid.New(), ProfileID: owner.ID, Institution: "IIT", Degree: "BTech", FieldOfStudy: "Mechanical",
	}))

	res, err := newUseCase(store).Execute(ctx, SearchInput{Query: "AI"})
	require.NoError(t, err)

	assert.Len(t, res.Skills, 1)
	assert.Len(t, res.Projects, 1)
	assert.Empty(t, res.Education)
	assert.Empty(t, res.Experience)
	assert.Equal(t, len(res.Skills)+len(res.Projects)+len(res.Education)+len(res.Experience), res.Total())
}
