package skill

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

func TestProficiencyOrdering(t *testing.T) {
	assert.Less(t, ProficiencyBeginner.Rank(), ProficiencyIntermediate.Rank())
	assert.Less(t, ProficiencyIntermediate.Rank(), ProficiencyAdvanced.Rank())
	assert.Less(t, ProficiencyAdvanced.Rank(), ProficiencyExpert.Rank())
	assert.Equal(t, -1, Proficiency("guru").Rank())

	assert.True(t, ProficiencyExpert.IsTop())
	assert.True(t, ProficiencyAdvanced.IsTop())
	assert.False(t, ProficiencyIntermediate.IsTop())
	assert.False(t, Proficiency("guru").IsTop())
	assert.Equal(t, "Advanced", ProficiencyAdvanced.Label())
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	s := &Skill{ProfileID: uuid.New(), Name: "Go", Category: "cooking", Proficiency: "guru"}

	err := s.Validate()
	require.Error(t, err)

	var fields apperror.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "proficiency")
	assert.NotContains(t, fields, "name")
}

func TestValidateAcceptsWellFormedSkill(t *testing.T) {
	s := &Skill{ProfileID: uuid.New(), Name: "Go", Category: CategoryProgramming, Proficiency: ProficiencyExpert}
	assert.NoError(t, s.Validate())
}

func TestFilterMatches(t *testing.T) {
	owner := uuid.New()
	s := &Skill{ProfileID: owner, Name: "Go", Category: CategoryProgramming, Proficiency: ProficiencyExpert}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"category", Filter{Category: "programming"}, true},
		{"other category", Filter{Category: "cloud"}, false},
		{"unknown category", Filter{Category: "cooking"}, false},
		{"category and proficiency", Filter{Category: "programming", Proficiency: "expert"}, true},
		{"proficiency mismatch", Filter{Category: "programming", Proficiency: "beginner"}, false},
		{"proficiency set", Filter{Proficiencies: TopProficiencies}, true},
		{"profile", Filter{ProfileID: &owner}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(s))
		})
	}
}

func TestSortDefault(t *testing.T) {
	skills := []*Skill{
		{Name: "Python", Category: CategoryProgramming},
		{Name: "AWS", Category: CategoryCloud},
		{Name: "Go", Category: CategoryProgramming},
	}

	SortDefault(skills)

	assert.Equal(t, "AWS", skills[0].Name)
	assert.Equal(t, "Go", skills[1].Name)
	assert.Equal(t, "Python", skills[2].Name)
}
