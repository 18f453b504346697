package skill

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type Category string

const (
	CategoryProgramming     Category = "programming"
	CategoryDataML          Category = "data_ml"
	CategoryDataEngineering Category = "data_engineering"
	CategoryCloud           Category = "cloud"
	CategoryMLAI            Category = "ml_ai"
	CategoryWebDev          Category = "web_dev"
	CategoryTools           Category = "tools"
	CategorySoftSkills      Category = "soft_skills"
)

// Categories is the declared order used by every per-category view.
var Categories = []Category{
	CategoryProgramming,
	CategoryDataML,
	CategoryDataEngineering,
	CategoryCloud,
	CategoryMLAI,
	CategoryWebDev,
	CategoryTools,
	CategorySoftSkills,
}

var categoryLabels = map[Category]string{
	CategoryProgramming:     "Programming Languages",
	CategoryDataML:          "Data & ML Tools",
	CategoryDataEngineering: "Data Engineering & Analytics",
	CategoryCloud:           "Cloud & Platforms",
	CategoryMLAI:            "ML & AI Techniques",
	CategoryWebDev:          "Web Development",
	CategoryTools:           "Developer Tools",
	CategorySoftSkills:      "Soft Skills",
}

func (c Category) Label() string { return categoryLabels[c] }

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Proficiencies lists the levels from lowest to highest.
var Proficiencies = []Proficiency{
	ProficiencyBeginner,
	ProficiencyIntermediate,
	ProficiencyAdvanced,
	ProficiencyExpert,
}

// TopProficiencies are the levels that make a skill a "top" skill.
var TopProficiencies = []Proficiency{ProficiencyAdvanced, ProficiencyExpert}

// Rank orders levels; unknown values rank -1.
func (p Proficiency) Rank() int {
	for i, level := range Proficiencies {
		if level == p {
			return i
		}
	}
	return -1
}

func (p Proficiency) Valid() bool { return p.Rank() >= 0 }

func (p Proficiency) Label() string {
	if !p.Valid() {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

func (p Proficiency) IsTop() bool { return p.Rank() >= ProficiencyAdvanced.Rank() }

const MaxNameLength = 100

type Skill struct {
	ID          uuid.UUID   `json:"id"`
	ProfileID   uuid.UUID   `json:"profile_id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Proficiency Proficiency `json:"proficiency"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (s *Skill) RecordID() uuid.UUID { return s.ID }
func (s *Skill) OwnerID() uuid.UUID { return s.ProfileID }

// Stamp prepares a new record for insertion.
func (s *Skill) Stamp(id uuid.UUID, now time.Time) {
	s.ID = id
	s.CreatedAt = now
	s.UpdatedAt = now
}

func (s *Skill) Touch(now time.Time) { s.UpdatedAt = now }

func (s *Skill) Validate() error {
	errs := apperror.FieldErrors{}
	if s.ProfileID == uuid.Nil {
		errs.Add("profile", "this field is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		errs.Add("name", "this field is required")
	} else if len([]rune(s.Name)) > MaxNameLength {
		errs.Add("name", "ensure this field has no more than 100 characters")
	}
	if !s.Category.Valid() {
		errs.Add("category", fmt.Sprintf("'%s' is not a valid choice", s.Category))
	}
	if !s.Proficiency.Valid() {
		errs.Add("proficiency", fmt.Sprintf("'%s' is not a valid choice", s.Proficiency))
	}
	return errs.Err()
}

// Filter narrows a skill listing. Zero values mean "no constraint"; all
// set constraints must hold.
type Filter struct {
	ProfileID     *uuid.UUID
	Category      string
	Proficiency   string
	Proficiencies []Proficiency
}

func (f Filter) Matches(s *Skill) bool {
	if f.ProfileID != nil && s.ProfileID != *f.ProfileID {
		return false
	}
	if f.Category != "" && string(s.Category) != f.Category {
		return false
	}
	if f.Proficiency != "" && string(s.Proficiency) != f.Proficiency {
		return false
	}
	if len(f.Proficiencies) > 0 {
		found := false
		for _, p := range f.Proficiencies {
			if s.Proficiency == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SortDefault applies the listing order: category, then name.
func SortDefault(skills []*Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Category != skills[j].Category {
			return skills[i].Category < skills[j].Category
		}
		return skills[i].Name < skills[j].Name
	})
}

type Repository interface {
	Save(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Skill, error)
	List(ctx context.Context, filter Filter) ([]*Skill, error)
	// ExistsByName reports whether another skill of the profile already uses name.
	ExistsByName(ctx context.Context, profileID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}
