// Package memory is a process-local implementation of the portfolio
// repositories. It mirrors the Postgres schema's behaviour: child records
// must reference an existing profile, deleting a profile cascades, skill
// names are unique per profile and listings use the same default orders.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

// Store holds every record in insertion order behind one lock.
type Store struct {
	mu             sync.RWMutex
	profiles       []*profile.Profile
	education      []*education.Education
	skills         []*skill.Skill
	projects       []*project.Project
	experience     []*experience.WorkExperience
	certifications []*certification.Certification
	achievements   []*achievement.Achievement
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Profiles() profile.Repository { return &profileRepo{s} }
func (s *Store) Education() education.Repository { return newEducationRepo(s) }
func (s *Store) Skills() skill.Repository { return &skillRepo{s} }
func (s *Store) Projects() project.Repository { return &projectRepo{s} }
func (s *Store) Experience() experience.Repository { return newExperienceRepo(s) }
func (s *Store) Certifications() certification.Repository { return newCertificationRepo(s) }
func (s *Store) Achievements() achievement.Repository { return newAchievementRepo(s) }

// hasProfile must be called with s.mu held.
func (s *Store) hasProfile(id uuid.UUID) bool {
	return indexOf(s.profiles, id, func(p *profile.Profile) uuid.UUID { return p.ID }) >= 0
}

func (s *Store) requireProfile(id uuid.UUID) error {
	if !s.hasProfile(id) {
		return apperror.NewFieldError("profile", "invalid pk - object does not exist")
	}
	return nil
}

func indexOf[T any](items []*T, id uuid.UUID, idOf func(*T) uuid.UUID) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

// removeWhere drops matching items, keeping the order of the rest.
func removeWhere[T any](items []*T, drop func(*T) bool) []*T {
	kept := items[:0]
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(items); i++ {
		items[i] = nil
	}
	return kept
}

func cloneAll[T any](items []*T, match func(*T) bool, clone func(*T) *T) []*T {
	out := make([]*T, 0)
	for _, item := range items {
		if match(item) {
			out = append(out, clone(item))
		}
	}
	return out
}

func shallow[T any](v *T) *T {
	c := *v
	return &c
}
