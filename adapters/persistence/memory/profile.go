package memory

import (
	"context"

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

type profileRepo struct{ s *Store }

func profileID(p *profile.Profile) uuid.UUID { return p.ID }

func (r *profileRepo) Save(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.hasProfile(p.ID) {
		return apperror.NewConflict("profile", "id", p.ID.String())
	}
	r.s.profiles = append(r.s.profiles, shallow(p))
	return nil
}

func (r *profileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.profiles, p.ID, profileID)
	if i < 0 {
		return apperror.NewNotFound("profile", p.ID.String())
	}
	r.s.profiles[i] = shallow(p)
	return nil
}

// Delete removes the profile together with every record that belongs to it.
func (r *profileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.hasProfile(id) {
		return apperror.NewNotFound("profile", id.String())
	}
	r.s.profiles = removeWhere(r.s.profiles, func(p *profile.Profile) bool { return p.ID == id })
	r.s.education = removeWhere(r.s.education, func(e *education.Education) bool { return e.ProfileID == id })
	r.s.skills = removeWhere(r.s.skills, func(sk *skill.Skill) bool { return sk.ProfileID == id })
	r.s.projects = removeWhere(r.s.projects, func(p *project.Project) bool { return p.ProfileID == id })
	r.s.experience = removeWhere(r.s.experience, func(w *experience.WorkExperience) bool { return w.ProfileID == id })
	r.s.certifications = removeWhere(r.s.certifications, func(c *certification.Certification) bool { return c.ProfileID == id })
	r.s.achievements = removeWhere(r.s.achievements, func(a *achievement.Achievement) bool { return a.ProfileID == id })
	return nil
}

func (r *profileRepo) FindByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.profiles, id, profileID)
	if i < 0 {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	return shallow(r.s.profiles[i]), nil
}

func (r *profileRepo) FindOldest(_ context.Context) (*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var oldest *profile.Profile
	for _, p := range r.s.profiles {
		if oldest == nil || p.CreatedAt.Before(oldest.CreatedAt) ||
			(p.CreatedAt.Equal(oldest.CreatedAt) && p.ID.String() < oldest.ID.String()) {
			oldest = p
		}
	}
	if oldest == nil {
		return nil, apperror.NewAppError(apperror.ErrNotFound, "No profile found", "no profile has been created yet", nil)
	}
	return shallow(oldest), nil
}

func (r *profileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := cloneAll(r.s.profiles, func(*profile.Profile) bool { return true }, shallow[profile.Profile])
	profile.SortByCreation(out)
	return out, nil
}
