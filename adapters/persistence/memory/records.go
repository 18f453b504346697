package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

// childTable implements the plain CRUD repositories for records that only
// reference a profile.
type childTable[T any, F any] struct {
	s        *Store
	resource string
	rows     func(*Store) *[]*T
	id       func(*T) uuid.UUID
	owner    func(*T) uuid.UUID
	matches  func(F, *T) bool
	sort     func([]*T)
}

func (t *childTable[T, F]) Save(_ context.Context, item *T) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.requireProfile(t.owner(item)); err != nil {
		return err
	}
	rows := t.rows(t.s)
	*rows = append(*rows, shallow(item))
	return nil
}

func (t *childTable[T, F]) Update(_ context.Context, item *T) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rows := t.rows(t.s)
	i := indexOf(*rows, t.id(item), t.id)
	if i < 0 {
		return apperror.NewNotFound(t.resource, t.id(item).String())
	}
	if err := t.s.requireProfile(t.owner(item)); err != nil {
		return err
	}
	(*rows)[i] = shallow(item)
	return nil
}

func (t *childTable[T, F]) Delete(_ context.Context, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rows := t.rows(t.s)
	if indexOf(*rows, id, t.id) < 0 {
		return apperror.NewNotFound(t.resource, id.String())
	}
	*rows = removeWhere(*rows, func(item *T) bool { return t.id(item) == id })
	return nil
}

func (t *childTable[T, F]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	rows := *t.rows(t.s)
	i := indexOf(rows, id, t.id)
	if i < 0 {
		return nil, apperror.NewNotFound(t.resource, id.String())
	}
	return shallow(rows[i]), nil
}

func (t *childTable[T, F]) List(_ context.Context, filter F) ([]*T, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	out := cloneAll(*t.rows(t.s), func(item *T) bool { return t.matches(filter, item) }, shallow[T])
	t.sort(out)
	return out, nil
}

type educationRepo = childTable[education.Education, education.Filter]

func newEducationRepo(s *Store) *educationRepo {
	return &educationRepo{
		s:        s,
		resource: "education",
		rows:     func(s *Store) *[]*education.Education { return &s.education },
		id:       func(e *education.Education) uuid.UUID { return e.ID },
		owner:    func(e *education.Education) uuid.UUID { return e.ProfileID },
		matches:  education.Filter.Matches,
		sort:     education.SortDefault,
	}
}

type experienceRepo = childTable[experience.WorkExperience, experience.Filter]

func newExperienceRepo(s *Store) *experienceRepo {
	return &experienceRepo{
		s:        s,
		resource: "work experience",
		rows:     func(s *Store) *[]*experience.WorkExperience { return &s.experience },
		id:       func(w *experience.WorkExperience) uuid.UUID { return w.ID },
		owner:    func(w *experience.WorkExperience) uuid.UUID { return w.ProfileID },
		matches:  experience.Filter.Matches,
		sort:     experience.SortDefault,
	}
}

type certificationRepo = childTable[certification.Certification, certification.Filter]

func newCertificationRepo(s *Store) *certificationRepo {
	return &certificationRepo{
		s:        s,
		resource: "certification",
		rows:     func(s *Store) *[]*certification.Certification { return &s.certifications },
		id:       func(c *certification.Certification) uuid.UUID { return c.ID },
		owner:    func(c *certification.Certification) uuid.UUID { return c.ProfileID },
		matches:  certification.Filter.Matches,
		sort:     certification.SortDefault,
	}
}

type achievementRepo = childTable[achievement.Achievement, achievement.Filter]

func newAchievementRepo(s *Store) *achievementRepo {
	return &achievementRepo{
		s:        s,
		resource: "achievement",
		rows:     func(s *Store) *[]*achievement.Achievement { return &s.achievements },
		id:       func(a *achievement.Achievement) uuid.UUID { return a.ID },
		owner:    func(a *achievement.Achievement) uuid.UUID { return a.ProfileID },
		matches:  achievement.Filter.Matches,
		sort:     achievement.SortDefault,
	}
}
