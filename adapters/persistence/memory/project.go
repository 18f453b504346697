package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type projectRepo struct{ s *Store }

func projectID(p *project.Project) uuid.UUID { return p.ID }

func cloneProject(p *project.Project) *project.Project {
	c := *p
	c.Technologies = append(project.Technologies{}, p.Technologies...)
	return &c
}

func (r *projectRepo) Save(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.requireProfile(p.ProfileID); err != nil {
		return err
	}
	r.s.projects = append(r.s.projects, cloneProject(p))
	return nil
}

func (r *projectRepo) Update(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.projects, p.ID, projectID)
	if i < 0 {
		return apperror.NewNotFound("project", p.ID.String())
	}
	if err := r.s.requireProfile(p.ProfileID); err != nil {
		return err
	}
	r.s.projects[i] = cloneProject(p)
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if indexOf(r.s.projects, id, projectID) < 0 {
		return apperror.NewNotFound("project", id.String())
	}
	r.s.projects = removeWhere(r.s.projects, func(p *project.Project) bool { return p.ID == id })
	return nil
}

func (r *projectRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.projects, id, projectID)
	if i < 0 {
		return nil, apperror.NewNotFound("project", id.String())
	}
	return cloneProject(r.s.projects[i]), nil
}

func (r *projectRepo) List(_ context.Context, filter project.Filter) ([]*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := cloneAll(r.s.projects, filter.Matches, cloneProject)
	project.SortDefault(out)
	return out, nil
}
