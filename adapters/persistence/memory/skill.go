package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type skillRepo struct{ s *Store }

func skillID(sk *skill.Skill) uuid.UUID { return sk.ID }

const duplicateSkillName = "skill with this profile and name already exists"

// nameTaken must be called with the lock held.
func (r *skillRepo) nameTaken(sk *skill.Skill) bool {
	for _, other := range r.s.skills {
		if other.ID != sk.ID && other.ProfileID == sk.ProfileID && other.Name == sk.Name {
			return true
		}
	}
	return false
}

func (r *skillRepo) Save(_ context.Context, sk *skill.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.requireProfile(sk.ProfileID); err != nil {
		return err
	}
	if r.nameTaken(sk) {
		return apperror.NewFieldError("name", duplicateSkillName)
	}
	r.s.skills = append(r.s.skills, shallow(sk))
	return nil
}

func (r *skillRepo) Update(_ context.Context, sk *skill.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.skills, sk.ID, skillID)
	if i < 0 {
		return apperror.NewNotFound("skill", sk.ID.String())
	}
	if err := r.s.requireProfile(sk.ProfileID); err != nil {
		return err
	}
	if r.nameTaken(sk) {
		return apperror.NewFieldError("name", duplicateSkillName)
	}
	r.s.skills[i] = shallow(sk)
	return nil
}

func (r *skillRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if indexOf(r.s.skills, id, skillID) < 0 {
		return apperror.NewNotFound("skill", id.String())
	}
	r.s.skills = removeWhere(r.s.skills, func(sk *skill.Skill) bool { return sk.ID == id })
	return nil
}

func (r *skillRepo) FindByID(_ context.Context, id uuid.UUID) (*skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.skills, id, skillID)
	if i < 0 {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	return shallow(r.s.skills[i]), nil
}

func (r *skillRepo) List(_ context.Context, filter skill.Filter) ([]*skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := cloneAll(r.s.skills, filter.Matches, shallow[skill.Skill])
	skill.SortDefault(out)
	return out, nil
}

func (r *skillRepo) ExistsByName(_ context.Context, profileID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.nameTaken(&skill.Skill{ID: excludeID, ProfileID: profileID, Name: name}), nil
}
