package skill

import (
	"context"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/crud"
	"github.com/khoahotran/portfolio-api/internal/domain/analytics"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const duplicateNameMessage = "skill with this profile and name already exists"

type SkillUseCase struct {
	*crud.UseCase[skill.Skill, *skill.Skill, skill.Filter]
	skillRepo skill.Repository
	logger    logger.Logger
}

func NewSkillUseCase(repo skill.Repository, publisher service.EventPublisher, log logger.Logger) *SkillUseCase {
	uc := &SkillUseCase{skillRepo: repo, logger: log}
	uc.UseCase = crud.NewUseCase[skill.Skill, *skill.Skill, skill.Filter]("skill", repo, publisher, log).
		WithBeforeWrite(uc.checkUniqueName)
	return uc
}

func (uc *SkillUseCase) checkUniqueName(ctx context.Context, s *skill.Skill) error {
	exists, err := uc.skillRepo.ExistsByName(ctx, s.ProfileID, s.Name, s.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewFieldError("name", duplicateNameMessage)
	}
	return nil
}

// Top lists advanced and expert skills in the default skill order.
func (uc *SkillUseCase) Top(ctx context.Context) ([]*skill.Skill, error) {
	skills, err := uc.skillRepo.List(ctx, skill.Filter{})
	if err != nil {
		return nil, err
	}
	return analytics.TopSkills(skills), nil
}

func (uc *SkillUseCase) Categories(ctx context.Context) ([]analytics.CategoryGroup, error) {
	skills, err := uc.skillRepo.List(ctx, skill.Filter{})
	if err != nil {
		return nil, err
	}
	return analytics.GroupSkillsByCategory(skills), nil
}
