package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SkillHandler struct {
	*ResourceHandler[skill.Skill, skill.Filter, SkillRequest, SkillDTO]
	skillUseCase *skillUC.SkillUseCase
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{
		ResourceHandler: &ResourceHandler[skill.Skill, skill.Filter, SkillRequest, SkillDTO]{
			svc:        uc,
			name:       "skill",
			newRequest: defaultSkillRequest,
			fromRecord: newSkillRequest,
			apply:      func(r SkillRequest, s *skill.Skill) { r.apply(s) },
			present:    ToSkillDTO,
			filter:     skillFilter,
			logger:     log,
		},
		skillUseCase: uc,
	}
}

// skillFilter reads ?category=&proficiency=&profile=. Unknown values
// simply match nothing.
func skillFilter(c *gin.Context) (skill.Filter, error) {
	id, err := profileParam(c)
	if err != nil {
		return skill.Filter{}, err
	}
	return skill.Filter{
		ProfileID:   id,
		Category:    c.Query("category"),
		Proficiency: c.Query("proficiency"),
	}, nil
}

func (h *SkillHandler) Top(c *gin.Context) {
	skills, err := h.skillUseCase.Top(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapAll(skills, ToSkillDTO))
}

func (h *SkillHandler) Categories(c *gin.Context) {
	groups, err := h.skillUseCase.Categories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCategoriesDTO(groups))
}
