package http

import (
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/records"
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type (
	EducationHandler     = ResourceHandler[education.Education, education.Filter, EducationRequest, EducationDTO]
	ExperienceHandler    = ResourceHandler[experience.WorkExperience, experience.Filter, ExperienceRequest, ExperienceDTO]
	CertificationHandler = ResourceHandler[certification.Certification, certification.Filter, CertificationRequest, CertificationDTO]
	AchievementHandler   = ResourceHandler[achievement.Achievement, achievement.Filter, AchievementRequest, AchievementDTO]
)

func NewEducationHandler(uc *records.EducationUseCase, log logger.Logger) *EducationHandler {
	return &EducationHandler{
		svc:        uc,
		name:       "education",
		newRequest: func() EducationRequest { return EducationRequest{} },
		fromRecord: newEducationRequest,
		apply:      func(r EducationRequest, e *education.Education) { r.apply(e) },
		present:    ToEducationDTO,
		filter: func(c *gin.Context) (education.Filter, error) {
			id, err := profileParam(c)
			return education.Filter{ProfileID: id}, err
		},
		logger: log,
	}
}

func NewExperienceHandler(uc *records.ExperienceUseCase, log logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{
		svc:        uc,
		name:       "work experience",
		newRequest: func() ExperienceRequest { return ExperienceRequest{} },
		fromRecord: newExperienceRequest,
		apply:      func(r ExperienceRequest, w *experience.WorkExperience) { r.apply(w) },
		present:    ToExperienceDTO,
		filter: func(c *gin.Context) (experience.Filter, error) {
			id, err := profileParam(c)
			return experience.Filter{ProfileID: id}, err
		},
		logger: log,
	}
}

func NewCertificationHandler(uc *records.CertificationUseCase, log logger.Logger) *CertificationHandler {
	return &CertificationHandler{
		svc:        uc,
		name:       "certification",
		newRequest: func() CertificationRequest { return CertificationRequest{} },
		fromRecord: newCertificationRequest,
		apply:      func(r CertificationRequest, cert *certification.Certification) { r.apply(cert) },
		present:    ToCertificationDTO,
		filter: func(c *gin.Context) (certification.Filter, error) {
			id, err := profileParam(c)
			return certification.Filter{ProfileID: id}, err
		},
		logger: log,
	}
}

func NewAchievementHandler(uc *records.AchievementUseCase, log logger.Logger) *AchievementHandler {
	return &AchievementHandler{
		svc:        uc,
		name:       "achievement",
		newRequest: func() AchievementRequest { return AchievementRequest{} },
		fromRecord: newAchievementRequest,
		apply:      func(r AchievementRequest, a *achievement.Achievement) { r.apply(a) },
		present:    ToAchievementDTO,
		filter: func(c *gin.Context) (achievement.Filter, error) {
			id, err := profileParam(c)
			return achievement.Filter{ProfileID: id}, err
		},
		logger: log,
	}
}
