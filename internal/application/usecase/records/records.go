// Package records wires the plain profile-owned records to the shared
// CRUD flow.
package records

import (
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/crud"
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type (
	EducationUseCase     = crud.UseCase[education.Education, *education.Education, education.Filter]
	ExperienceUseCase    = crud.UseCase[experience.WorkExperience, *experience.WorkExperience, experience.Filter]
	CertificationUseCase = crud.UseCase[certification.Certification, *certification.Certification, certification.Filter]
	AchievementUseCase   = crud.UseCase[achievement.Achievement, *achievement.Achievement, achievement.Filter]
)

func NewEducationUseCase(repo education.Repository, publisher service.EventPublisher, log logger.Logger) *EducationUseCase {
	return crud.NewUseCase[education.Education, *education.Education, education.Filter]("education", repo, publisher, log)
}

func NewExperienceUseCase(repo experience.Repository, publisher service.EventPublisher, log logger.Logger) *ExperienceUseCase {
	return crud.NewUseCase[experience.WorkExperience, *experience.WorkExperience, experience.Filter]("work experience", repo, publisher, log)
}

func NewCertificationUseCase(repo certification.Repository, publisher service.EventPublisher, log logger.Logger) *CertificationUseCase {
	return crud.NewUseCase[certification.Certification, *certification.Certification, certification.Filter]("certification", repo, publisher, log)
}

func NewAchievementUseCase(repo achievement.Repository, publisher service.EventPublisher, log logger.Logger) *AchievementUseCase {
	return crud.NewUseCase[achievement.Achievement, *achievement.Achievement, achievement.Filter]("achievement", repo, publisher, log)
}
