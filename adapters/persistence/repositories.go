package persistence

import (
	"github.com/jackc/pgx/v5/pgxpool"

	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// NewPostgresRepositories builds every portfolio repository over one pool.
func NewPostgresRepositories(db *pgxpool.Pool, log logger.Logger) profileUC.Repositories {
	return profileUC.Repositories{
		Profiles:       NewPostgresProfileRepo(db, log),
		Education:      NewPostgresEducationRepo(db, log),
		Skills:         NewPostgresSkillRepo(db, log),
		Projects:       NewPostgresProjectRepo(db, log),
		Experience:     NewPostgresExperienceRepo(db, log),
		Certifications: NewPostgresCertificationRepo(db, log),
		Achievements:   NewPostgresAchievementRepo(db, log),
	}
}
