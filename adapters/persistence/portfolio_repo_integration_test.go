package persistence

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type PortfolioRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool          *pgxpool.Pool
	pgContainer     *postgres.PostgresContainer
	testLogger      logger.Logger
	profileRepo     profile.Repository
	skillRepo       skill.Repository
	projectRepo     project.Repository
	educationRepo   education.Repository
	experienceRepo  experience.Repository
	certRepo        certification.Repository
	achievementRepo achievement.Repository
	owner           *profile.Profile
}

func (s *PortfolioRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewNopLogger()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.skillRepo = NewPostgresSkillRepo(s.dbPool, s.testLogger)
	s.projectRepo = NewPostgresProjectRepo(s.dbPool, s.testLogger)
	s.educationRepo = NewPostgresEducationRepo(s.dbPool, s.testLogger)
	s.experienceRepo = NewPostgresExperienceRepo(s.dbPool, s.testLogger)
	s.certRepo = NewPostgresCertificationRepo(s.dbPool, s.testLogger)
	s.achievementRepo = NewPostgresAchievementRepo(s.dbPool, s.testLogger)
}

func (s *PortfolioRepoIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	if _, err := s.dbPool.Exec(ctx, `TRUNCATE profiles CASCADE`); err != nil {
		s.T().Fatalf("Failed to truncate: %s", err)
	}
	cgpa := 8.75
	now := time.Now().UTC().Truncate(time.Microsecond)
	s.owner = &profile.Profile{
		ID:        uuid.New(),
		Name:      "Test Owner",
		Email:     "owner@example.com",
		Summary:   "Builds things",
		CGPA:      &cgpa,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.profileRepo.Save(ctx, s.owner))
}

func (s *PortfolioRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestPortfolioRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PortfolioRepoIntegrationTestSuite))
}

func (s *PortfolioRepoIntegrationTestSuite) newProject(title string, start civil.Date, techs ...string) *project.Project {
	now := time.Now().UTC()
	return &project.Project{
		ID:           uuid.New(),
		ProfileID:    s.owner.ID,
		Title:        title,
		Description:  title + " description",
		Technologies: techs,
		StartDate:    start,
		Status:       project.StatusCompleted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Profile_RoundTrip() {
	ctx := context.Background()

	found, err := s.profileRepo.FindByID(ctx, s.owner.ID)

	s.Require().NoError(err)
	s.Equal(s.owner.Name, found.Name)
	s.Require().NotNil(found.CGPA)
	s.InDelta(8.75, *found.CGPA, 0.001)

	oldest, err := s.profileRepo.FindOldest(ctx)
	s.Require().NoError(err)
	s.Equal(s.owner.ID, oldest.ID)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Skill_UniqueNamePerProfile() {
	ctx := context.Background()
	now := time.Now().UTC()
	first := &skill.Skill{ID: uuid.New(), ProfileID: s.owner.ID, Name: "Go", Category: skill.CategoryProgramming, Proficiency: skill.ProficiencyExpert, CreatedAt: now, UpdatedAt: now}
	dup := &skill.Skill{ID: uuid.New(), ProfileID: s.owner.ID, Name: "Go", Category: skill.CategoryTools, Proficiency: skill.ProficiencyBeginner, CreatedAt: now, UpdatedAt: now}

	s.Require().NoError(s.skillRepo.Save(ctx, first))
	err := s.skillRepo.Save(ctx, dup)

	var appErr *apperror.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Contains(appErr.Fields, "name")

	exists, err := s.skillRepo.ExistsByName(ctx, s.owner.ID, "Go", first.ID)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Skill_FilterAndOrder() {
	ctx := context.Background()
	now := time.Now().UTC()
	for _, sk := range []*skill.Skill{
		{ID: uuid.New(), ProfileID: s.owner.ID, Name: "Python", Category: skill.CategoryProgramming, Proficiency: skill.ProficiencyExpert, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ProfileID: s.owner.ID, Name: "AWS", Category: skill.CategoryCloud, Proficiency: skill.ProficiencyAdvanced, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ProfileID: s.owner.ID, Name: "Go", Category: skill.CategoryProgramming, Proficiency: skill.ProficiencyBeginner, CreatedAt: now, UpdatedAt: now},
	} {
		s.Require().NoError(s.skillRepo.Save(ctx, sk))
	}

	all, err := s.skillRepo.List(ctx, skill.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("AWS", all[0].Name)
	s.Equal("Go", all[1].Name)

	top, err := s.skillRepo.List(ctx, skill.Filter{Proficiencies: skill.TopProficiencies})
	s.Require().NoError(err)
	s.Len(top, 2)

	prog, err := s.skillRepo.List(ctx, skill.Filter{Category: "programming", Proficiency: "expert"})
	s.Require().NoError(err)
	s.Require().Len(prog, 1)
	s.Equal("Python", prog[0].Name)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Project_TechnologyFilter() {
	ctx := context.Background()
	js := s.newProject("Web", civil.Date{Year: 2023, Month: 1, Day: 1}, "JavaScript", "React")
	goProj := s.newProject("API", civil.Date{Year: 2024, Month: 1, Day: 1}, "Go", "Postgres")
	goProj.Achievements = "Served 1M requests"
	s.Require().NoError(s.projectRepo.Save(ctx, js))
	s.Require().NoError(s.projectRepo.Save(ctx, goProj))

	all, err := s.projectRepo.List(ctx, project.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("API", all[0].Title, "newest start date first")

	java, err := s.projectRepo.List(ctx, project.Filter{Technology: "java"})
	s.Require().NoError(err)
	s.Require().Len(java, 1)
	s.Equal(project.Technologies{"JavaScript", "React"}, java[0].Technologies)

	pct, err := s.projectRepo.List(ctx, project.Filter{Technology: "%"})
	s.Require().NoError(err)
	s.Empty(pct)

	featured, err := s.projectRepo.List(ctx, project.Filter{FeaturedOnly: true})
	s.Require().NoError(err)
	s.Require().Len(featured, 1)
	s.Equal(goProj.ID, featured[0].ID)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Child_RequiresProfile() {
	ctx := context.Background()
	orphan := s.newProject("Orphan", civil.Date{Year: 2024, Month: 1, Day: 1})
	orphan.ProfileID = uuid.New()

	err := s.projectRepo.Save(ctx, orphan)

	var appErr *apperror.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Contains(appErr.Fields, "profile")
}

func (s *PortfolioRepoIntegrationTestSuite) Test_DeleteProfile_Cascades() {
	ctx := context.Background()
	now := time.Now().UTC()
	start := civil.Date{Year: 2020, Month: 9, Day: 1}
	end := civil.Date{Year: 2024, Month: 6, Day: 30}

	pr := s.newProject("API", start, "Go")
	ed := &education.Education{ID: uuid.New(), ProfileID: s.owner.ID, Institution: "MIT", Degree: "BSc", FieldOfStudy: "CS", StartDate: start, EndDate: &end, CreatedAt: now, UpdatedAt: now}
	we := &experience.WorkExperience{ID: uuid.New(), ProfileID: s.owner.ID, Company: "Acme", Role: "Engineer", StartDate: start, IsCurrent: true, CreatedAt: now, UpdatedAt: now}
	ce := &certification.Certification{ID: uuid.New(), ProfileID: s.owner.ID, Name: "CKA", Issuer: "CNCF", IssueDate: &end, CreatedAt: now, UpdatedAt: now}
	ac := &achievement.Achievement{ID: uuid.New(), ProfileID: s.owner.ID, Title: "Award", Description: "Best thesis", DateAchieved: &end, CreatedAt: now, UpdatedAt: now}

	s.Require().NoError(s.projectRepo.Save(ctx, pr))
	s.Require().NoError(s.educationRepo.Save(ctx, ed))
	s.Require().NoError(s.experienceRepo.Save(ctx, we))
	s.Require().NoError(s.certRepo.Save(ctx, ce))
	s.Require().NoError(s.achievementRepo.Save(ctx, ac))

	foundEd, err := s.educationRepo.FindByID(ctx, ed.ID)
	s.Require().NoError(err)
	s.Equal(start, foundEd.StartDate)
	s.Require().NotNil(foundEd.EndDate)
	s.Equal(end, *foundEd.EndDate)

	s.Require().NoError(s.profileRepo.Delete(ctx, s.owner.ID))

	_, err = s.projectRepo.FindByID(ctx, pr.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
	_, err = s.educationRepo.FindByID(ctx, ed.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
	_, err = s.experienceRepo.FindByID(ctx, we.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
	_, err = s.certRepo.FindByID(ctx, ce.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
	_, err = s.achievementRepo.FindByID(ctx, ac.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_UndatedRecords_SortFirst() {
	ctx := context.Background()
	now := time.Now().UTC()
	older := civil.Date{Year: 2021, Month: 3, Day: 1}
	newer := civil.Date{Year: 2023, Month: 5, Day: 1}

	for _, c := range []*certification.Certification{
		{ID: uuid.New(), ProfileID: s.owner.ID, Name: "Old", Issuer: "CNCF", IssueDate: &older, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ProfileID: s.owner.ID, Name: "Undated", Issuer: "CNCF", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ProfileID: s.owner.ID, Name: "New", Issuer: "CNCF", IssueDate: &newer, CreatedAt: now, UpdatedAt: now},
	} {
		s.Require().NoError(s.certRepo.Save(ctx, c))
	}
	for _, a := range []*achievement.Achievement{
		{ID: uuid.New(), ProfileID: s.owner.ID, Title: "Old", Description: "d", DateAchieved: &older, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ProfileID: s.owner.ID, Title: "Undated", Description: "d", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), ProfileID: s.owner.ID, Title: "New", Description: "d", DateAchieved: &newer, CreatedAt: now, UpdatedAt: now},
	} {
		s.Require().NoError(s.achievementRepo.Save(ctx, a))
	}

	certs, err := s.certRepo.List(ctx, certification.Filter{})
	s.Require().NoError(err)
	s.Require().Len(certs, 3)
	s.Equal([]string{"Undated", "New", "Old"}, []string{certs[0].Name, certs[1].Name, certs[2].Name})
	s.Nil(certs[0].IssueDate)

	achievements, err := s.achievementRepo.List(ctx, achievement.Filter{})
	s.Require().NoError(err)
	s.Require().Len(achievements, 3)
	s.Equal([]string{"Undated", "New", "Old"}, []string{achievements[0].Title, achievements[1].Title, achievements[2].Title})
}
