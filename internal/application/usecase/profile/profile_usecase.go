package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/analytics"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/education"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// Repositories groups the stores a profile aggregate is read from.
type Repositories struct {
	Profiles       profile.Repository
	Education      education.Repository
	Skills         skill.Repository
	Projects       project.Repository
	Experience     experience.Repository
	Certifications certification.Repository
	Achievements   achievement.Repository
}

// Portfolio is a profile with every record that belongs to it.
type Portfolio struct {
	Profile        *profile.Profile               `json:"profile"`
	Education      []*education.Education         `json:"education"`
	Skills         []*skill.Skill                 `json:"skills"`
	Projects       []*project.Project             `json:"projects"`
	Experience     []*experience.WorkExperience   `json:"work_experience"`
	Certifications []*certification.Certification `json:"certifications"`
	Achievements   []*achievement.Achievement     `json:"achievements"`
}

type ProfileUseCase struct {
	repos         Repositories
	publisher     service.EventPublisher
	mainProfileID uuid.UUID
	logger        logger.Logger
	now           func() time.Time
}

// NewProfileUseCase builds the use case. mainProfileID pins the profile
// served as "me"; uuid.Nil falls back to the oldest profile.
func NewProfileUseCase(repos Repositories, publisher service.EventPublisher, mainProfileID uuid.UUID, log logger.Logger) *ProfileUseCase {
	if publisher == nil {
		publisher = service.NopPublisher{}
	}
	return &ProfileUseCase{
		repos:         repos,
		publisher:     publisher,
		mainProfileID: mainProfileID,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ProfileUseCase) Create(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	now := uc.now()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}
	if err := uc.repos.Profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	uc.publish(ctx, service.ChangeCreated, p.ID)
	return p, nil
}

func (uc *ProfileUseCase) Get(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	return uc.repos.Profiles.FindByID(ctx, id)
}

func (uc *ProfileUseCase) List(ctx context.Context) ([]*profile.Profile, error) {
	return uc.repos.Profiles.List(ctx)
}

func (uc *ProfileUseCase) Update(ctx context.Context, id uuid.UUID, apply func(*profile.Profile) error) (*profile.Profile, error) {
	p, err := uc.repos.Profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(p); err != nil {
		return nil, err
	}
	p.ID = id
	p.UpdatedAt = uc.now()
	if err := p.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}
	if err := uc.repos.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.publish(ctx, service.ChangeUpdated, p.ID)
	return p, nil
}

// Delete removes the profile and everything that belongs to it.
func (uc *ProfileUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.repos.Profiles.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx, service.ChangeDeleted, id)
	return nil
}

// Main returns the profile the site is about.
func (uc *ProfileUseCase) Main(ctx context.Context) (*profile.Profile, error) {
	if uc.mainProfileID != uuid.Nil {
		p, err := uc.repos.Profiles.FindByID(ctx, uc.mainProfileID)
		if err != nil {
			return nil, noProfile(err)
		}
		return p, nil
	}
	p, err := uc.repos.Profiles.FindOldest(ctx)
	if err != nil {
		return nil, noProfile(err)
	}
	uc.logger.Warn("Main profile not configured, using oldest profile", zap.String("profile_id", p.ID.String()))
	return p, nil
}

func noProfile(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NewAppError(apperror.ErrNotFound, "No profile found", "no profile has been created yet", nil)
	}
	return err
}

// Portfolio loads every record that belongs to p.
func (uc *ProfileUseCase) Portfolio(ctx context.Context, p *profile.Profile) (*Portfolio, error) {
	id := p.ID
	out := &Portfolio{Profile: p}
	var err error
	if out.Education, err = uc.repos.Education.List(ctx, education.Filter{ProfileID: &id}); err != nil {
		return nil, err
	}
	if out.Skills, err = uc.repos.Skills.List(ctx, skill.Filter{ProfileID: &id}); err != nil {
		return nil, err
	}
	if out.Projects, err = uc.repos.Projects.List(ctx, project.Filter{ProfileID: &id}); err != nil {
		return nil, err
	}
	if out.Experience, err = uc.repos.Experience.List(ctx, experience.Filter{ProfileID: &id}); err != nil {
		return nil, err
	}
	if out.Certifications, err = uc.repos.Certifications.List(ctx, certification.Filter{ProfileID: &id}); err != nil {
		return nil, err
	}
	if out.Achievements, err = uc.repos.Achievements.List(ctx, achievement.Filter{ProfileID: &id}); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ProfileUseCase) PortfolioByID(ctx context.Context, id uuid.UUID) (*Portfolio, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.Portfolio(ctx, p)
}

func (uc *ProfileUseCase) ListPortfolios(ctx context.Context) ([]*Portfolio, error) {
	profiles, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Portfolio, 0, len(profiles))
	for _, p := range profiles {
		full, err := uc.Portfolio(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, full)
	}
	return out, nil
}

type SummaryOutput struct {
	Profile *profile.Profile
	analytics.Summary
}

func (uc *ProfileUseCase) Summary(ctx context.Context, id uuid.UUID) (*SummaryOutput, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	skills, err := uc.repos.Skills.List(ctx, skill.Filter{ProfileID: &id})
	if err != nil {
		return nil, err
	}
	projects, err := uc.repos.Projects.List(ctx, project.Filter{ProfileID: &id})
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{Profile: p, Summary: analytics.Summarize(skills, projects)}, nil
}

func (uc *ProfileUseCase) publish(ctx context.Context, kind service.ChangeType, id uuid.UUID) {
	service.PublishChange(ctx, uc.publisher, uc.logger, service.ChangeEvent{
		EventType:  kind,
		Resource:   "profile",
		ResourceID: id,
		ProfileID:  id,
		OccurredAt: uc.now(),
	})
}
