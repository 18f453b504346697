package project

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusOngoing   Status = "ongoing"
	StatusPaused    Status = "paused"
)

// Statuses is the declared order used by the status histogram.
var Statuses = []Status{StatusCompleted, StatusOngoing, StatusPaused}

var statusLabels = map[Status]string{
	StatusCompleted: "Completed",
	StatusOngoing:   "Ongoing",
	StatusPaused:    "Paused",
}

func (s Status) Label() string { return statusLabels[s] }

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

const (
	MaxTitleLength      = 200
	MaxTechnologies     = 20
	MaxTechnologyLength = 50
)

var ErrTooManyTechnologies = errors.New("a project may list at most 20 technologies")

// Technologies is an ordered list of technology names. Duplicates are kept.
type Technologies []string

// ContainsFold reports whether any element contains sub, ignoring case.
// Matching is per element, so "java" matches "JavaScript".
func (t Technologies) ContainsFold(sub string) bool {
	needle := strings.ToLower(sub)
	for _, tech := range t {
		if strings.Contains(strings.ToLower(tech), needle) {
			return true
		}
	}
	return false
}

// Has reports exact membership.
func (t Technologies) Has(name string) bool {
	for _, tech := range t {
		if tech == name {
			return true
		}
	}
	return false
}

func (t Technologies) validate() string {
	if len(t) > MaxTechnologies {
		return ErrTooManyTechnologies.Error()
	}
	for i, tech := range t {
		if strings.TrimSpace(tech) == "" {
			return fmt.Sprintf("item %d: this field may not be blank", i)
		}
		if len([]rune(tech)) > MaxTechnologyLength {
			return fmt.Sprintf("item %d: ensure this field has no more than 50 characters", i)
		}
	}
	return ""
}

type Project struct {
	ID           uuid.UUID    `json:"id"`
	ProfileID    uuid.UUID    `json:"profile_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Technologies Technologies `json:"technologies"`
	StartDate    civil.Date   `json:"start_date"`
	EndDate      *civil.Date  `json:"end_date"`
	Status       Status       `json:"status"`
	GithubLink   string       `json:"github_link"`
	DemoLink     string       `json:"demo_link"`
	Achievements string       `json:"achievements"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsFeatured reports whether the project has achievements to show off.
func (p *Project) IsFeatured() bool { return p.Achievements != "" }

func (p *Project) RecordID() uuid.UUID { return p.ID }
func (p *Project) OwnerID() uuid.UUID { return p.ProfileID }

// Stamp prepares a new record for insertion.
func (p *Project) Stamp(id uuid.UUID, now time.Time) {
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (p *Project) Touch(now time.Time) { p.UpdatedAt = now }

func (p *Project) Validate() error {
	errs := apperror.FieldErrors{}
	if p.ProfileID == uuid.Nil {
		errs.Add("profile", "this field is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		errs.Add("title", "this field is required")
	} else if len([]rune(p.Title)) > MaxTitleLength {
		errs.Add("title", "ensure this field has no more than 200 characters")
	}
	if strings.TrimSpace(p.Description) == "" {
		errs.Add("description", "this field is required")
	}
	if msg := p.Technologies.validate(); msg != "" {
		errs.Add("technologies", msg)
	}
	if !p.StartDate.IsValid() {
		errs.Add("start_date", "this field is required")
	}
	if p.EndDate != nil && !p.EndDate.IsValid() {
		errs.Add("end_date", "enter a valid date")
	}
	if !p.Status.Valid() {
		errs.Add("status", fmt.Sprintf("'%s' is not a valid choice", p.Status))
	}
	if p.GithubLink != "" && !validation.IsURL(p.GithubLink) {
		errs.Add("github_link", "enter a valid URL")
	}
	if p.DemoLink != "" && !validation.IsURL(p.DemoLink) {
		errs.Add("demo_link", "enter a valid URL")
	}
	return errs.Err()
}

// Filter narrows a project listing. Technology is matched with
// Technologies.ContainsFold, Status exactly.
type Filter struct {
	ProfileID    *uuid.UUID
	Technology   string
	Status       string
	FeaturedOnly bool
}

func (f Filter) Matches(p *Project) bool {
	if f.ProfileID != nil && p.ProfileID != *f.ProfileID {
		return false
	}
	if f.Technology != "" && !p.Technologies.ContainsFold(f.Technology) {
		return false
	}
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}
	if f.FeaturedOnly && !p.IsFeatured() {
		return false
	}
	return true
}

// SortDefault orders projects newest start date first.
func SortDefault(projects []*Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[j].StartDate.Before(projects[i].StartDate)
	})
}

type Repository interface {
	Save(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, filter Filter) ([]*Project, error)
}
