package education

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const MaxTextLength = 200

type Education struct {
	ID           uuid.UUID   `json:"id"`
	ProfileID    uuid.UUID   `json:"profile_id"`
	Institution  string      `json:"institution"`
	Degree       string      `json:"degree"`
	FieldOfStudy string      `json:"field_of_study"`
	StartDate    civil.Date  `json:"start_date"`
	EndDate      *civil.Date `json:"end_date"`
	CGPA         *float64    `json:"cgpa"`
	IsCurrent    bool        `json:"is_current"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (e *Education) RecordID() uuid.UUID { return e.ID }
func (e *Education) OwnerID() uuid.UUID { return e.ProfileID }

// Stamp prepares a new record for insertion.
func (e *Education) Stamp(id uuid.UUID, now time.Time) {
	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
}

func (e *Education) Touch(now time.Time) { e.UpdatedAt = now }

func (e *Education) Validate() error {
	errs := apperror.FieldErrors{}
	if e.ProfileID == uuid.Nil {
		errs.Add("profile", "this field is required")
	}
	requireText(errs, "institution", e.Institution)
	requireText(errs, "degree", e.Degree)
	requireText(errs, "field_of_study", e.FieldOfStudy)
	if !e.StartDate.IsValid() {
		errs.Add("start_date", "this field is required")
	}
	if e.EndDate != nil && !e.EndDate.IsValid() {
		errs.Add("end_date", "enter a valid date")
	}
	if msg := profile.CheckCGPA(e.CGPA); msg != "" {
		errs.Add("cgpa", msg)
	}
	return errs.Err()
}

func requireText(errs apperror.FieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "this field is required")
	} else if len([]rune(value)) > MaxTextLength {
		errs.Add(field, "ensure this field has no more than 200 characters")
	}
}

type Filter struct {
	ProfileID *uuid.UUID
}

func (f Filter) Matches(e *Education) bool {
	return f.ProfileID == nil || e.ProfileID == *f.ProfileID
}

// SortDefault orders entries newest start date first.
func SortDefault(items []*Education) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[j].StartDate.Before(items[i].StartDate)
	})
}

type Repository interface {
	Save(ctx context.Context, e *Education) error
	Update(ctx context.Context, e *Education) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Education, error)
	List(ctx context.Context, filter Filter) ([]*Education, error)
}
