package experience

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const (
	MaxTextLength     = 200
	MaxLocationLength = 100
)

// WorkExperience is one position held at a company.
type WorkExperience struct {
	ID          uuid.UUID   `json:"id"`
	ProfileID   uuid.UUID   `json:"profile_id"`
	Company     string      `json:"company"`
	Role        string      `json:"role"`
	Description string      `json:"description"`
	StartDate   civil.Date  `json:"start_date"`
	EndDate     *civil.Date `json:"end_date"`
	IsCurrent   bool        `json:"is_current"`
	Location    string      `json:"location"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (w *WorkExperience) RecordID() uuid.UUID { return w.ID }
func (w *WorkExperience) OwnerID() uuid.UUID { return w.ProfileID }

// Stamp prepares a new record for insertion.
func (w *WorkExperience) Stamp(id uuid.UUID, now time.Time) {
	w.ID = id
	w.CreatedAt = now
	w.UpdatedAt = now
}

func (w *WorkExperience) Touch(now time.Time) { w.UpdatedAt = now }

func (w *WorkExperience) Validate() error {
	errs := apperror.FieldErrors{}
	if w.ProfileID == uuid.Nil {
		errs.Add("profile", "this field is required")
	}
	if strings.TrimSpace(w.Company) == "" {
		errs.Add("company", "this field is required")
	} else if len([]rune(w.Company)) > MaxTextLength {
		errs.Add("company", "ensure this field has no more than 200 characters")
	}
	if strings.TrimSpace(w.Role) == "" {
		errs.Add("role", "this field is required")
	} else if len([]rune(w.Role)) > MaxTextLength {
		errs.Add("role", "ensure this field has no more than 200 characters")
	}
	if !w.StartDate.IsValid() {
		errs.Add("start_date", "this field is required")
	}
	if w.EndDate != nil && !w.EndDate.IsValid() {
		errs.Add("end_date", "enter a valid date")
	}
	if len([]rune(w.Location)) > MaxLocationLength {
		errs.Add("location", "ensure this field has no more than 100 characters")
	}
	return errs.Err()
}

type Filter struct {
	ProfileID *uuid.UUID
}

func (f Filter) Matches(w *WorkExperience) bool {
	return f.ProfileID == nil || w.ProfileID == *f.ProfileID
}

func SortDefault(items []*WorkExperience) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[j].StartDate.Before(items[i].StartDate)
	})
}

type Repository interface {
	Save(ctx context.Context, w *WorkExperience) error
	Update(ctx context.Context, w *WorkExperience) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*WorkExperience, error)
	List(ctx context.Context, filter Filter) ([]*WorkExperience, error)
}
