package achievement

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const MaxTextLength = 200

type Achievement struct {
	ID           uuid.UUID   `json:"id"`
	ProfileID    uuid.UUID   `json:"profile_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DateAchieved *civil.Date `json:"date_achieved"`
	Organization string      `json:"organization"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (a *Achievement) RecordID() uuid.UUID { return a.ID }
func (a *Achievement) OwnerID() uuid.UUID { return a.ProfileID }

// Stamp prepares a new record for insertion.
func (a *Achievement) Stamp(id uuid.UUID, now time.Time) {
	a.ID = id
	a.CreatedAt = now
	a.UpdatedAt = now
}

func (a *Achievement) Touch(now time.Time) { a.UpdatedAt = now }

func (a *Achievement) Validate() error {
	errs := apperror.FieldErrors{}
	if a.ProfileID == uuid.Nil {
		errs.Add("profile", "this field is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		errs.Add("title", "this field is required")
	} else if len([]rune(a.Title)) > MaxTextLength {
		errs.Add("title", "ensure this field has no more than 200 characters")
	}
	if strings.TrimSpace(a.Description) == "" {
		errs.Add("description", "this field is required")
	}
	if a.DateAchieved != nil && !a.DateAchieved.IsValid() {
		errs.Add("date_achieved", "enter a valid date")
	}
	if len([]rune(a.Organization)) > MaxTextLength {
		errs.Add("organization", "ensure this field has no more than 200 characters")
	}
	return errs.Err()
}

type Filter struct {
	ProfileID *uuid.UUID
}

func (f Filter) Matches(a *Achievement) bool {
	return f.ProfileID == nil || a.ProfileID == *f.ProfileID
}

// SortDefault orders achievements most recent first. Undated ones come
// first, as Postgres sorts NULL high.
func SortDefault(items []*Achievement) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DateAchieved, items[j].DateAchieved
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return b.Before(*a)
	})
}

type Repository interface {
	Save(ctx context.Context, a *Achievement) error
	Update(ctx context.Context, a *Achievement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Achievement, error)
	List(ctx context.Context, filter Filter) ([]*Achievement, error)
}
