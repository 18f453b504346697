package profile

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

const (
	MaxNameLength  = 100
	MaxPhoneLength = 20
	MaxCGPA        = 10.0
)

// Profile is the aggregate root; every other portfolio record belongs to one.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LinkedIn  string    `json:"linkedin"`
	GitHub    string    `json:"github"`
	Summary   string    `json:"summary"`
	CGPA      *float64  `json:"cgpa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) Validate() error {
	errs := apperror.FieldErrors{}
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "this field is required")
	} else if len([]rune(p.Name)) > MaxNameLength {
		errs.Add("name", "ensure this field has no more than 100 characters")
	}
	if strings.TrimSpace(p.Email) == "" {
		errs.Add("email", "this field is required")
	} else if !validation.IsEmail(p.Email) {
		errs.Add("email", "enter a valid email address")
	}
	if p.LinkedIn != "" && !validation.IsURL(p.LinkedIn) {
		errs.Add("linkedin", "enter a valid URL")
	}
	if p.GitHub != "" && !validation.IsURL(p.GitHub) {
		errs.Add("github", "enter a valid URL")
	}
	if len([]rune(p.Phone)) > MaxPhoneLength {
		errs.Add("phone", "ensure this field has no more than 20 characters")
	}
	if strings.TrimSpace(p.Summary) == "" {
		errs.Add("summary", "this field is required")
	}
	if msg := CheckCGPA(p.CGPA); msg != "" {
		errs.Add("cgpa", msg)
	}
	return errs.Err()
}

// CheckCGPA returns a message when v is outside 0.00-10.00 or carries more
// than two decimal places. Nil is allowed.
func CheckCGPA(v *float64) string {
	if v == nil {
		return ""
	}
	if math.IsNaN(*v) || *v < 0 || *v > MaxCGPA {
		return "ensure this value is between 0.00 and 10.00"
	}
	scaled := *v * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		return "ensure that there are no more than 2 decimal places"
	}
	return ""
}

type Repository interface {
	Save(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	// Delete removes the profile and, through the store's cascade, all of its children.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// FindOldest returns the earliest created profile (created_at, id).
	FindOldest(ctx context.Context) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
}

// SortByCreation orders profiles oldest first, ties broken by id.
func SortByCreation(items []*Profile) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}
