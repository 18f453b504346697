package certification

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

const MaxTextLength = 200

type Certification struct {
	ID            uuid.UUID   `json:"id"`
	ProfileID     uuid.UUID   `json:"profile_id"`
	Name          string      `json:"name"`
	Issuer        string      `json:"issuer"`
	IssueDate     *civil.Date `json:"issue_date"`
	ExpiryDate    *civil.Date `json:"expiry_date"`
	CredentialURL string      `json:"credential_url"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (c *Certification) RecordID() uuid.UUID { return c.ID }
func (c *Certification) OwnerID() uuid.UUID { return c.ProfileID }

// Stamp prepares a new record for insertion.
func (c *Certification) Stamp(id uuid.UUID, now time.Time) {
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Certification) Touch(now time.Time) { c.UpdatedAt = now }

func (c *Certification) Validate() error {
	errs := apperror.FieldErrors{}
	if c.ProfileID == uuid.Nil {
		errs.Add("profile", "this field is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs.Add("name", "this field is required")
	} else if len([]rune(c.Name)) > MaxTextLength {
		errs.Add("name", "ensure this field has no more than 200 characters")
	}
	if strings.TrimSpace(c.Issuer) == "" {
		errs.Add("issuer", "this field is required")
	} else if len([]rune(c.Issuer)) > MaxTextLength {
		errs.Add("issuer", "ensure this field has no more than 200 characters")
	}
	if c.IssueDate != nil && !c.IssueDate.IsValid() {
		errs.Add("issue_date", "enter a valid date")
	}
	if c.ExpiryDate != nil && !c.ExpiryDate.IsValid() {
		errs.Add("expiry_date", "enter a valid date")
	}
	if c.CredentialURL != "" && !validation.IsURL(c.CredentialURL) {
		errs.Add("credential_url", "enter a valid URL")
	}
	return errs.Err()
}

type Filter struct {
	ProfileID *uuid.UUID
}

func (f Filter) Matches(c *Certification) bool {
	return f.ProfileID == nil || c.ProfileID == *f.ProfileID
}

// SortDefault orders certifications most recently issued first. Undated
// certifications come first, as Postgres sorts NULL high.
func SortDefault(items []*Certification) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].IssueDate, items[j].IssueDate
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return b.Before(*a)
	})
}

type Repository interface {
	Save(ctx context.Context, c *Certification) error
	Update(ctx context.Context, c *Certification) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Certification, error)
	List(ctx context.Context, filter Filter) ([]*Certification, error)
}
