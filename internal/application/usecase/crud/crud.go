// Package crud holds the create/read/update/delete flow shared by every
// record that belongs to a profile.
package crud

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type Repository[T any, F any] interface {
	Save(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, filter F) ([]*T, error)
}

// Record is satisfied by pointers to the domain record types.
type Record[T any] interface {
	*T
	Validate() error
	RecordID() uuid.UUID
	OwnerID() uuid.UUID
	Stamp(id uuid.UUID, now time.Time)
	Touch(now time.Time)
}

// Hook runs after validation, right before a record is written.
type Hook[T any] func(ctx context.Context, item *T) error

type UseCase[T any, P Record[T], F any] struct {
	resource    string
	repo        Repository[T, F]
	publisher   service.EventPublisher
	logger      logger.Logger
	beforeWrite Hook[T]
	now         func() time.Time
}

func NewUseCase[T any, P Record[T], F any](resource string, repo Repository[T, F], publisher service.EventPublisher, log logger.Logger) *UseCase[T, P, F] {
	if publisher == nil {
		publisher = service.NopPublisher{}
	}
	return &UseCase[T, P, F]{
		resource:  resource,
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithBeforeWrite installs a check that runs on create and update.
func (uc *UseCase[T, P, F]) WithBeforeWrite(h Hook[T]) *UseCase[T, P, F] {
	uc.beforeWrite = h
	return uc
}

func (uc *UseCase[T, P, F]) Resource() string { return uc.resource }

func (uc *UseCase[T, P, F]) Create(ctx context.Context, item *T) (*T, error) {
	rec := P(item)
	rec.Stamp(uuid.New(), uc.now())
	if err := uc.check(ctx, item); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	uc.publish(ctx, service.ChangeCreated, rec)
	return item, nil
}

func (uc *UseCase[T, P, F]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *UseCase[T, P, F]) List(ctx context.Context, filter F) ([]*T, error) {
	return uc.repo.List(ctx, filter)
}

// Update loads the stored record, lets apply overwrite its fields and
// writes the result back. The id and created_at of the stored record win.
func (uc *UseCase[T, P, F]) Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (*T, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := P(item)
	if err := apply(item); err != nil {
		return nil, err
	}
	if rec.RecordID() != id {
		return nil, apperror.NewInternal("update changed the record id", nil)
	}
	rec.Touch(uc.now())
	if err := uc.check(ctx, item); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.publish(ctx, service.ChangeUpdated, rec)
	return item, nil
}

func (uc *UseCase[T, P, F]) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx, service.ChangeDeleted, P(item))
	return nil
}

func (uc *UseCase[T, P, F]) check(ctx context.Context, item *T) error {
	if err := P(item).Validate(); err != nil {
		return apperror.NewValidation(err)
	}
	if uc.beforeWrite != nil {
		return uc.beforeWrite(ctx, item)
	}
	return nil
}

func (uc *UseCase[T, P, F]) publish(ctx context.Context, kind service.ChangeType, rec P) {
	service.PublishChange(ctx, uc.publisher, uc.logger, service.ChangeEvent{
		EventType:  kind,
		Resource:   uc.resource,
		ResourceID: rec.RecordID(),
		ProfileID:  rec.OwnerID(),
		OccurredAt: uc.now(),
	})
}
