package snapshot

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/persistence/memory"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type fakeUploader struct {
	uploads map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: map[string][]byte{}}
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploads[folder+"/"+publicID] = data
	return "https://cdn.example.com/" + folder + "/" + publicID, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func newProfileUseCase(store *memory.Store) *profileUC.ProfileUseCase {
	repos := profileUC.Repositories{
		Profiles:       store.Profiles(),
		Education:      store.Education(),
		Skills:         store.Skills(),
		Projects:       store.Projects(),
		Experience:     store.Experience(),
		Certifications: store.Certifications(),
		Achievements:   store.Achievements(),
	}
	return profileUC.NewProfileUseCase(repos, nil, uuid.Nil, logger.NewNopLogger())
}

func TestHandleChangeUploadsPortfolio(t *testing.T) {
	ctx := context.Background()
	profiles := newProfileUseCase(memory.NewStore())
	owner, err := profiles.Create(ctx, &profile.Profile{Name: "Ada", Email: "ada@example.com", Summary: "Engineer"})
	require.NoError(t, err)

	uploader := newFakeUploader()
	uc := NewSnapshotUseCase(profiles, uploader, logger.NewNopLogger())

	err = uc.HandleChange(ctx, service.ChangeEvent{EventType: service.ChangeUpdated, Resource: "profile", ResourceID: owner.ID, ProfileID: owner.ID})
	require.NoError(t, err)

	data, ok := uploader.uploads[Folder+"/"+owner.ID.String()]
	require.True(t, ok)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Contains(t, body, "profile")
	assert.Contains(t, body, "work_experience")
	assert.Empty(t, uploader.deleted)
}

func TestHandleChangeRemovesSnapshotOfDeletedProfile(t *testing.T) {
	uploader := newFakeUploader()
	uc := NewSnapshotUseCase(newProfileUseCase(memory.NewStore()), uploader, logger.NewNopLogger())
	id := uuid.New()

	err := uc.HandleChange(context.Background(), service.ChangeEvent{EventType: service.ChangeDeleted, Resource: "profile", ResourceID: id, ProfileID: id})
	require.NoError(t, err)

	assert.Equal(t, []string{Folder + "/" + id.String()}, uploader.deleted)
	assert.Empty(t, uploader.uploads)
}

func TestHandleChangeRejectsEventWithoutProfile(t *testing.T) {
	uc := NewSnapshotUseCase(newProfileUseCase(memory.NewStore()), newFakeUploader(), logger.NewNopLogger())

	err := uc.HandleChange(context.Background(), service.ChangeEvent{Resource: "skill", ResourceID: uuid.New()})
	assert.Error(t, err)
}
