package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	profileUC "github.com/khoahotran/portfolio-api/internal/application/usecase/profile"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const Folder = "snapshots/profiles"

type PortfolioLoader interface {
	PortfolioByID(ctx context.Context, id uuid.UUID) (*profileUC.Portfolio, error)
}

// SnapshotUseCase keeps a JSON export of each profile in media storage,
// refreshed whenever one of its records changes.
type SnapshotUseCase struct {
	loader   PortfolioLoader
	uploader service.Uploader
	logger   logger.Logger
}

func NewSnapshotUseCase(loader PortfolioLoader, uploader service.Uploader, log logger.Logger) *SnapshotUseCase {
	return &SnapshotUseCase{
		loader:   loader,
		uploader: uploader,
		logger:   log,
	}
}

// HandleChange refreshes the snapshot of evt's profile, or removes it when
// the profile no longer exists.
func (uc *SnapshotUseCase) HandleChange(ctx context.Context, evt service.ChangeEvent) error {
	if evt.ProfileID == uuid.Nil {
		return fmt.Errorf("change event for %s %s has no profile", evt.Resource, evt.ResourceID)
	}
	publicID := evt.ProfileID.String()

	portfolio, err := uc.loader.PortfolioByID(ctx, evt.ProfileID)
	if errors.Is(err, apperror.ErrNotFound) {
		uc.logger.Info("Profile gone, removing snapshot", zap.String("profile_id", publicID))
		return uc.uploader.Delete(ctx, Folder+"/"+publicID)
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(portfolio, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), Folder, publicID)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	uc.logger.Info("Profile snapshot uploaded",
		zap.String("profile_id", publicID),
		zap.String("trigger", evt.Resource+"."+string(evt.EventType)),
		zap.String("url", url),
	)
	return nil
}
