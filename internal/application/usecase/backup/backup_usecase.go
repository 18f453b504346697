package backup

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const Folder = "backups/database"

// Dumper produces a database dump.
type Dumper interface {
	Dump(ctx context.Context) ([]byte, error)
}

// PgDumper shells out to pg_dump in custom format.
type PgDumper struct {
	DSN string
}

func (d PgDumper) Dump(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump", "--dbname="+d.DSN, "--format=c")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pg_dump failed: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}

type BackupUseCase struct {
	dumper   Dumper
	uploader service.Uploader
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(dumper Dumper, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		dumper:   dumper,
		uploader: uploader,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute dumps the portfolio database and uploads the dump. It returns
// the uploaded URL.
func (uc *BackupUseCase) Execute(ctx context.Context) (string, error) {
	uc.logger.Info("Starting database backup...")

	dump, err := uc.dumper.Dump(ctx)
	if err != nil {
		uc.logger.Error("Database dump failed", err)
		return "", err
	}

	filename := fmt.Sprintf("backup-%s.dump", uc.now().Format("2006-01-02_15-04-05"))
	uploadURL, err := uc.uploader.Upload(ctx, bytes.NewReader(dump), Folder, filename)
	if err != nil {
		uc.logger.Error("Failed to upload backup", err)
		return "", err
	}

	uc.logger.Info("Database backup completed and uploaded successfully",
		zap.String("url", uploadURL),
		zap.String("public_id", Folder+"/"+filename),
		zap.Int("size_bytes", len(dump)),
	)
	return uploadURL, nil
}
