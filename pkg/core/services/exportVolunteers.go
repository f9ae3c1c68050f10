package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/export"
)

// ExportCSV writes the current authoritative list to path and returns the
// number of exported records.
func ExportCSV(ctx context.Context, provider ListProvider, logger *zap.Logger, path string) (int, error) {
	records := provider.List()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, records); err != nil {
		return 0, err
	}

	logger.Info("CSV export written", zap.String("path", path), zap.Int("records", len(records)))
	return len(records), nil
}

// ExportCard renders one volunteer's ID card into dir and returns the
// written file path. The filename is deterministic from the record id.
func ExportCard(ctx context.Context, provider ListProvider, logger *zap.Logger, id, dir string) (string, error) {
	var target *model.Volunteer
	for _, v := range provider.List() {
		if v.ID == id {
			target = &v
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("volunteer not found: %s", id)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, export.CardFileName(id))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create card file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCardPNG(f, *target); err != nil {
		return "", err
	}

	logger.Info("ID card exported",
		zap.String("volunteer_id", id),
		zap.String("path", path))
	return path, nil
}
