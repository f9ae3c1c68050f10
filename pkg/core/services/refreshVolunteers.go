package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// Refresher is the manual-refresh side of the volunteer cache.
type Refresher interface {
	Refresh(ctx context.Context) error
	List() []model.Volunteer
}

// RefreshVolunteers forces a blocking fetch regardless of snapshot age. On
// failure the cache keeps serving its last-known-good list and the error is
// returned for the caller to surface.
func RefreshVolunteers(ctx context.Context, cache Refresher, logger *zap.Logger) (int, error) {
	logger.Info("Manual refresh requested")

	if err := cache.Refresh(ctx); err != nil {
		logger.Warn("Manual refresh failed", zap.Error(err))
		return 0, fmt.Errorf("failed to refresh volunteers: %w", err)
	}

	count := len(cache.List())
	logger.Info("Manual refresh completed", zap.Int("records", count))
	return count, nil
}
