package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RecordDeleter is the delete side of the volunteer cache: backend call
// first, local removal only after confirmation.
type RecordDeleter interface {
	Delete(ctx context.Context, id string) error
}

// DeleteVolunteer removes a record via the backend and mirrors the removal
// into the cached and persisted snapshots.
func DeleteVolunteer(ctx context.Context, cache RecordDeleter, logger *zap.Logger, id string) error {
	if id == "" {
		return fmt.Errorf("volunteer id is required")
	}

	logger.Info("Deleting volunteer", zap.String("volunteer_id", id))

	if err := cache.Delete(ctx, id); err != nil {
		logger.Warn("Delete failed", zap.String("volunteer_id", id), zap.Error(err))
		return err
	}

	logger.Info("Volunteer deleted", zap.String("volunteer_id", id))
	return nil
}
