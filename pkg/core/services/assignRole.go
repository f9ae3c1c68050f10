package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// RoleAdminClient is the admin side of the registry API. The backend owns
// the single-president / single-vice-president invariant.
type RoleAdminClient interface {
	AssignRole(ctx context.Context, volunteerID string, role model.Role) error
	RemoveRole(ctx context.Context, volunteerID string) error
}

// RoleApplier mirrors server-confirmed role changes into the cache.
type RoleApplier interface {
	ApplyRole(ctx context.Context, id string, role model.Role, assignment *model.RoleAssignment)
}

// Clock is injectable for tests.
type Clock func() time.Time

// AssignRole elevates a volunteer through the admin API, then reflects the
// confirmed change locally. Local state is never mutated optimistically.
func AssignRole(ctx context.Context, client RoleAdminClient, cache RoleApplier, logger *zap.Logger, now Clock, volunteerID string, role model.Role, assignedBy string) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}

	logger.Info("Assigning role",
		zap.String("volunteer_id", volunteerID),
		zap.String("role", string(role)),
		zap.String("assigned_by", assignedBy))

	if err := client.AssignRole(ctx, volunteerID, role); err != nil {
		logger.Warn("Role assignment rejected", zap.String("volunteer_id", volunteerID), zap.Error(err))
		return err
	}

	cache.ApplyRole(ctx, volunteerID, role, &model.RoleAssignment{
		AssignedBy: assignedBy,
		AssignedAt: now(),
	})

	logger.Info("Role assigned", zap.String("volunteer_id", volunteerID), zap.String("role", string(role)))
	return nil
}

// RemoveRole demotes a volunteer back to the base role through the admin
// API, then reflects the confirmed change locally.
func RemoveRole(ctx context.Context, client RoleAdminClient, cache RoleApplier, logger *zap.Logger, volunteerID string) error {
	logger.Info("Removing role", zap.String("volunteer_id", volunteerID))

	if err := client.RemoveRole(ctx, volunteerID); err != nil {
		logger.Warn("Role removal rejected", zap.String("volunteer_id", volunteerID), zap.Error(err))
		return err
	}

	cache.ApplyRole(ctx, volunteerID, "", nil)

	logger.Info("Role removed", zap.String("volunteer_id", volunteerID))
	return nil
}
