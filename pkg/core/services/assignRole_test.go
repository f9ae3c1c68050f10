package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

type fakeRoleClient struct {
	assignErr error
	removeErr error
	assigned  []string
	removed   []string
}

func (f *fakeRoleClient) AssignRole(ctx context.Context, volunteerID string, role model.Role) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned = append(f.assigned, volunteerID)
	return nil
}

func (f *fakeRoleClient) RemoveRole(ctx context.Context, volunteerID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, volunteerID)
	return nil
}

type fakeApplier struct {
	applied []appliedRole
}

type appliedRole struct {
	id         string
	role       model.Role
	assignment *model.RoleAssignment
}

func (f *fakeApplier) ApplyRole(ctx context.Context, id string, role model.Role, assignment *model.RoleAssignment) {
	f.applied = append(f.applied, appliedRole{id: id, role: role, assignment: assignment})
}

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestAssignRole_ServerConfirmedThenApplied(t *testing.T) {
	client := &fakeRoleClient{}
	applier := &fakeApplier{}

	err := AssignRole(context.Background(), client, applier, zap.NewNop(), fixedClock, "v1", model.RolePresident, "admin-anita")
	require.NoError(t, err)

	assert.Equal(t, []string{"v1"}, client.assigned)
	require.Len(t, applier.applied, 1)
	assert.Equal(t, model.RolePresident, applier.applied[0].role)
	require.NotNil(t, applier.applied[0].assignment)
	assert.Equal(t, "admin-anita", applier.applied[0].assignment.AssignedBy)
	assert.Equal(t, fixedClock(), applier.applied[0].assignment.AssignedAt)
}

func TestAssignRole_BackendRejectionLeavesCacheUntouched(t *testing.T) {
	client := &fakeRoleClient{assignErr: errors.New("president already assigned")}
	applier := &fakeApplier{}

	err := AssignRole(context.Background(), client, applier, zap.NewNop(), fixedClock, "v1", model.RoleVicePresident, "admin")
	require.Error(t, err)

	assert.Empty(t, applier.applied, "no optimistic local mutation")
}

func TestAssignRole_RejectsInvalidRole(t *testing.T) {
	client := &fakeRoleClient{}
	applier := &fakeApplier{}

	err := AssignRole(context.Background(), client, applier, zap.NewNop(), fixedClock, "v1", model.Role("emperor"), "admin")
	require.Error(t, err)

	assert.Empty(t, client.assigned, "invalid roles never reach the backend")
	assert.Empty(t, applier.applied)
}

func TestRemoveRole_ServerConfirmedThenApplied(t *testing.T) {
	client := &fakeRoleClient{}
	applier := &fakeApplier{}

	err := RemoveRole(context.Background(), client, applier, zap.NewNop(), "v2")
	require.NoError(t, err)

	assert.Equal(t, []string{"v2"}, client.removed)
	require.Len(t, applier.applied, 1)
	assert.Equal(t, model.Role(""), applier.applied[0].role)
	assert.Nil(t, applier.applied[0].assignment)
}

func TestRemoveRole_BackendRejectionLeavesCacheUntouched(t *testing.T) {
	client := &fakeRoleClient{removeErr: errors.New("forbidden")}
	applier := &fakeApplier{}

	err := RemoveRole(context.Background(), client, applier, zap.NewNop(), "v2")
	require.Error(t, err)
	assert.Empty(t, applier.applied)
}
