package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/core/view"
)

type fakeProvider struct {
	records  []model.Volunteer
	degraded bool
}

func (f *fakeProvider) List() []model.Volunteer { return f.records }
func (f *fakeProvider) Degraded() bool          { return f.degraded }

func sampleVolunteers() []model.Volunteer {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Volunteer{
		{ID: "v1", Name: "Ramesh Kumar", IDNumber: "AAK-1001", Role: model.RolePresident, JoinDate: base},
		{ID: "v2", Name: "Sunita Sharma", IDNumber: "AAK-1002", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 1)},
		{ID: "v3", Name: "Vikram Singh", IDNumber: "AAK-1003", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 2)},
	}
}

func TestListVolunteers_DerivesPageFromCache(t *testing.T) {
	provider := &fakeProvider{records: sampleVolunteers()}

	result := ListVolunteers(context.Background(), provider, zap.NewNop(), view.Query{Sort: view.SortNameAsc})

	require.NotNil(t, result)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, "Ramesh Kumar", result.Records[0].Name)
	assert.False(t, result.Degraded)
}

func TestListVolunteers_PropagatesDegradedFlag(t *testing.T) {
	provider := &fakeProvider{records: sampleVolunteers(), degraded: true}

	result := ListVolunteers(context.Background(), provider, zap.NewNop(), view.Query{})
	assert.True(t, result.Degraded)
}

func TestListVolunteers_EmptyCacheIsEmptyState(t *testing.T) {
	provider := &fakeProvider{}

	result := ListVolunteers(context.Background(), provider, zap.NewNop(), view.Query{Search: "anything"})

	assert.Empty(t, result.Records)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0, result.RoleCounts.Total())
}
