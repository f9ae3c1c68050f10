package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

func TestVolunteers_CountAndUniqueIDs(t *testing.T) {
	records := Volunteers(24)
	require.Len(t, records, 24)

	seen := make(map[string]bool)
	for _, v := range records {
		assert.False(t, seen[v.ID], "ids must be unique")
		seen[v.ID] = true
		assert.NotEmpty(t, v.Name)
		assert.NotEmpty(t, v.IDNumber)
	}
}

func TestVolunteers_SingleOfficersOnly(t *testing.T) {
	records := Volunteers(10)

	presidents := 0
	vicePresidents := 0
	for _, v := range records {
		switch v.Role {
		case model.RolePresident:
			presidents++
		case model.RoleVicePresident:
			vicePresidents++
		}
	}

	assert.Equal(t, 1, presidents)
	assert.Equal(t, 1, vicePresidents)
}

func TestVolunteers_DisplayIDsAreSequential(t *testing.T) {
	records := Volunteers(5)
	for i, v := range records {
		assert.Equal(t, i+1, v.DisplayID)
	}
}
