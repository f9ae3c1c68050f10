// Package mockdata generates placeholder volunteer records for development
// environments where the registry backend is unavailable. It is only wired
// into the cache when the config explicitly enables mock fallback; production
// configs never see it.
package mockdata

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

var sampleNames = []string{
	"Ramesh Kumar",
	"Sunita Sharma",
	"Vikram Singh",
	"Priya Patel",
	"Arjun Verma",
	"Kavita Joshi",
	"Deepak Yadav",
	"Anita Gupta",
}

var sampleAddresses = []string{
	"12 Gandhi Marg, Jaipur",
	"45 Nehru Nagar, Indore",
	"8 Station Road, Lucknow",
	"23 MG Road, Bhopal",
}

// Volunteers generates count placeholder records. The first two records get
// the president and vice-president roles so role-dependent screens have
// something to show.
func Volunteers(count int) []model.Volunteer {
	now := time.Now()

	records := make([]model.Volunteer, 0, count)
	for i := 0; i < count; i++ {
		role := model.RoleYodha
		switch i {
		case 0:
			role = model.RolePresident
		case 1:
			role = model.RoleVicePresident
		}

		records = append(records, model.Volunteer{
			ID:          uuid.NewString(),
			DisplayID:   i + 1,
			Name:        sampleNames[i%len(sampleNames)],
			IDNumber:    fmt.Sprintf("AAK-%04d", 1000+i),
			PhoneNumber: fmt.Sprintf("98%08d", 10000000+i),
			Address:     sampleAddresses[i%len(sampleAddresses)],
			Role:        role,
			JoinDate:    now.AddDate(0, 0, -i*7),
		})
	}

	return records
}
