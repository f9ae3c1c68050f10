package model

import (
	"fmt"
	"net/url"
	"time"
)

type Role string

const (
	RolePresident     Role = "president"
	RoleVicePresident Role = "vice-president"
	RoleYodha         Role = "soorveer-yodha"
)

// RoleAll is the sentinel used by filters to mean "no role filtering".
const RoleAll Role = "all"

func (r Role) IsValid() bool {
	return r == RolePresident || r == RoleVicePresident || r == RoleYodha
}

// Rank orders roles for sorting: president > vice-president > soorveer-yodha.
// Unknown roles rank below all valid ones.
func (r Role) Rank() int {
	switch r {
	case RolePresident:
		return 3
	case RoleVicePresident:
		return 2
	case RoleYodha:
		return 1
	default:
		return 0
	}
}

// RoleAssignment records who elevated a volunteer's role and when.
type RoleAssignment struct {
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}

// Volunteer represents a registered trust volunteer
type Volunteer struct {
	ID             string          `json:"id"`
	DisplayID      int             `json:"displayId"`
	Name           string          `json:"name"`
	IDNumber       string          `json:"idNumber"` // AAK registration number
	PhoneNumber    string          `json:"phoneNumber"`
	Address        string          `json:"address"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Role           Role            `json:"role"`
	JoinDate       time.Time       `json:"joinDate"`
	RoleAssignment *RoleAssignment `json:"roleAssignment,omitempty"`
}

// AvatarURL returns the volunteer's profile image, falling back to a
// generated avatar keyed by name when no image was uploaded.
func (v Volunteer) AvatarURL() string {
	if v.ImageURL != "" {
		return v.ImageURL
	}
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(v.Name))
}

// Snapshot is a point-in-time copy of the volunteer list plus its fetch time.
// Snapshots are treated as immutable; updates replace the whole value.
type Snapshot struct {
	Records   []Volunteer `json:"records"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// Age returns how long ago the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Expired reports whether the snapshot is older than the given TTL.
func (s Snapshot) Expired(now time.Time, ttl time.Duration) bool {
	return s.Age(now) >= ttl
}
