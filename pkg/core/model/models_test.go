package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRole_RankOrdering(t *testing.T) {
	assert.Greater(t, RolePresident.Rank(), RoleVicePresident.Rank())
	assert.Greater(t, RoleVicePresident.Rank(), RoleYodha.Rank())
	assert.Greater(t, RoleYodha.Rank(), Role("unknown").Rank())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RolePresident.IsValid())
	assert.True(t, RoleVicePresident.IsValid())
	assert.True(t, RoleYodha.IsValid())
	assert.False(t, RoleAll.IsValid())
	assert.False(t, Role("member").IsValid())
}

func TestSnapshot_ExpiryBoundary(t *testing.T) {
	ttl := 5 * time.Minute
	fetched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{FetchedAt: fetched}

	assert.False(t, snap.Expired(fetched.Add(ttl-time.Second), ttl), "age < TTL is servable")
	assert.True(t, snap.Expired(fetched.Add(ttl), ttl), "age == TTL is expired")
	assert.True(t, snap.Expired(fetched.Add(ttl+time.Hour), ttl))
}

func TestVolunteer_AvatarURLFallsBackToGenerated(t *testing.T) {
	withImage := Volunteer{Name: "Ramesh Kumar", ImageURL: "https://cdn.example.org/ramesh.jpg"}
	assert.Equal(t, "https://cdn.example.org/ramesh.jpg", withImage.AvatarURL())

	withoutImage := Volunteer{Name: "Sunita Sharma"}
	url := withoutImage.AvatarURL()
	assert.Contains(t, url, "ui-avatars.com")
	assert.Contains(t, url, "Sunita+Sharma")
}
