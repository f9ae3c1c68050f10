package registryclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// ListVolunteers fetches the full volunteer list from the backend.
func (c *Client) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	env, err := c.doJSON(ctx, c.httpClient, "list volunteers", http.MethodGet, c.baseURL+"/volunteers", nil)
	if err != nil {
		return nil, err
	}

	var volunteers []model.Volunteer
	if err := json.Unmarshal(env.Data, &volunteers); err != nil {
		return nil, fmt.Errorf("failed to parse volunteer list: %w", err)
	}

	return volunteers, nil
}

// DeleteVolunteer removes one volunteer record on the backend. Callers must
// only update local state after this returns nil.
func (c *Client) DeleteVolunteer(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, c.httpClient, "delete volunteer", http.MethodDelete, c.baseURL+"/volunteers/"+id, nil)
	return err
}

// RegisterVolunteer forwards a validated registration to the backend and
// returns the created record.
func (c *Client) RegisterVolunteer(ctx context.Context, reg Registration) (model.Volunteer, error) {
	env, err := c.doJSON(ctx, c.httpClient, "register volunteer", http.MethodPost, c.baseURL+"/volunteers", reg)
	if err != nil {
		return model.Volunteer{}, err
	}

	var created model.Volunteer
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return model.Volunteer{}, fmt.Errorf("failed to parse created volunteer: %w", err)
	}

	return created, nil
}

// Registration is the payload for volunteer sign-up. Field constraints match
// the registration form rules.
type Registration struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	IDNumber    string `json:"idNumber" validate:"required,min=3,max=30"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7,max=15"`
	Address     string `json:"address" validate:"required,min=5,max=200"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}
