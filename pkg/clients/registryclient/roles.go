package registryclient

import (
	"context"
	"net/http"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// assignRoleRequest is the admin role-assignment payload.
type assignRoleRequest struct {
	VolunteerID string     `json:"volunteerId"`
	Role        model.Role `json:"role"`
}

// removeRoleRequest demotes a volunteer back to the base role.
type removeRoleRequest struct {
	VolunteerID string `json:"volunteerId"`
}

// AssignRole elevates a volunteer's role through the admin API. The backend
// enforces the single-president / single-vice-president invariant; the client
// only reflects the confirmed result.
func (c *Client) AssignRole(ctx context.Context, volunteerID string, role model.Role) error {
	client, err := c.admin("assign role")
	if err != nil {
		return err
	}

	_, err = c.doJSON(ctx, client, "assign role", http.MethodPost,
		c.baseURL+"/admin/roles/assign", assignRoleRequest{VolunteerID: volunteerID, Role: role})
	return err
}

// RemoveRole demotes a volunteer through the admin API.
func (c *Client) RemoveRole(ctx context.Context, volunteerID string) error {
	client, err := c.admin("remove role")
	if err != nil {
		return err
	}

	_, err = c.doJSON(ctx, client, "remove role", http.MethodPost,
		c.baseURL+"/admin/roles/remove", removeRoleRequest{VolunteerID: volunteerID})
	return err
}
