package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/clients/registryclient"
	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

type fakeRegistrationClient struct {
	err      error
	received []registryclient.Registration
}

func (f *fakeRegistrationClient) RegisterVolunteer(ctx context.Context, reg registryclient.Registration) (model.Volunteer, error) {
	if f.err != nil {
		return model.Volunteer{}, f.err
	}
	f.received = append(f.received, reg)
	return model.Volunteer{ID: "v9", DisplayID: 9, Name: reg.Name, Role: model.RoleYodha}, nil
}

func validRegistration() registryclient.Registration {
	return registryclient.Registration{
		Name:        "Kavita Joshi",
		IDNumber:    "AAK-1010",
		PhoneNumber: "9800000010",
		Address:     "23 MG Road, Bhopal",
	}
}

func TestRegisterVolunteer_ForwardsValidRegistration(t *testing.T) {
	client := &fakeRegistrationClient{}

	created, err := RegisterVolunteer(context.Background(), client, zap.NewNop(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "v9", created.ID)
	require.Len(t, client.received, 1)
	assert.Equal(t, "Kavita Joshi", client.received[0].Name)
}

func TestRegisterVolunteer_InvalidFieldsBlockSubmission(t *testing.T) {
	client := &fakeRegistrationClient{}

	reg := validRegistration()
	reg.Name = "K" // below minimum length

	_, err := RegisterVolunteer(context.Background(), client, zap.NewNop(), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, client.received, "invalid forms never reach the backend")
}

func TestRegisterVolunteer_MissingRequiredFields(t *testing.T) {
	client := &fakeRegistrationClient{}

	_, err := RegisterVolunteer(context.Background(), client, zap.NewNop(), registryclient.Registration{})
	require.Error(t, err)
	assert.Empty(t, client.received)
}

func TestRegisterVolunteer_BackendErrorPropagates(t *testing.T) {
	client := &fakeRegistrationClient{err: errors.New("duplicate registration number")}

	_, err := RegisterVolunteer(context.Background(), client, zap.NewNop(), validRegistration())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
