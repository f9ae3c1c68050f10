package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/clients/registryclient"
	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

var validate = validator.New()

// RegistrationClient is the sign-up side of the registry API.
type RegistrationClient interface {
	RegisterVolunteer(ctx context.Context, reg registryclient.Registration) (model.Volunteer, error)
}

// RegisterVolunteer validates a registration form and forwards it to the
// backend. Callers refresh the cache afterwards so the new record appears in
// the authoritative list; the client never invents records locally.
func RegisterVolunteer(ctx context.Context, client RegistrationClient, logger *zap.Logger, reg registryclient.Registration) (model.Volunteer, error) {
	if err := validate.Struct(reg); err != nil {
		return model.Volunteer{}, fmt.Errorf("registration validation failed: %w", err)
	}

	logger.Info("Registering volunteer", zap.String("name", reg.Name), zap.String("id_number", reg.IDNumber))

	created, err := client.RegisterVolunteer(ctx, reg)
	if err != nil {
		logger.Warn("Registration rejected", zap.Error(err))
		return model.Volunteer{}, err
	}

	logger.Info("Volunteer registered",
		zap.String("volunteer_id", created.ID),
		zap.Int("display_id", created.DisplayID))
	return created, nil
}
