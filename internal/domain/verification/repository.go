package verification

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetProfessionalProfile(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	SaveProfessionalProfile(
		ctx context.Context,
		prof *models.Professional,
	) error

	SaveCustomerProfile(
		ctx context.Context,
		cust *models.Customer,
	) error
}
