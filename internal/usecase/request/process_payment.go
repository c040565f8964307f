package request

import (
	"context"
	"time"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ProcessPayment flips a CLOSED request to PAID. Payment here is a
// status flag, not a gateway transaction.
type ProcessPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewProcessPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ProcessPayment {
	return &ProcessPayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ProcessPayment) Execute(
	ctx context.Context,
	customerID uint,
	requestID uint,
) (*models.ServiceRequest, error) {

	var updated *models.ServiceRequest

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		sr, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if sr.CustomerID != customerID {
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		if err := domain.Pay(sr, models.RoleCustomer, time.Now().UTC()); err != nil {
			return err
		}

		if err := tx.UpdateRequest(ctx, sr); err != nil {
			return err
		}

		updated = sr
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &customerID,
		Action:   "payment_processed",
		Entity:   "service_request",
		EntityID: &updated.ID,
	})

	return updated, nil
}
