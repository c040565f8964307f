package request

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type UpdateProposedPrice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateProposedPrice(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateProposedPrice {
	return &UpdateProposedPrice{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateProposedPrice) Execute(
	ctx context.Context,
	customerID uint,
	requestID uint,
	newPrice float64,
) (*models.ServiceRequest, error) {

	if newPrice < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	var updated *models.ServiceRequest

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		sr, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if sr.CustomerID != customerID {
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		// Price editing after acceptance is disallowed.
		if err := domain.CanEditPrice(domain.Status(sr.Status)); err != nil {
			return err
		}

		sr.ProposedPrice = &newPrice

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
		Action:   "request_price_updated",
		Entity:   "service_request",
		EntityID: &updated.ID,
	})

	return updated, nil
}
