package request

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type AcceptRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptRequest {
	return &AcceptRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptRequest) Execute(
	ctx context.Context,
	professionalID uint,
	requestID uint,
) (*models.ServiceRequest, error) {

	var updated *models.ServiceRequest

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		sr, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if sr.ProfessionalID == nil || *sr.ProfessionalID != professionalID {
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		// Verification was checked when the professional entered the
		// listing; here only the block flag is re-checked.
		prof, err := tx.GetProfessional(ctx, professionalID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		if prof.AdminBlocked {
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		if err := domain.Accept(sr, models.RoleProfessional); err != nil {
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
		ActorID:  &professionalID,
		Action:   "request_accepted",
		Entity:   "service_request",
		EntityID: &updated.ID,
	})

	return updated, nil
}
