package request

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ReassignProfessional is admin-only: a rejected request gets a new
// professional and re-enters the pipeline as REQUESTED.
type ReassignProfessional struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReassignProfessional(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReassignProfessional {
	return &ReassignProfessional{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReassignProfessional) Execute(
	ctx context.Context,
	adminUserID uint,
	requestID uint,
	newProfessionalID uint,
) (*models.ServiceRequest, error) {

	var updated *models.ServiceRequest

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		sr, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if _, err := tx.GetProfessional(ctx, newProfessionalID); err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		// Status change and professional swap commit together.
		if err := domain.Reassign(sr, models.RoleAdmin, newProfessionalID); err != nil {
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
		ActorID:  &adminUserID,
		Action:   "request_reassigned",
		Entity:   "service_request",
		EntityID: &updated.ID,
		Metadata: map[string]any{"professional_id": newProfessionalID},
	})

	return updated, nil
}
