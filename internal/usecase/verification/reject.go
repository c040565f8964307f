package verification

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// RejectProfessional marks the profile Rejected. Idempotent.
type RejectProfessional struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectProfessional(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RejectProfessional {
	return &RejectProfessional{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RejectProfessional) Execute(
	ctx context.Context,
	adminUserID uint,
	professionalID uint,
) (*models.Professional, error) {

	var updated *models.Professional

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		prof, err := tx.GetProfessionalProfile(ctx, professionalID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		prof.VerificationStatus = string(domain.StateRejected)

		if err := tx.SaveProfessionalProfile(ctx, prof); err != nil {
			return err
		}

		updated = prof
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &adminUserID,
		Action:   "professional_rejected",
		Entity:   "professional",
		EntityID: &updated.ID,
	})

	return updated, nil
}
