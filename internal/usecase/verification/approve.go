package verification

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ApproveProfessional marks the profile Verified. Idempotent.
type ApproveProfessional struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApproveProfessional(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ApproveProfessional {
	return &ApproveProfessional{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ApproveProfessional) Execute(
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

		prof.VerificationStatus = string(domain.StateVerified)

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
		Action:   "professional_approved",
		Entity:   "professional",
		EntityID: &updated.ID,
	})

	return updated, nil
}
