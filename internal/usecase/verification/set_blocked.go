package verification

import (
	"context"
	"log"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// SessionRevoker is the hook the access gate reads: blocking an account
// must kick it out on its next authenticated action.
type SessionRevoker interface {
	MarkBlocked(ctx context.Context, userID uint) error
	ClearBlocked(ctx context.Context, userID uint) error
}

type SetBlocked struct {
	repo     domain.Repository
	sessions SessionRevoker
	audit    *audit.Dispatcher
}

func NewSetBlocked(
	repo domain.Repository,
	sessions SessionRevoker,
	audit *audit.Dispatcher,
) *SetBlocked {
	return &SetBlocked{
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

// Execute resolves the account's role profile and flips its
// admin_blocked flag. Accounts without a profile (admins) are refused
// with profile_not_found so the caller can surface a warning.
func (uc *SetBlocked) Execute(
	ctx context.Context,
	adminUserID uint,
	userID uint,
	blocked bool,
) error {

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		switch user.Role {
		case models.RoleCustomer:
			if user.Customer == nil {
				return httperr.ErrBusiness(httperr.CodeProfileNotFound)
			}
			user.Customer.AdminBlocked = blocked
			return tx.SaveCustomerProfile(ctx, user.Customer)

		case models.RoleProfessional:
			if user.Professional == nil {
				return httperr.ErrBusiness(httperr.CodeProfileNotFound)
			}
			user.Professional.AdminBlocked = blocked
			return tx.SaveProfessionalProfile(ctx, user.Professional)
		}

		return httperr.ErrBusiness(httperr.CodeProfileNotFound)
	})
	if err != nil {
		return err
	}

	// Revocation marker lives outside the store; losing it only delays
	// the forced logout until the next profile check.
	if uc.sessions != nil {
		var cacheErr error
		if blocked {
			cacheErr = uc.sessions.MarkBlocked(ctx, userID)
		} else {
			cacheErr = uc.sessions.ClearBlocked(ctx, userID)
		}
		if cacheErr != nil {
			log.Println("session revocation error:", cacheErr)
		}
	}

	action := "user_unblocked"
	if blocked {
		action = "user_blocked"
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &adminUserID,
		Action:   action,
		Entity:   "user",
		EntityID: &userID,
	})

	return nil
}
