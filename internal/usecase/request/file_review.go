package request

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type FileReviewInput struct {
	CustomerID uint
	RequestID  uint
	Rating     int
	Remarks    string
}

// ======================================================
// USE CASE
// ======================================================

// FileReview creates the review and closes the request in one
// transaction. Closing is defined as "customer has reviewed": the
// request is not required to have been accepted first.
type FileReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFileReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FileReview {
	return &FileReview{
		repo:  repo,
		audit: audit,
	}
}

func (uc *FileReview) Execute(
	ctx context.Context,
	in FileReviewInput,
) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	var created *models.Review

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		sr, err := tx.GetRequest(ctx, in.RequestID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if sr.CustomerID != in.CustomerID {
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		if sr.ProfessionalID == nil {
			return httperr.ErrBusiness(httperr.CodeInvalidTransition)
		}

		if _, err := tx.GetReviewByRequest(ctx, sr.ID); err == nil {
			return httperr.ErrBusiness(httperr.CodeAlreadyReviewed)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review := &models.Review{
			CustomerID:       sr.CustomerID,
			ProfessionalID:   *sr.ProfessionalID,
			ServiceID:        sr.ServiceID,
			ServiceRequestID: sr.ID,
			Rating:           in.Rating,
			Remarks:          in.Remarks,
		}

		if err := tx.CreateReview(ctx, review); err != nil {
			// Unique index backstop when two reviews race.
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeAlreadyReviewed)
			}
			return err
		}

		if err := domain.CloseForReview(sr, models.RoleCustomer, time.Now().UTC()); err != nil {
			return err
		}

		if err := tx.UpdateRequest(ctx, sr); err != nil {
			return err
		}

		created = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "review_filed",
		Entity:   "review",
		EntityID: &created.ID,
		Metadata: map[string]any{"rating": created.Rating},
	})

	return created, nil
}
