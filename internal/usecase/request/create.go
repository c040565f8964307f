package request

import (
	"context"
	"time"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	CustomerID     uint
	ProfessionalID uint
	ServiceID      uint

	ProposedPrice *float64

	// Calendar date, "2006-01-02".
	Date string

	Remarks string
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateRequest {
	return &CreateRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.ServiceRequest, error) {

	// Input validation happens before any write.
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	if in.ProposedPrice != nil && *in.ProposedPrice < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	var created *models.ServiceRequest

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		if _, err := tx.GetProfessional(ctx, in.ProfessionalID); err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		// One active (REQUESTED/ACCEPTED) request per
		// customer/professional pair.
		active, err := tx.HasActiveRequest(ctx, in.CustomerID, in.ProfessionalID)
		if err != nil {
			return err
		}
		if active {
			return httperr.ErrBusiness(httperr.CodeDuplicateActiveRequest)
		}

		professionalID := in.ProfessionalID
		sr := &models.ServiceRequest{
			ServiceID:      in.ServiceID,
			CustomerID:     in.CustomerID,
			ProfessionalID: &professionalID,
			ProposedPrice:  in.ProposedPrice,
			DateOfRequest:  date,
			Status:         string(domain.InitialStatus()),
			Remarks:        in.Remarks,
		}

		if err := tx.CreateRequest(ctx, sr); err != nil {
			return err
		}

		created = sr
		return nil
	})
	if err != nil {
		return nil, err
	}

	actorID := in.CustomerID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "request_created",
		Entity:   "service_request",
		EntityID: &created.ID,
	})

	return created, nil
}
