package request

import (
	"time"

	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(sr *models.ServiceRequest, role string) error {
	next, err := Apply(Status(sr.Status), ActionAccept, role)
	if err != nil {
		return err
	}

	sr.Status = string(next)
	return nil
}

func Reject(sr *models.ServiceRequest, role string) error {
	next, err := Apply(Status(sr.Status), ActionReject, role)
	if err != nil {
		return err
	}

	sr.Status = string(next)
	return nil
}

// CloseForReview stamps the completion date: "completed" means the
// customer has reviewed the work.
func CloseForReview(sr *models.ServiceRequest, role string, now time.Time) error {
	next, err := Apply(Status(sr.Status), ActionClose, role)
	if err != nil {
		return err
	}

	sr.Status = string(next)
	sr.DateOfCompletion = &now
	return nil
}

// Pay re-stamps the completion date with the payment time.
func Pay(sr *models.ServiceRequest, role string, now time.Time) error {
	next, err := Apply(Status(sr.Status), ActionPay, role)
	if err != nil {
		return err
	}

	sr.Status = string(next)
	sr.DateOfCompletion = &now
	return nil
}

// Reassign sends a rejected request back through the pipeline with a
// new professional, who still has to accept it.
func Reassign(sr *models.ServiceRequest, role string, newProfessionalID uint) error {
	next, err := Apply(Status(sr.Status), ActionReassign, role)
	if err != nil {
		return err
	}

	sr.Status = string(next)
	sr.ProfessionalID = &newProfessionalID
	return nil
}
