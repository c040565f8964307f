package request

import (
	"context"

	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

func (uc *ListHistory) ForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRequest, error) {
	return uc.repo.ListRequestsByCustomer(ctx, customerID)
}

func (uc *ListHistory) ForProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.ServiceRequest, error) {
	return uc.repo.ListRequestsByProfessional(ctx, professionalID)
}
