package request

import (
	"context"

	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type StatusCount struct {
	Status string
	Count  int64
}

type RatingCount struct {
	Rating int
	Count  int64
}

type Repository interface {
	// Transaction runs fn against a repository bound to one store
	// transaction; fn's writes commit together or not at all.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Request (lifecycle) --------
	GetRequest(
		ctx context.Context,
		id uint,
	) (*models.ServiceRequest, error)

	CreateRequest(
		ctx context.Context,
		sr *models.ServiceRequest,
	) error

	UpdateRequest(
		ctx context.Context,
		sr *models.ServiceRequest,
	) error

	HasActiveRequest(
		ctx context.Context,
		customerID uint,
		professionalID uint,
	) (bool, error)

	ListRequestsByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.ServiceRequest, error)

	ListRequestsByProfessional(
		ctx context.Context,
		professionalID uint,
	) ([]models.ServiceRequest, error)

	// -------- Review --------
	CreateReview(
		ctx context.Context,
		review *models.Review,
	) error

	GetReviewByRequest(
		ctx context.Context,
		requestID uint,
	) (*models.Review, error)

	// -------- Participants --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	// -------- Aggregates --------
	AverageRating(
		ctx context.Context,
		professionalID uint,
	) (float64, error)

	CompletedJobsCount(
		ctx context.Context,
		professionalID uint,
	) (int64, error)

	StatusHistogram(
		ctx context.Context,
	) ([]StatusCount, error)

	RatingHistogram(
		ctx context.Context,
	) ([]RatingCount, error)

	// -------- Listing --------
	ListEligibleProfessionals(
		ctx context.Context,
		serviceID *uint,
		query string,
	) ([]models.Professional, error)
}
