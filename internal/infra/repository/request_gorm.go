package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type RequestGormRepository struct {
	db *gorm.DB
}

func NewRequestGormRepository(db *gorm.DB) *RequestGormRepository {
	return &RequestGormRepository{db: db}
}

func (r *RequestGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RequestGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Request (lifecycle)
// --------------------------------------------------

func (r *RequestGormRepository) GetRequest(
	ctx context.Context,
	id uint,
) (*models.ServiceRequest, error) {

	var sr models.ServiceRequest
	if err := r.db.WithContext(ctx).First(&sr, id).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *RequestGormRepository) CreateRequest(
	ctx context.Context,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *RequestGormRepository) UpdateRequest(
	ctx context.Context,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Save(sr).Error
}

func (r *RequestGormRepository) HasActiveRequest(
	ctx context.Context,
	customerID uint,
	professionalID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"customer_id = ? AND professional_id = ? AND status IN ?",
			customerID,
			professionalID,
			[]string{string(domain.StatusRequested), string(domain.StatusAccepted)},
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *RequestGormRepository) ListRequestsByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRequest, error) {

	var requests []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Preload("Professional.User").
		Preload("Review").
		Where("customer_id = ?", customerID).
		Order("date_of_request DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *RequestGormRepository) ListRequestsByProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.ServiceRequest, error) {

	var requests []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Customer").
		Preload("Customer.User").
		Where("professional_id = ?", professionalID).
		Order("date_of_request DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *RequestGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *RequestGormRepository) GetReviewByRequest(
	ctx context.Context,
	requestID uint,
) (*models.Review, error) {

	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("service_request_id = ?", requestID).
		First(&review).Error; err != nil {
		return nil, err
	}

	return &review, nil
}

// --------------------------------------------------
// Participants
// --------------------------------------------------

func (r *RequestGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).First(&prof, id).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

func (r *RequestGormRepository) AverageRating(
	ctx context.Context,
	professionalID uint,
) (float64, error) {

	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("professional_id = ?", professionalID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}

	return avg, nil
}

// Counts CLOSED only: a closed-but-unpaid job already counts as
// completed for display purposes.
func (r *RequestGormRepository) CompletedJobsCount(
	ctx context.Context,
	professionalID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"professional_id = ? AND status = ?",
			professionalID,
			string(domain.StatusClosed),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *RequestGormRepository) StatusHistogram(
	ctx context.Context,
) ([]domain.StatusCount, error) {

	var counts []domain.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *RequestGormRepository) RatingHistogram(
	ctx context.Context,
) ([]domain.RatingCount, error) {

	var counts []domain.RatingCount
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating, COUNT(id) AS count").
		Group("rating").
		Order("rating ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	return counts, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *RequestGormRepository) ListEligibleProfessionals(
	ctx context.Context,
	serviceID *uint,
	query string,
) ([]models.Professional, error) {

	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Joins("JOIN users ON users.id = professionals.user_id").
		Joins("JOIN services ON services.id = professionals.service_id").
		Where(
			"professionals.verification_status = ? AND professionals.admin_blocked = ?",
			string(verification.StateVerified),
			false,
		)

	if serviceID != nil {
		q = q.Where("professionals.service_id = ?", *serviceID)
	}

	if query != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		q = q.Where(
			`LOWER(users.username) LIKE ? OR LOWER(users.address) LIKE ?
				OR users.pin LIKE ? OR LOWER(services.service_type) LIKE ?
				OR LOWER(professionals.description) LIKE ?`,
			like, like, like, like, like,
		)
	}

	// Stable input order for the listing sorters.
	var profs []models.Professional
	if err := q.Order("professionals.id ASC").Find(&profs).Error; err != nil {
		return nil, err
	}

	return profs, nil
}

// Compile-time check
var _ domain.Repository = (*RequestGormRepository)(nil)
