package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type VerificationGormRepository struct {
	db *gorm.DB
}

func NewVerificationGormRepository(db *gorm.DB) *VerificationGormRepository {
	return &VerificationGormRepository{db: db}
}

func (r *VerificationGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&VerificationGormRepository{db: tx})
	})
}

func (r *VerificationGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Professional").
		First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *VerificationGormRepository) GetProfessionalProfile(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&prof, id).Error; err != nil {
		return nil, err
	}

	return &prof, nil
}

func (r *VerificationGormRepository) SaveProfessionalProfile(
	ctx context.Context,
	prof *models.Professional,
) error {
	return r.db.WithContext(ctx).Save(prof).Error
}

func (r *VerificationGormRepository) SaveCustomerProfile(
	ctx context.Context,
	cust *models.Customer,
) error {
	return r.db.WithContext(ctx).Save(cust).Error
}

// Compile-time check
var _ domain.Repository = (*VerificationGormRepository)(nil)
