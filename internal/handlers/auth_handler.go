package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/config"
	"github.com/UrbanAidServices/household-marketplace/internal/domain/verification"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/middleware"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
	"github.com/UrbanAidServices/household-marketplace/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=customer professional"`

	Address string `json:"address"`
	Pin     string `json:"pin"`

	// Professional registration only.
	ServiceID   uint   `json:"service_id"`
	Experience  int    `json:"experience"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, email).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "account_already_exists", "Username or email already taken.")
		return
	}

	if req.Role == models.RoleProfessional {
		var svcCount int64
		h.db.Model(&models.Service{}).Where("id = ?", req.ServiceID).Count(&svcCount)
		if svcCount == 0 {
			httperr.BadRequest(c, "service_not_found", "Selected service does not exist.")
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Address:      req.Address,
		Pin:          req.Pin,
		IsActive:     true,
	}

	var profileID uint

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch req.Role {
		case models.RoleCustomer:
			cust := models.Customer{UserID: user.ID}
			if err := tx.Create(&cust).Error; err != nil {
				return err
			}
			profileID = cust.ID

		case models.RoleProfessional:
			prof := models.Professional{
				UserID:             user.ID,
				ServiceID:          req.ServiceID,
				Experience:         req.Experience,
				Description:        req.Description,
				VerificationStatus: string(verification.StateUnverified),
			}
			if err := tx.Create(&prof).Error; err != nil {
				return err
			}
			profileID = prof.ID
		}

		return nil
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "account_already_exists", "Username or email already taken.")
			return
		}
		httperr.Internal(c, "failed_to_create_account", "Could not create the account.")
		return
	}

	token, err := h.generateToken(&user, profileID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate a session token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
		"profile_id": profileID,
		"token":      token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid login payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.
		Preload("Customer").
		Preload("Professional").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password incorrect.")
		return
	}

	if !user.IsActive {
		httperr.Unauthorized(c, "account_inactive", "This account is deactivated.")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password incorrect.")
		return
	}

	// Blocked profiles never get a fresh session.
	var profileID uint
	switch user.Role {
	case models.RoleCustomer:
		if user.Customer != nil {
			if user.Customer.AdminBlocked {
				httperr.Unauthorized(c, "account_blocked", "Your account has been suspended by an administrator.")
				return
			}
			profileID = user.Customer.ID
		}
	case models.RoleProfessional:
		if user.Professional != nil {
			if user.Professional.AdminBlocked {
				httperr.Unauthorized(c, "account_blocked", "Your account has been suspended by an administrator.")
				return
			}
			profileID = user.Professional.ID
		}
	}

	token, err := h.generateToken(&user, profileID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate a session token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
		"profile_id": profileID,
		"token":      token,
	})
}

// GenerateAPIKey mints (and replaces) the caller's API key.
func (h *AuthHandler) GenerateAPIKey(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	key := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("api_key", key).Error; err != nil {
		httperr.Internal(c, "failed_to_generate_api_key", "Could not generate an API key.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"api_key": key})
}

func (h *AuthHandler) generateToken(user *models.User, profileID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":       float64(user.ID),
		"role":      user.Role,
		"profileId": float64(profileID),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
