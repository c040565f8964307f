package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/httpresp"
	"github.com/UrbanAidServices/household-marketplace/internal/middleware"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the authenticated account with its role profile
// preloaded, so clients can render the right surface after login.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.
		Preload("Customer").
		Preload("Professional.Service").
		First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Account not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load the account.")
		return
	}

	httpresp.OK(c, user)
}
