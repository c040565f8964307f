package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	domain "github.com/UrbanAidServices/household-marketplace/internal/domain/request"
	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/httpresp"
	"github.com/UrbanAidServices/household-marketplace/internal/middleware"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
	"github.com/UrbanAidServices/household-marketplace/internal/storage"
	ucListing "github.com/UrbanAidServices/household-marketplace/internal/usecase/listing"
	ucRequest "github.com/UrbanAidServices/household-marketplace/internal/usecase/request"
	ucVerification "github.com/UrbanAidServices/household-marketplace/internal/usecase/verification"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	approveUC    *ucVerification.ApproveProfessional
	rejectUC     *ucVerification.RejectProfessional
	setBlockedUC *ucVerification.SetBlocked
	reassignUC   *ucRequest.ReassignProfessional
	chartsUC     *ucListing.ChartData

	uploader *storage.Uploader
}

func NewAdminHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	approveUC *ucVerification.ApproveProfessional,
	rejectUC *ucVerification.RejectProfessional,
	setBlockedUC *ucVerification.SetBlocked,
	reassignUC *ucRequest.ReassignProfessional,
	chartsUC *ucListing.ChartData,
	uploader *storage.Uploader,
) *AdminHandler {
	return &AdminHandler{
		db:           db,
		audit:        auditDispatcher,
		approveUC:    approveUC,
		rejectUC:     rejectUC,
		setBlockedUC: setBlockedUC,
		reassignUC:   reassignUC,
		chartsUC:     chartsUC,
		uploader:     uploader,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	ServiceType string  `json:"service_type" binding:"required"`
	BasePrice   float64 `json:"base_price" binding:"min=0"`
	Description string  `json:"description"`
}

type UpdateServiceRequest struct {
	ServiceType *string  `json:"service_type"`
	BasePrice   *float64 `json:"base_price"`
	Description *string  `json:"description"`
}

type SetBlockedRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type ReassignRequest struct {
	ProfessionalID uint `json:"professional_id" binding:"required"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id DESC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load services.")
		return
	}

	var professionals []models.Professional
	if err := h.db.
		Preload("User").
		Preload("Service").
		Order("id DESC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load professionals.")
		return
	}

	var customers []models.Customer
	if err := h.db.
		Preload("User").
		Order("id DESC").
		Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load customers.")
		return
	}

	activeStatuses := []string{
		string(domain.StatusRequested),
		string(domain.StatusAccepted),
		string(domain.StatusClosed),
		string(domain.StatusPaid),
	}

	var allRequests []models.ServiceRequest
	if err := h.db.
		Preload("Customer.User").
		Preload("Professional.User").
		Preload("Service").
		Where("status IN ?", activeStatuses).
		Order("date_of_request DESC").
		Find(&allRequests).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load requests.")
		return
	}

	// Rejected requests get their own bucket so the admin can reassign.
	var rejectedRequests []models.ServiceRequest
	if err := h.db.
		Preload("Customer.User").
		Preload("Professional.User").
		Preload("Service").
		Where("status = ?", string(domain.StatusRejected)).
		Order("date_of_request DESC").
		Find(&rejectedRequests).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Could not load rejected requests.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services":          services,
		"professionals":     professionals,
		"customers":         customers,
		"all_requests":      allRequests,
		"rejected_requests": rejectedRequests,
	})
}

func (h *AdminHandler) ChartData(c *gin.Context) {
	data, err := h.chartsUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_load_charts", "Could not fetch chart data.")
		return
	}

	httpresp.OK(c, data)
}

// ======================================================
// SERVICE CATALOG
// ======================================================

func (h *AdminHandler) CreateService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service payload.")
		return
	}

	service := models.Service{
		ServiceType: strings.TrimSpace(req.ServiceType),
		BasePrice:   req.BasePrice,
		Description: req.Description,
	}

	if err := h.db.Create(&service).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_already_exists", "A service with this name already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.Created(c, service)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load the service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service payload.")
		return
	}

	if req.ServiceType != nil {
		service.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "Base price must be zero or positive.")
			return
		}
		service.BasePrice = *req.BasePrice
	}
	if req.Description != nil {
		service.Description = *req.Description
	}

	if err := h.db.Save(&service).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_already_exists", "A service with this name already exists.")
			return
		}
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

// DeleteService refuses while professionals still reference the
// service; historical requests keep their rows either way.
func (h *AdminHandler) DeleteService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load the service.")
		return
	}

	var assigned int64
	if err := h.db.Model(&models.Professional{}).
		Where("service_id = ?", serviceID).
		Count(&assigned).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not check service usage.")
		return
	}

	if assigned > 0 {
		httperr.Conflict(
			c,
			httperr.CodeServiceInUse,
			fmt.Sprintf("Cannot delete '%s': %d professionals are assigned to it.", service.ServiceType, assigned),
		)
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) UploadServiceImage(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load the service.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Multipart field 'image' is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the upload.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadServiceImage(c.Request.Context(), file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Could not store the image.")
		return
	}

	service.ImageURL = url
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not persist the image URL.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "service_image_uploaded",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

// ======================================================
// PROFESSIONAL VERIFICATION
// ======================================================

func (h *AdminHandler) ApproveProfessional(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	professionalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prof, err := h.approveUC.Execute(c.Request.Context(), adminID, professionalID)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_approve", "Could not approve the professional.")
		return
	}

	httpresp.OK(c, prof)
}

func (h *AdminHandler) RejectProfessional(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	professionalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prof, err := h.rejectUC.Execute(c.Request.Context(), adminID, professionalID)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_reject", "Could not reject the professional.")
		return
	}

	httpresp.OK(c, prof)
}

// ======================================================
// BLOCK / UNBLOCK
// ======================================================

func (h *AdminHandler) SetUserBlocked(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Blocked == nil {
		httperr.BadRequest(c, "invalid_request", "Field 'blocked' is required.")
		return
	}

	err := h.setBlockedUC.Execute(c.Request.Context(), adminID, userID, *req.Blocked)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_set_blocked", "Could not change the block status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "blocked": *req.Blocked})
}

// ======================================================
// REASSIGNMENT
// ======================================================

func (h *AdminHandler) ReassignRequest(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Field 'professional_id' is required.")
		return
	}

	updated, err := h.reassignUC.Execute(
		c.Request.Context(),
		adminID,
		requestID,
		req.ProfessionalID,
	)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_reassign", "Could not reassign the request.")
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// SEARCH
// ======================================================

func (h *AdminHandler) Search(c *gin.Context) {
	category := c.DefaultQuery("category", "professional")
	q := strings.TrimSpace(c.Query("q"))

	if q == "" {
		c.JSON(http.StatusOK, gin.H{"category": category, "results": []any{}})
		return
	}

	like := "%" + strings.ToLower(q) + "%"

	switch category {
	case "professional":
		var results []models.Professional
		if err := h.db.
			Preload("User").
			Preload("Service").
			Joins("JOIN users ON users.id = professionals.user_id").
			Joins("JOIN services ON services.id = professionals.service_id").
			Where(
				`LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?
					OR LOWER(users.address) LIKE ? OR users.pin LIKE ?
					OR LOWER(services.service_type) LIKE ?`,
				like, like, like, like, like,
			).
			Find(&results).Error; err != nil {
			httperr.Internal(c, "failed_to_search", "Search failed.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category, "results": results})

	case "customer":
		var results []models.Customer
		if err := h.db.
			Preload("User").
			Joins("JOIN users ON users.id = customers.user_id").
			Where(
				`LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?
					OR LOWER(users.address) LIKE ? OR users.pin LIKE ?`,
				like, like, like, like,
			).
			Find(&results).Error; err != nil {
			httperr.Internal(c, "failed_to_search", "Search failed.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category, "results": results})

	default:
		httperr.BadRequest(c, "invalid_category", "Category must be professional or customer.")
	}
}
