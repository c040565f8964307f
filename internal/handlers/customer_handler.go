package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/httpresp"
	"github.com/UrbanAidServices/household-marketplace/internal/middleware"
	"github.com/UrbanAidServices/household-marketplace/internal/models"
	ucListing "github.com/UrbanAidServices/household-marketplace/internal/usecase/listing"
	ucRequest "github.com/UrbanAidServices/household-marketplace/internal/usecase/request"
)

// ======================================================
// HANDLER
// ======================================================

type CustomerHandler struct {
	db *gorm.DB

	browseUC      *ucListing.BrowseProfessionals
	createUC      *ucRequest.CreateRequest
	updatePriceUC *ucRequest.UpdateProposedPrice
	fileReviewUC  *ucRequest.FileReview
	paymentUC     *ucRequest.ProcessPayment
	historyUC     *ucRequest.ListHistory
}

func NewCustomerHandler(
	db *gorm.DB,
	browseUC *ucListing.BrowseProfessionals,
	createUC *ucRequest.CreateRequest,
	updatePriceUC *ucRequest.UpdateProposedPrice,
	fileReviewUC *ucRequest.FileReview,
	paymentUC *ucRequest.ProcessPayment,
	historyUC *ucRequest.ListHistory,
) *CustomerHandler {
	return &CustomerHandler{
		db:            db,
		browseUC:      browseUC,
		createUC:      createUC,
		updatePriceUC: updatePriceUC,
		fileReviewUC:  fileReviewUC,
		paymentUC:     paymentUC,
		historyUC:     historyUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookServiceRequest struct {
	ProfessionalID uint     `json:"professional_id" binding:"required"`
	ServiceID      uint     `json:"service_id" binding:"required"`
	ProposedPrice  *float64 `json:"proposed_price"`
	Date           string   `json:"date" binding:"required"`
	Remarks        string   `json:"remarks"`
}

type UpdatePriceRequest struct {
	ProposedPrice float64 `json:"proposed_price" binding:"required"`
}

type FileReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Remarks string `json:"remarks"`
}

// ======================================================
// BROWSE & BOOK
// ======================================================

func (h *CustomerHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("service_type ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *CustomerHandler) BrowseProfessionals(c *gin.Context) {
	var serviceID *uint
	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric.")
			return
		}
		v := uint(id)
		serviceID = &v
	}

	cards, err := h.browseUC.Execute(
		c.Request.Context(),
		serviceID,
		c.Query("q"),
		c.DefaultQuery("sort_by", ucListing.SortByRating),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_browse", "Could not list professionals.")
		return
	}

	httpresp.List(c, cards)
}

func (h *CustomerHandler) BookService(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	var req BookServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucRequest.CreateRequestInput{
		CustomerID:     customerID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		ProposedPrice:  req.ProposedPrice,
		Date:           req.Date,
		Remarks:        req.Remarks,
	})
	if err != nil {
		writeLifecycleError(c, err, "failed_to_book", "Could not create the service request.")
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *CustomerHandler) UpdateRequestPrice(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid price payload.")
		return
	}

	updated, err := h.updatePriceUC.Execute(
		c.Request.Context(),
		customerID,
		requestID,
		req.ProposedPrice,
	)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_update_price", "Could not update the proposed price.")
		return
	}

	httpresp.OK(c, updated)
}

func (h *CustomerHandler) FileReview(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FileReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review payload.")
		return
	}

	review, err := h.fileReviewUC.Execute(c.Request.Context(), ucRequest.FileReviewInput{
		CustomerID: customerID,
		RequestID:  requestID,
		Rating:     req.Rating,
		Remarks:    req.Remarks,
	})
	if err != nil {
		writeLifecycleError(c, err, "failed_to_review", "Could not save the review.")
		return
	}

	httpresp.Created(c, review)
}

func (h *CustomerHandler) ProcessPayment(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.paymentUC.Execute(c.Request.Context(), customerID, requestID)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_pay", "Could not process the payment.")
		return
	}

	httpresp.OK(c, updated)
}

func (h *CustomerHandler) ServiceHistory(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	requests, err := h.historyUC.ForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_history", "Could not list the service history.")
		return
	}

	httpresp.List(c, requests)
}

// ======================================================
// PROFILE
// ======================================================

// Profile is visible to the customer themselves and to admins.
func (h *CustomerHandler) Profile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var cust models.Customer
	if err := h.db.Preload("User").First(&cust, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "customer_not_found", "Customer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Could not load the customer.")
		return
	}

	if role != models.RoleAdmin && cust.UserID != userID {
		httperr.Forbidden(c, httperr.CodeForbidden, "You may not view this profile.")
		return
	}

	requests, err := h.historyUC.ForCustomer(c.Request.Context(), cust.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_history", "Could not list the service history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":         cust,
		"service_requests": requests,
	})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Path id must be numeric.")
		return 0, false
	}
	return uint(id), true
}

// Shared mapping from business failures to HTTP responses.
func writeLifecycleError(
	c *gin.Context,
	err error,
	fallbackCode string,
	fallbackMessage string,
) {
	switch code := httperr.BusinessCode(err); code {
	case httperr.CodeInvalidInput:
		httperr.BadRequest(c, code, "Invalid input.")
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, "You may not perform this operation.")
	case httperr.CodeInvalidTransition:
		httperr.Conflict(c, code, "Operation not allowed in the current status.")
	case httperr.CodeDuplicateActiveRequest:
		httperr.Conflict(c, code, "You already have an active request with this professional.")
	case httperr.CodeAlreadyReviewed:
		httperr.Conflict(c, code, "This request has already been reviewed.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, "Record not found.")
	case httperr.CodeProfileNotFound:
		httperr.BadRequest(c, code, "User has no blockable profile.")
	default:
		httperr.Internal(c, fallbackCode, fallbackMessage)
	}
}
