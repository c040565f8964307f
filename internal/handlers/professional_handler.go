package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/UrbanAidServices/household-marketplace/internal/httperr"
	"github.com/UrbanAidServices/household-marketplace/internal/httpresp"
	"github.com/UrbanAidServices/household-marketplace/internal/middleware"
	ucRequest "github.com/UrbanAidServices/household-marketplace/internal/usecase/request"
)

type ProfessionalHandler struct {
	acceptUC  *ucRequest.AcceptRequest
	rejectUC  *ucRequest.RejectRequest
	historyUC *ucRequest.ListHistory
}

func NewProfessionalHandler(
	acceptUC *ucRequest.AcceptRequest,
	rejectUC *ucRequest.RejectRequest,
	historyUC *ucRequest.ListHistory,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		acceptUC:  acceptUC,
		rejectUC:  rejectUC,
		historyUC: historyUC,
	}
}

func (h *ProfessionalHandler) ListAssigned(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfileID).(uint)

	requests, err := h.historyUC.ForProfessional(c.Request.Context(), professionalID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Could not list assigned requests.")
		return
	}

	httpresp.List(c, requests)
}

func (h *ProfessionalHandler) Accept(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfileID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.acceptUC.Execute(c.Request.Context(), professionalID, requestID)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_accept", "Could not accept the request.")
		return
	}

	httpresp.OK(c, updated)
}

func (h *ProfessionalHandler) Reject(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfileID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.rejectUC.Execute(c.Request.Context(), professionalID, requestID)
	if err != nil {
		writeLifecycleError(c, err, "failed_to_reject", "Could not reject the request.")
		return
	}

	httpresp.OK(c, updated)
}
