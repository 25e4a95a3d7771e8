package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

type enquiryHandler struct {
	enquiryService  portssvc.EnquirySvcFacade
	followUpService portssvc.FollowUpReaderSvc
}

func registerEnquiryRoutes(rg *gin.RouterGroup, enquiryService portssvc.EnquirySvcFacade, followUpService portssvc.FollowUpReaderSvc) {
	h := &enquiryHandler{enquiryService: enquiryService, followUpService: followUpService}

	enquiries := rg.Group("/enquiries")
	{
		enquiries.GET("", h.listEnquiries)
		enquiries.POST("", h.createEnquiry)
		enquiries.GET("/:id", h.getEnquiry)
		enquiries.PUT("/:id", h.updateEnquiry)
		enquiries.DELETE("/:id", h.deleteEnquiry)
		enquiries.POST("/:id/cancel", h.cancelEnquiry)
		enquiries.GET("/:id/remarks", h.listRemarks)
		enquiries.POST("/:id/remarks", h.addRemark)
		enquiries.GET("/:id/followups", h.listEnquiryFollowUps)
	}
}

// createEnquiry godoc
// @Summary Create an enquiry
// @Description Uses clientId of an existing client, or createNewClient=true with newClient to create one in the same step. Schedules the first follow-up a week out.
// @Tags enquiries
// @Accept json
// @Produce json
// @Param enquiry body dto.CreateEnquiryRequest true "Enquiry"
// @Success 201 {object} dto.CreateEnquiryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project, client or property not found"
// @Security BearerAuth
// @Router /enquiries [post]
func (h *enquiryHandler) createEnquiry(c *gin.Context) {
	var req dto.CreateEnquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	created, err := h.enquiryService.CreateEnquiry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create enquiry")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Enquiry created",
		slog.String("enquiry_id", created.Enquiry.EnquiryID),
		slog.Bool("new_client", created.NewClient != nil))
	c.JSON(http.StatusCreated, dto.ToCreateEnquiryResponse(created))
}

// @Summary Get an enquiry
// @Tags enquiries
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {object} dto.EnquiryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enquiries/{id} [get]
func (h *enquiryHandler) getEnquiry(c *gin.Context) {
	enquiry, err := h.enquiryService.GetEnquiryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve enquiry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnquiryResponse(enquiry))
}

// @Summary List enquiries
// @Tags enquiries
// @Produce json
// @Param projectId query string false "Project ID"
// @Param clientId query string false "Client ID"
// @Param status query string false "ONGOING, COMPLETED or CANCELLED"
// @Param search query string false "Matches client name or budget"
// @Success 200 {array} dto.EnquiryResponse
// @Security BearerAuth
// @Router /enquiries [get]
func (h *enquiryHandler) listEnquiries(c *gin.Context) {
	var params dto.ListEnquiriesParams
	if !bindQuery(c, &params) {
		return
	}
	items, err := h.enquiryService.ListEnquiries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list enquiries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEnquiryResponse(items))
}

// @Summary Update an enquiry
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param enquiry body dto.UpdateEnquiryRequest true "Fields to change"
// @Success 200 {object} dto.EnquiryResponse
// @Security BearerAuth
// @Router /enquiries/{id} [put]
func (h *enquiryHandler) updateEnquiry(c *gin.Context) {
	var req dto.UpdateEnquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	enquiry, err := h.enquiryService.UpdateEnquiry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update enquiry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnquiryResponse(enquiry))
}

// @Summary Cancel an enquiry
// @Description Marks the enquiry CANCELLED and records the remark in its log.
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param cancel body dto.CancelEnquiryRequest true "Closing remark"
// @Success 200 {object} dto.EnquiryResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /enquiries/{id}/cancel [post]
func (h *enquiryHandler) cancelEnquiry(c *gin.Context) {
	var req dto.CancelEnquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	enquiry, err := h.enquiryService.CancelEnquiry(c.Request.Context(), c.Param("id"), req.Remark, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel enquiry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnquiryResponse(enquiry))
}

// @Summary Delete an enquiry
// @Tags enquiries
// @Param id path string true "Enquiry ID"
// @Success 204
// @Security BearerAuth
// @Router /enquiries/{id} [delete]
func (h *enquiryHandler) deleteEnquiry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.enquiryService.DeleteEnquiry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete enquiry")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remark log of an enquiry
// @Tags enquiries
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {array} dto.EnquiryRemarkResponse
// @Security BearerAuth
// @Router /enquiries/{id}/remarks [get]
func (h *enquiryHandler) listRemarks(c *gin.Context) {
	remarks, err := h.enquiryService.ListRemarks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list remarks")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEnquiryRemarkResponse(remarks))
}

// @Summary Add a remark
// @Tags enquiries
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param remark body dto.AddRemarkRequest true "Remark"
// @Success 201 {object} dto.EnquiryRemarkResponse
// @Security BearerAuth
// @Router /enquiries/{id}/remarks [post]
func (h *enquiryHandler) addRemark(c *gin.Context) {
	var req dto.AddRemarkRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	remark, err := h.enquiryService.AddRemark(c.Request.Context(), c.Param("id"), req.Body, userID)
	if err != nil {
		respondError(c, err, "Failed to add remark")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEnquiryRemarkResponse(remark))
}

// @Summary Follow-ups of an enquiry
// @Tags enquiries
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {array} dto.FollowUpResponse
// @Security BearerAuth
// @Router /enquiries/{id}/followups [get]
func (h *enquiryHandler) listEnquiryFollowUps(c *gin.Context) {
	ctx := c.Request.Context()
	enquiryID := c.Param("id")
	if _, err := h.enquiryService.GetEnquiryByID(ctx, enquiryID); err != nil {
		respondError(c, err, "Failed to retrieve enquiry")
		return
	}
	items, err := h.followUpService.ListFollowUps(ctx, dto.ListFollowUpsParams{EnquiryID: enquiryID})
	if err != nil {
		respondError(c, err, "Failed to list follow-ups")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFollowUpResponse(items))
}
