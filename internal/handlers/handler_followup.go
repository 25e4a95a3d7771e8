package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

type followUpHandler struct {
	followUpService portssvc.FollowUpSvcFacade
}

func registerFollowUpRoutes(rg *gin.RouterGroup, followUpService portssvc.FollowUpSvcFacade) {
	h := &followUpHandler{followUpService: followUpService}

	followUps := rg.Group("/followups")
	{
		followUps.GET("", h.listFollowUps)
		followUps.POST("", h.createFollowUp)
		followUps.GET("/stats", h.getStats)
		followUps.GET("/:id", h.getFollowUp)
		followUps.POST("/:id/complete", h.completeFollowUp)
		followUps.GET("/:id/notes", h.listNotes)
		followUps.POST("/:id/notes", h.addNote)
		followUps.GET("/:id/timeline", h.getTimeline)
	}
}

// listFollowUps godoc
// @Summary List follow-ups
// @Description view=today returns pending follow-ups dated today or earlier, oldest first. overdue, dueToday and completedToday are the board columns.
// @Tags followups
// @Produce json
// @Param view query string false "all, today, overdue, dueToday or completedToday" default(all)
// @Param enquiryId query string false "Enquiry ID"
// @Param status query string false "PENDING or COMPLETED"
// @Success 200 {array} dto.FollowUpResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /followups [get]
func (h *followUpHandler) listFollowUps(c *gin.Context) {
	var params dto.ListFollowUpsParams
	if !bindQuery(c, &params) {
		return
	}
	items, err := h.followUpService.ListFollowUps(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list follow-ups")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFollowUpResponse(items))
}

// @Summary Schedule a follow-up
// @Tags followups
// @Accept json
// @Produce json
// @Param followup body dto.CreateFollowUpRequest true "Follow-up"
// @Success 201 {object} dto.FollowUpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Enquiry is cancelled"
// @Security BearerAuth
// @Router /followups [post]
func (h *followUpHandler) createFollowUp(c *gin.Context) {
	var req dto.CreateFollowUpRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	followUp, err := h.followUpService.CreateFollowUp(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create follow-up")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFollowUpResponse(followUp))
}

// @Summary Follow-up counters
// @Tags followups
// @Produce json
// @Success 200 {object} domain.FollowUpStats
// @Security BearerAuth
// @Router /followups/stats [get]
func (h *followUpHandler) getStats(c *gin.Context) {
	stats, err := h.followUpService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute follow-up stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get a follow-up
// @Tags followups
// @Produce json
// @Param id path string true "Follow-up ID"
// @Success 200 {object} dto.FollowUpResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /followups/{id} [get]
func (h *followUpHandler) getFollowUp(c *gin.Context) {
	followUp, err := h.followUpService.GetFollowUpByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve follow-up")
		return
	}
	c.JSON(http.StatusOK, dto.ToFollowUpResponse(followUp))
}

// completeFollowUp godoc
// @Summary Complete a follow-up
// @Description Records the remark as a note, marks the follow-up COMPLETED and optionally schedules the next one.
// @Tags followups
// @Accept json
// @Produce json
// @Param id path string true "Follow-up ID"
// @Param completion body dto.CompleteFollowUpRequest true "Completion"
// @Success 200 {object} dto.CompleteFollowUpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already completed"
// @Security BearerAuth
// @Router /followups/{id}/complete [post]
func (h *followUpHandler) completeFollowUp(c *gin.Context) {
	var req dto.CompleteFollowUpRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	completion, err := h.followUpService.CompleteFollowUp(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to complete follow-up")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompleteFollowUpResponse(completion))
}

// @Summary Notes of a follow-up
// @Tags followups
// @Produce json
// @Param id path string true "Follow-up ID"
// @Success 200 {array} dto.FollowUpNodeResponse
// @Security BearerAuth
// @Router /followups/{id}/notes [get]
func (h *followUpHandler) listNotes(c *gin.Context) {
	nodes, err := h.followUpService.ListNodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list notes")
		return
	}
	res := make([]dto.FollowUpNodeResponse, len(nodes))
	for i := range nodes {
		res[i] = dto.ToFollowUpNodeResponse(&nodes[i])
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Add a note
// @Tags followups
// @Accept json
// @Produce json
// @Param id path string true "Follow-up ID"
// @Param note body dto.AddFollowUpNoteRequest true "Note"
// @Success 201 {object} dto.FollowUpNodeResponse
// @Security BearerAuth
// @Router /followups/{id}/notes [post]
func (h *followUpHandler) addNote(c *gin.Context) {
	var req dto.AddFollowUpNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	node, err := h.followUpService.AddNote(c.Request.Context(), c.Param("id"), req.Body, userID)
	if err != nil {
		respondError(c, err, "Failed to add note")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFollowUpNodeResponse(node))
}

// @Summary Activity timeline of a follow-up
// @Tags followups
// @Produce json
// @Param id path string true "Follow-up ID"
// @Success 200 {array} domain.TimelineEntry
// @Security BearerAuth
// @Router /followups/{id}/timeline [get]
func (h *followUpHandler) getTimeline(c *gin.Context) {
	timeline, err := h.followUpService.GetTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build timeline")
		return
	}
	c.JSON(http.StatusOK, timeline)
}
