package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

// inventoryHandler serves wings, floors and flats. Flat status is read only
// here; it changes through the booking routes.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := &inventoryHandler{inventoryService: inventoryService}

	rg.GET("/projects/:id/wings", h.listWings)
	rg.POST("/projects/:id/wings", h.addWing)
	rg.GET("/projects/:id/property-options", h.propertyOptions)

	wings := rg.Group("/wings/:id")
	{
		wings.PUT("", h.updateWing)
		wings.DELETE("", h.deleteWing)
		wings.GET("/floors", h.listFloors)
		wings.POST("/floors", h.addFloor)
	}

	rg.PUT("/floors/:id", h.updateFloor)
	rg.DELETE("/floors/:id", h.deleteFloor)

	flats := rg.Group("/flats")
	{
		flats.GET("", h.listFlats)
		flats.GET("/:propertyID", h.getFlat)
		flats.PUT("/:propertyID", h.updateFlat)
		flats.DELETE("/:propertyID", h.deleteFlat)
	}
}

// @Summary Wings of a project
// @Tags inventory
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} dto.WingResponse
// @Security BearerAuth
// @Router /projects/{id}/wings [get]
func (h *inventoryHandler) listWings(c *gin.Context) {
	wings, err := h.inventoryService.ListWings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list wings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWingResponse(wings))
}

// @Summary Add a wing
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param wing body dto.CreateWingRequest true "Wing"
// @Success 201 {object} dto.WingResponse
// @Failure 409 {object} ErrorResponse "Wing name already used in this project"
// @Security BearerAuth
// @Router /projects/{id}/wings [post]
func (h *inventoryHandler) addWing(c *gin.Context) {
	var req dto.CreateWingRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	wing, err := h.inventoryService.AddWing(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add wing")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWingResponse(wing))
}

// @Summary Vacant units of a project
// @Description Options for the enquiry and booking forms.
// @Tags inventory
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} dto.PropertyOption
// @Security BearerAuth
// @Router /projects/{id}/property-options [get]
func (h *inventoryHandler) propertyOptions(c *gin.Context) {
	flats, err := h.inventoryService.PropertyOptions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list property options")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropertyOptions(flats))
}

// @Summary Update a wing
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Wing ID"
// @Param wing body dto.UpdateWingRequest true "Fields to change"
// @Success 200 {object} dto.WingResponse
// @Security BearerAuth
// @Router /wings/{id} [put]
func (h *inventoryHandler) updateWing(c *gin.Context) {
	var req dto.UpdateWingRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	wing, err := h.inventoryService.UpdateWing(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update wing")
		return
	}
	c.JSON(http.StatusOK, dto.ToWingResponse(wing))
}

// @Summary Delete a wing
// @Description Rejected while any of its units is booked or registered.
// @Tags inventory
// @Param id path string true "Wing ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wings/{id} [delete]
func (h *inventoryHandler) deleteWing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteWing(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete wing")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Floors of a wing
// @Tags inventory
// @Produce json
// @Param id path string true "Wing ID"
// @Success 200 {array} dto.FloorResponse
// @Security BearerAuth
// @Router /wings/{id}/floors [get]
func (h *inventoryHandler) listFloors(c *gin.Context) {
	floors, err := h.inventoryService.ListFloors(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list floors")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFloorResponse(floors))
}

// addFloor godoc
// @Summary Add a floor
// @Description Adds a floor and generates quantity flats numbered {wing}-{floorNo}{n}.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Wing ID"
// @Param floor body dto.CreateFloorRequest true "Floor"
// @Success 201 {object} dto.CreateFloorResponse
// @Failure 409 {object} ErrorResponse "Floor number already exists"
// @Security BearerAuth
// @Router /wings/{id}/floors [post]
func (h *inventoryHandler) addFloor(c *gin.Context) {
	var req dto.CreateFloorRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	floor, flats, err := h.inventoryService.AddFloor(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add floor")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateFloorResponse{
		Floor: dto.ToFloorResponse(floor),
		Flats: dto.ToListFlatResponse(flats),
	})
}

// @Summary Update a floor
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Floor ID"
// @Param floor body dto.UpdateFloorRequest true "Fields to change"
// @Success 200 {object} dto.FloorResponse
// @Security BearerAuth
// @Router /floors/{id} [put]
func (h *inventoryHandler) updateFloor(c *gin.Context) {
	var req dto.UpdateFloorRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	floor, err := h.inventoryService.UpdateFloor(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update floor")
		return
	}
	c.JSON(http.StatusOK, dto.ToFloorResponse(floor))
}

// @Summary Delete a floor
// @Tags inventory
// @Param id path string true "Floor ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /floors/{id} [delete]
func (h *inventoryHandler) deleteFloor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteFloor(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete floor")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List flats
// @Tags inventory
// @Produce json
// @Param projectId query string false "Project ID"
// @Param wingId query string false "Wing ID"
// @Param floorId query string false "Floor ID"
// @Param status query string false "VACANT, BOOKED or REGISTERED"
// @Success 200 {array} dto.FlatResponse
// @Security BearerAuth
// @Router /flats [get]
func (h *inventoryHandler) listFlats(c *gin.Context) {
	var params dto.ListFlatsParams
	if !bindQuery(c, &params) {
		return
	}
	flats, err := h.inventoryService.ListFlats(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list flats")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFlatResponse(flats))
}

// @Summary Get a flat
// @Tags inventory
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} dto.FlatResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /flats/{propertyID} [get]
func (h *inventoryHandler) getFlat(c *gin.Context) {
	flat, err := h.inventoryService.GetFlat(c.Request.Context(), c.Param("propertyID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve flat")
		return
	}
	c.JSON(http.StatusOK, dto.ToFlatResponse(flat))
}

// @Summary Update a flat
// @Description Unit number, area and BHK only. Status follows bookings.
// @Tags inventory
// @Accept json
// @Produce json
// @Param propertyID path string true "Property ID"
// @Param flat body dto.UpdateFlatRequest true "Fields to change"
// @Success 200 {object} dto.FlatResponse
// @Security BearerAuth
// @Router /flats/{propertyID} [put]
func (h *inventoryHandler) updateFlat(c *gin.Context) {
	var req dto.UpdateFlatRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	flat, err := h.inventoryService.UpdateFlat(c.Request.Context(), c.Param("propertyID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update flat")
		return
	}
	c.JSON(http.StatusOK, dto.ToFlatResponse(flat))
}

// @Summary Delete a flat
// @Tags inventory
// @Param propertyID path string true "Property ID"
// @Success 204
// @Failure 409 {object} ErrorResponse "Unit is booked or registered"
// @Security BearerAuth
// @Router /flats/{propertyID} [delete]
func (h *inventoryHandler) deleteFlat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteFlat(c.Request.Context(), c.Param("propertyID"), userID); err != nil {
		respondError(c, err, "Failed to delete flat")
		return
	}
	c.Status(http.StatusNoContent)
}
