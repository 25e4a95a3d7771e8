package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler exposes the unit status workflow: book, register and cancel.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade) {
	h := &bookingHandler{bookingService: bookingService}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.listBookings)
		bookings.POST("", h.bookUnit)
		bookings.GET("/:id", h.getBooking)
	}

	flats := rg.Group("/flats/:propertyID")
	{
		flats.GET("/booking", h.getActiveBooking)
		flats.POST("/register", h.registerUnit)
		flats.POST("/cancel-booking", h.cancelBooking)
	}
}

// bookUnit godoc
// @Summary Book a unit
// @Description Books a VACANT unit for an existing client (clientId) or a new one (createNewClient with newClient). A linked enquiry is marked COMPLETED.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.BookUnitRequest true "Booking"
// @Success 201 {object} dto.BookUnitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Unit is not vacant"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) bookUnit(c *gin.Context) {
	var req dto.BookUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.bookingService.BookUnit(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to book unit")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Unit booked",
		slog.String("booking_id", result.Booking.BookingID),
		slog.String("property_id", result.Booking.PropertyID))
	c.JSON(http.StatusCreated, dto.ToBookUnitResponse(result))
}

// registerUnit godoc
// @Summary Register a booked unit
// @Description Marks the unit's active booking as registered. Fails with "No booking found for this unit" when there is none.
// @Tags bookings
// @Accept json
// @Produce json
// @Param propertyID path string true "Property ID"
// @Param registration body dto.RegisterUnitRequest false "Registration date, defaults to today"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already registered"
// @Security BearerAuth
// @Router /flats/{propertyID}/register [post]
func (h *bookingHandler) registerUnit(c *gin.Context) {
	var req dto.RegisterUnitRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	booking, err := h.bookingService.RegisterUnit(c.Request.Context(), c.Param("propertyID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to register unit")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// cancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels the unit's active booking and frees the unit. A reason is required.
// @Tags bookings
// @Accept json
// @Produce json
// @Param propertyID path string true "Property ID"
// @Param cancel body dto.CancelBookingRequest true "Reason"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No active booking"
// @Failure 409 {object} ErrorResponse "Booking is registered"
// @Security BearerAuth
// @Router /flats/{propertyID}/cancel-booking [post]
func (h *bookingHandler) cancelBooking(c *gin.Context) {
	var req dto.CancelBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("propertyID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// @Summary Active booking of a unit
// @Tags bookings
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /flats/{propertyID}/booking [get]
func (h *bookingHandler) getActiveBooking(c *gin.Context) {
	booking, err := h.bookingService.GetActiveBookingForUnit(c.Request.Context(), c.Param("propertyID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// @Summary List bookings
// @Tags bookings
// @Produce json
// @Param projectId query string false "Project ID"
// @Param clientId query string false "Client ID"
// @Param propertyId query string false "Property ID"
// @Param active query bool false "Only bookings that are not cancelled"
// @Success 200 {array} dto.BookingResponse
// @Security BearerAuth
// @Router /bookings [get]
func (h *bookingHandler) listBookings(c *gin.Context) {
	var params dto.ListBookingsParams
	if !bindQuery(c, &params) {
		return
	}
	items, err := h.bookingService.ListBookings(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBookingResponse(items))
}
