package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := &clientHandler{clientService: clientService}

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.GET("/:id/profile", h.getClientProfile)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

// createClient godoc
// @Summary Create a client
// @Description E-mail, 10-digit mobile, PAN and 12-digit Aadhar are validated.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// @Summary Client profile
// @Description The client with their enquiries and bookings.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientProfileResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/profile [get]
func (h *clientHandler) getClientProfile(c *gin.Context) {
	profile, err := h.clientService.GetClientProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve client profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientProfileResponse(profile))
}

// @Summary List clients
// @Tags clients
// @Produce json
// @Param search query string false "Matches name, e-mail or mobile"
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	var params dto.ListClientsParams
	if !bindQuery(c, &params) {
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to change"
// @Success 200 {object} dto.ClientResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// @Summary Delete a client
// @Description Rejected while the client holds an active booking.
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}
