package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness check
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// getHome godoc
// @Summary Show the status of server.
// @Tags root
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /api [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "PropEase CRM API"})
}
