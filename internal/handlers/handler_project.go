package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler serves projects and the registration wizard.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := &projectHandler{projectService: projectService}

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/basic", h.listProjectBasicInfo)
		projects.POST("", h.createProject)
		projects.POST("/register", h.registerProject)
		projects.GET("/:id", h.getProject)
		projects.GET("/:id/details", h.getProjectDetails)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
	}
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	project, err := h.projectService.CreateProject(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// registerProject godoc
// @Summary Register a project with its inventory
// @Description Creates the project, wings, floors with generated flats, bank details, amenities and the payment schedule in one step. The schedule must total 100%.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.RegisterProjectRequest true "Registration wizard"
// @Success 201 {object} dto.ProjectDetailsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/register [post]
func (h *projectHandler) registerProject(c *gin.Context) {
	var req dto.RegisterProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	details, err := h.projectService.RegisterProject(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to register project")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Project registered",
		slog.String("project_id", details.Project.ProjectID),
		slog.Int("flats", len(details.Flats)))
	c.JSON(http.StatusCreated, dto.ToProjectDetailsResponse(details))
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// getProjectDetails godoc
// @Summary Get a project with its inventory
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectDetailsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/details [get]
func (h *projectHandler) getProjectDetails(c *gin.Context) {
	details, err := h.projectService.GetProjectDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve project details")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDetailsResponse(details))
}

// listProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param status query string false "UPCOMING, IN_PROGRESS or COMPLETED"
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	var params dto.ListProjectsParams
	if !bindQuery(c, &params) {
		return
	}
	projects, err := h.projectService.ListProjects(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// listProjectBasicInfo godoc
// @Summary List project names
// @Description Lightweight list for pickers.
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectBasicInfo
// @Security BearerAuth
// @Router /projects/basic [get]
func (h *projectHandler) listProjectBasicInfo(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context(), dto.ListProjectsParams{})
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectBasicInfoList(projects))
}

// updateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Soft deletes a project. Rejected while any unit has an active booking.
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}
