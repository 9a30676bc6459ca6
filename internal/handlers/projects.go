package handlers

import (
	"net/http"

	"cover-builder-backend/internal/models"
	"cover-builder-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectsHandler struct {
	projects *services.ProjectService
}

func NewProjectsHandler(projects *services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// CreateProject godoc
// @Summary  Create a cover project
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    request body models.CreateProjectRequest true "Project"
// @Success  200 {object} models.ProjectResponse
// @Failure  400 {object} models.ErrorResponse
// @Router   /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects godoc
// @Summary  List projects, newest first
// @Tags     projects
// @Produce  json
// @Success  200 {array} models.ProjectResponse
// @Router   /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary  Get a project
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} models.ProjectResponse
// @Failure  404 {object} models.ErrorResponse
// @Router   /projects/{id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListBriefRuns godoc
// @Summary  List a project's brief runs, newest first
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {array} models.BriefRunResponse
// @Failure  400 {object} models.ErrorResponse
// @Failure  404 {object} models.ErrorResponse
// @Router   /projects/{id}/brief-runs [get]
func (h *ProjectsHandler) ListBriefRuns(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	runs, err := h.projects.ListBriefRuns(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

// ListImages godoc
// @Summary  List a project's cover images, newest first
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {array} models.CoverImageResponse
// @Failure  400 {object} models.ErrorResponse
// @Failure  404 {object} models.ErrorResponse
// @Router   /projects/{id}/images [get]
func (h *ProjectsHandler) ListImages(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	images, err := h.projects.ListImages(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// DeleteProject godoc
// @Summary  Delete a project with its brief runs, images and stored files
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} map[string]string
// @Failure  404 {object} models.ErrorResponse
// @Router   /projects/{id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return uuid.Nil, false
	}
	return id, true
}
