package handlers

import (
	"net/http"

	"cover-builder-backend/internal/config"
	"cover-builder-backend/internal/models"
	"cover-builder-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ModeHeader lets a caller pick real or stub generation per request.
const ModeHeader = "X-Use-OpenAI"

type CoverHandler struct {
	briefs      *services.BriefService
	images      *services.ImageService
	defaultMode services.Mode
}

func NewCoverHandler(briefs *services.BriefService, images *services.ImageService, defaultMode services.Mode) *CoverHandler {
	return &CoverHandler{
		briefs:      briefs,
		images:      images,
		defaultMode: defaultMode,
	}
}

// GenerateBrief godoc
// @Summary  Generate cover directions for a project
// @Tags     cover
// @Accept   json
// @Produce  json
// @Param    X-Use-OpenAI header string false "true/false, overrides USE_OPENAI"
// @Param    request body models.CoverBriefRequest true "Brief request"
// @Success  200 {object} models.CoverBriefResponse
// @Failure  404 {object} models.ErrorResponse
// @Failure  502 {object} models.ErrorResponse
// @Router   /cover/brief [post]
func (h *CoverHandler) GenerateBrief(c *gin.Context) {
	var req models.CoverBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mode, ok := h.resolveMode(c)
	if !ok {
		return
	}

	resp, err := h.briefs.Generate(c.Request.Context(), &req, mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateImage godoc
// @Summary  Generate background images for a cover direction
// @Tags     cover
// @Accept   json
// @Produce  json
// @Param    X-Use-OpenAI header string false "true/false, overrides USE_OPENAI"
// @Param    request body models.CoverImageRequest true "Image request"
// @Success  200 {object} models.CoverImageGenerateResponse
// @Failure  400 {object} models.ErrorResponse
// @Failure  404 {object} models.ErrorResponse
// @Failure  502 {object} models.ErrorResponse
// @Router   /cover/image [post]
func (h *CoverHandler) GenerateImage(c *gin.Context) {
	var req models.CoverImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mode, ok := h.resolveMode(c)
	if !ok {
		return
	}

	resp, err := h.images.Generate(c.Request.Context(), &req, mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// resolveMode reads ModeHeader, falling back to the process default when
// the header is absent.
func (h *CoverHandler) resolveMode(c *gin.Context) (services.Mode, bool) {
	value := c.GetHeader(ModeHeader)
	if value == "" {
		return h.defaultMode, true
	}
	useProvider, err := config.ParseBool(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid " + ModeHeader + " header",
			Message: err.Error(),
		})
		return 0, false
	}
	return services.ModeFromFlag(useProvider), true
}
