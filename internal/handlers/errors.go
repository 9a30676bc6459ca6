package handlers

import (
	"errors"
	"net/http"

	"cover-builder-backend/internal/models"
	"cover-builder-backend/internal/services"

	"github.com/gin-gonic/gin"
)

var kindStatus = map[services.ErrorKind]int{
	services.KindNotFound:   http.StatusNotFound,
	services.KindValidation: http.StatusBadRequest,
	services.KindProvider:   http.StatusBadGateway,
	services.KindParse:      http.StatusBadGateway,
	services.KindStub:       http.StatusInternalServerError,
	services.KindInternal:   http.StatusInternalServerError,
}

// respondError writes err as an ErrorResponse with the status for its kind.
func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	resp := models.ErrorResponse{Error: string(kind)}
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		resp.Message = svcErr.Message
		if svcErr.Err != nil && kind != services.KindInternal {
			resp.Message += ": " + svcErr.Err.Error()
		}
	}

	c.Error(err)
	c.JSON(status, resp)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid request body",
		Message: err.Error(),
	})
}
