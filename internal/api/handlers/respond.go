package handlers

import (
	"net/http"

	"pantry-tracker/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// RespondError maps domain errors onto HTTP responses. Validation errors
// become 400, CustomErrors carry their own status, everything else is 500.
func RespondError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	if ce, ok := err.(*common.CustomError); ok {
		resp := common.ErrorResponse{
			Code:    ce.Code,
			Message: ce.Message,
		}
		if ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		c.JSON(ce.Status, resp)
		return
	}

	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "internal server error",
	})
}
