package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/apierr"
)

// RespondAPIError maps a service error to its HTTP status. apierr values
// carry their own status and code; anything else is a 500.
func RespondAPIError(c *gin.Context, err error) {
	var apiError *apierr.Error
	if errors.As(err, &apiError) {
		RespondError(c, apiError.Status, apiError.Code, apiError)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
