package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hoardspace/bms-backend/internal/pkg/apperror"
)

// DevMode controls whether internal error detail is included in 500 responses.
// Set once at startup; never enabled in production.
var DevMode bool

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error sends a JSON error response.
// AppError values map to their carried status code; anything else is a 500
// with the internal detail withheld unless DevMode is on.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Message: appErr.Message})
		return
	}

	log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	resp := ErrorResponse{Message: "something went wrong"}
	if DevMode {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
