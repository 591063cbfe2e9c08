// Package responses provides shared HTTP error response helpers.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chemezy-server/internal/utils/platformerrors"
)

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps an error to an HTTP response. PlatformErrors keep their
// type-derived status; anything else becomes a 500 with the public message.
func HandleError(c *gin.Context, err error, publicMessage string) {
	status := http.StatusInternalServerError
	code := string(platformerrors.ErrorTypeInternal)
	errorUUID := ""

	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		status = platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
		code = string(platformErr.Type)
		errorUUID = platformErr.UUID
		if status < http.StatusInternalServerError {
			publicMessage = platformErr.Message
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   publicMessage,
			RequestID: requestID(c, errorUUID),
		},
	})
}

// HandleNewError responds with a freshly minted error of the given type.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, code string) {
	if code == "" {
		code = string(errorType)
	}
	c.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(errorType), ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: requestID(c, ""),
		},
	})
}

func requestID(c *gin.Context, fallback string) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return fallback
}
