package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body every failed request returns.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// StatusErrorResponse is the body for endpoints that answer with a status flag.
type StatusErrorResponse struct {
	Status  bool        `json:"status"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// HandleError writes err as a JSON error body. Unknown errors become 500.
func HandleError(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// HandleStatusError writes err as {status:false, error}.
func HandleStatusError(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.AbortWithStatusJSON(appErr.HTTPCode, StatusErrorResponse{
		Status:  false,
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func toAppError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return InternalError(err)
}
