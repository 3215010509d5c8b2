package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voxi/internal/api/errors"
)

// ErrorHandler turns panics into structured APIError responses.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		var apiErr *errors.APIError
		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			logger.Error("internal server error",
				zap.String("error", err.Error()),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		default:
			logger.Error("unknown panic",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes an error response from a handler.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := c.GetString("request_id")

	if apiErr, ok := err.(*errors.APIError); ok {
		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
		return
	}

	c.AbortWithStatusJSON(500, &errors.APIError{
		Kind:      errors.KindInternal,
		Message:   err.Error(),
		RequestID: requestID,
	})
}
