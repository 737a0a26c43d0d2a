package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/logging"
)

// Envelope is the body of every API response.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Meta  any        `json:"meta,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    apperror.Code     `json:"code"`
	Message string            `json:"message"`
	Details []apperror.Detail `json:"details"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{OK: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{OK: true, Data: data})
}

// List writes a page of items with its pagination meta.
func List(c *gin.Context, items, meta any) {
	c.JSON(http.StatusOK, Envelope{OK: true, Data: items, Meta: meta})
}

// Status maps an error code to its HTTP status.
func Status(code apperror.Code) int {
	switch code {
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a failure envelope and aborts the chain. Anything that is
// not a typed client error is logged and reported as INTERNAL_ERROR.
func Error(c *gin.Context, err error) {
	ae, ok := apperror.As(err)
	if !ok || Status(ae.Code) == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		ae = apperror.Internal(err)
	}

	details := ae.Details
	if details == nil {
		details = []apperror.Detail{}
	}
	c.AbortWithStatusJSON(Status(ae.Code), Envelope{
		OK: false,
		Error: &ErrorBody{
			Code:    ae.Code,
			Message: ae.Message,
			Details: details,
		},
	})
}
