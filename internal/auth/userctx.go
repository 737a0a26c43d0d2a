package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	CtxCaller = "caller"
)

// RequireCaller trusts the identity headers, rejecting requests without them
// (401) or with an unknown role (403).
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		rawRole := strings.TrimSpace(c.GetHeader(HeaderUserRole))

		if id == "" || rawRole == "" {
			response.Error(c, apperror.Unauthorized("Missing authentication headers",
				apperror.Detail{Field: "x-user-id", Message: "Required"},
				apperror.Detail{Field: "x-user-role", Message: "Required"},
			))
			return
		}

		role, ok := ParseRole(rawRole)
		if !ok {
			response.Error(c, apperror.Forbidden("Invalid role",
				apperror.Detail{Field: "x-user-role", Message: "Allowed: admin, technician"},
			))
			return
		}

		c.Set(CtxCaller, Caller{ID: id, Role: role})
		c.Next()
	}
}

// CallerFrom returns the caller stored by RequireCaller.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(CtxCaller)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}
