package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/api/http/response"
)

// Recovery turns a handler panic into a 500 error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, fmt.Errorf("panic: %v", recovered))
	})
}
