package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func SetGinMode(env string) {
	if env == "production" || env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	// Unknown JSON keys are client errors everywhere gin binds bodies.
	binding.EnableDecoderDisallowUnknownFields = true
}
