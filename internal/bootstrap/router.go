package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/GoSim-25-26J-441/solar-projects-backend/docs"
	httpapi "github.com/GoSim-25-26J-441/solar-projects-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/auth"
	projecthttp "github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/web"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Store       service.Store
	// DB is nil when running on the in-memory store.
	DB httpapi.Pinger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	r.GET("/docs", func(c *gin.Context) { c.Redirect(http.StatusFound, "/docs/index.html") })
	r.GET("/docs/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/docs/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api")
	projectsGroup := api.Group("/projects", auth.RequireCaller())
	projecthttp.New(service.NewProjectService(dep.Store)).Register(projectsGroup)

	web.Register(r)
	r.NoRoute(httpapi.NotFound)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", auth.HeaderUserID, auth.HeaderUserRole, middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
