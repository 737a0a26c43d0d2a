package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db"`
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
}

// NewHealthHandler builds the health endpoint. db may be nil when the service
// runs on the in-memory store.
func NewHealthHandler(serviceName, version string, db Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
	}
}

// HealthCheck godoc
// @Summary  Liveness and database status
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Envelope
// @Router   /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	response.OK(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

// NotFound answers unmatched routes with the standard error envelope.
func NotFound(c *gin.Context) {
	response.Error(c, apperror.NotFound("Route not found"))
}
