package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc      *service.ProjectService
	validate *validator.Validate
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc, validate: validator.New(validator.WithRequiredStructEnabled())}
}
