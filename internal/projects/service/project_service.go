package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/auth"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/logging"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/query"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/scope"
)

// Store is the persistence the service depends on.
type Store interface {
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	FindOne(ctx context.Context, f domain.Filter) (domain.Project, bool, error)
	List(ctx context.Context, f domain.Filter, s domain.Sort, skip, limit int) (int64, []domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)
}

// Meta describes one page of a list result.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

type ListResult struct {
	Items []domain.Project
	Meta  Meta
}

// ProjectService handles project business logic. Every lookup is scoped to
// the caller, and a record outside that scope is reported as not found.
type ProjectService struct {
	store Store
	now   func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(store Store) *ProjectService {
	return &ProjectService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a project owned by caller.
func (s *ProjectService) Create(ctx context.Context, caller auth.Caller, in domain.NewProject) (domain.Project, error) {
	title := strings.TrimSpace(in.Title)
	clientName := strings.TrimSpace(in.ClientName)

	var details []apperror.Detail
	if title == "" {
		details = append(details, apperror.Detail{Field: "title", Message: "Required"})
	}
	if clientName == "" {
		details = append(details, apperror.Detail{Field: "clientName", Message: "Required"})
	}
	if len(details) > 0 {
		return domain.Project{}, apperror.Validation("Invalid request", details...)
	}

	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.Valid() {
		return domain.Project{}, invalidStatus()
	}

	p, err := s.store.Create(ctx, domain.Project{
		Title:           title,
		ClientName:      clientName,
		ClientEmail:     in.ClientEmail,
		Phone:           in.Phone,
		Address:         in.Address,
		Description:     in.Description,
		Status:          status,
		ScheduledAt:     in.ScheduledAt,
		CreatedByUserID: caller.ID,
	})
	if err != nil {
		return domain.Project{}, s.storeFailure(ctx, "create", err)
	}

	logging.FromContext(ctx).Info("project created", "project_id", p.ID, "owner", caller.ID)
	return p, nil
}

// List returns one page of the caller's visible projects.
func (s *ProjectService) List(ctx context.Context, caller auth.Caller, raw query.Raw) (ListResult, error) {
	params, err := query.Normalize(raw)
	if err != nil {
		return ListResult{}, err
	}

	filter := scope.For(caller).And(params.Filter())
	total, items, err := s.store.List(ctx, filter, params.Sort, params.Skip, params.Limit)
	if err != nil {
		return ListResult{}, s.storeFailure(ctx, "list", err)
	}
	if items == nil {
		items = []domain.Project{}
	}

	return ListResult{
		Items: items,
		Meta: Meta{
			Total: total,
			Page:  params.Page,
			Limit: params.Limit,
			Pages: pageCount(total, params.Limit),
		},
	}, nil
}

// GetByID returns the project if the caller may see it.
func (s *ProjectService) GetByID(ctx context.Context, caller auth.Caller, id string) (domain.Project, error) {
	return s.resolve(ctx, caller, id)
}

// Update applies patch to a visible project. An empty patch is rejected
// before any lookup.
func (s *ProjectService) Update(ctx context.Context, caller auth.Caller, id string, patch domain.ProjectPatch) (domain.Project, error) {
	// Deletion goes through Delete only.
	patch.IsDeleted = domain.Optional[bool]{}
	patch.DeletedAt = domain.Optional[time.Time]{}

	if patch.IsEmpty() {
		return domain.Project{}, apperror.Validation("No fields to update")
	}
	if v, ok := patch.Status.Get(); ok && !v.Valid() {
		return domain.Project{}, invalidStatus()
	}

	existing, err := s.resolve(ctx, caller, id)
	if err != nil {
		return domain.Project{}, err
	}

	p, err := s.store.Update(ctx, existing.ID, patch)
	if err != nil {
		return domain.Project{}, s.storeFailure(ctx, "update", err)
	}
	return p, nil
}

// Delete soft-deletes a visible project and returns it.
func (s *ProjectService) Delete(ctx context.Context, caller auth.Caller, id string) (domain.Project, error) {
	existing, err := s.resolve(ctx, caller, id)
	if err != nil {
		return domain.Project{}, err
	}

	p, err := s.store.Update(ctx, existing.ID, domain.ProjectPatch{
		IsDeleted: domain.Value(true),
		DeletedAt: domain.Value(s.now()),
	})
	if err != nil {
		return domain.Project{}, s.storeFailure(ctx, "delete", err)
	}

	logging.FromContext(ctx).Info("project deleted", "project_id", p.ID, "by", caller.ID)
	return p, nil
}

// resolve finds id under the caller's scope.
func (s *ProjectService) resolve(ctx context.Context, caller auth.Caller, id string) (domain.Project, error) {
	// Ids are UUIDs; anything else cannot exist.
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Project{}, notFound()
	}

	p, ok, err := s.store.FindOne(ctx, scope.For(caller).And(domain.Filter{ID: parsed.String()}))
	if err != nil {
		return domain.Project{}, s.storeFailure(ctx, "find", err)
	}
	if !ok {
		return domain.Project{}, notFound()
	}
	return p, nil
}

func (s *ProjectService) storeFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound()
	}
	logging.FromContext(ctx).Error("project store failed", "operation", op, "error", err)
	return err
}

func pageCount(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

func notFound() error {
	return apperror.NotFound("Project not found")
}

func invalidStatus() error {
	names := make([]string, 0, 4)
	for _, st := range domain.Statuses() {
		names = append(names, string(st))
	}
	return apperror.Validation("Invalid status value", apperror.Detail{
		Field:   "status",
		Message: "Allowed: " + strings.Join(names, ", "),
	})
}
