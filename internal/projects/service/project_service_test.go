package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/auth"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/query"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/repository"
)

var (
	tech1 = auth.Caller{ID: "t1", Role: auth.RoleTechnician}
	tech2 = auth.Caller{ID: "t2", Role: auth.RoleTechnician}
	admin = auth.Caller{ID: "a1", Role: auth.RoleAdmin}
)

func newService() *ProjectService {
	return NewProjectService(repository.NewMemoryStore())
}

func mustCreate(t *testing.T, s *ProjectService, caller auth.Caller, title, client string) domain.Project {
	t.Helper()
	p, err := s.Create(context.Background(), caller, domain.NewProject{Title: title, ClientName: client})
	require.NoError(t, err)
	return p
}

func requireCode(t *testing.T, err error, code apperror.Code) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.Is(err, code), "want %s, got %v", code, err)
}

func TestProjectService_Create(t *testing.T) {
	s := newService()
	ctx := context.Background()

	t.Run("forces owner and defaults status", func(t *testing.T) {
		p, err := s.Create(ctx, tech1, domain.NewProject{Title: "  Install panels  ", ClientName: "Acme Co"})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Install panels", p.Title)
		assert.Equal(t, "t1", p.CreatedByUserID)
		assert.Equal(t, domain.StatusDraft, p.Status)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("keeps supplied status", func(t *testing.T) {
		p, err := s.Create(ctx, admin, domain.NewProject{Title: "Repair", ClientName: "Acme Co", Status: domain.StatusInProgress})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, p.Status)
	})

	t.Run("requires title and client name", func(t *testing.T) {
		_, err := s.Create(ctx, tech1, domain.NewProject{Title: " ", ClientName: ""})
		requireCode(t, err, apperror.CodeValidation)
		ae, _ := apperror.As(err)
		assert.Len(t, ae.Details, 2)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := s.Create(ctx, tech1, domain.NewProject{Title: "Install", ClientName: "Acme", Status: "ARCHIVED"})
		requireCode(t, err, apperror.CodeValidation)
	})
}

func TestProjectService_TechnicianCannotSeeOthers(t *testing.T) {
	s := newService()
	ctx := context.Background()

	theirs := mustCreate(t, s, tech2, "Inverter swap", "Bolt Ltd")
	adminOwned := mustCreate(t, s, admin, "Repair Acme", "Acme Co")

	for _, p := range []domain.Project{theirs, adminOwned} {
		_, err := s.GetByID(ctx, tech1, p.ID)
		requireCode(t, err, apperror.CodeNotFound)

		_, err = s.Update(ctx, tech1, p.ID, domain.ProjectPatch{Title: domain.Value("Hijacked")})
		requireCode(t, err, apperror.CodeNotFound)

		_, err = s.Delete(ctx, tech1, p.ID)
		requireCode(t, err, apperror.CodeNotFound)
	}

	got, err := s.GetByID(ctx, admin, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inverter swap", got.Title, "admin sees every owner's records")
}

func TestProjectService_ListScoping(t *testing.T) {
	s := newService()
	ctx := context.Background()

	mustCreate(t, s, tech1, "Install east roof", "Acme Co")
	mustCreate(t, s, tech1, "Install west roof", "Acme Co")
	mustCreate(t, s, tech2, "Battery retrofit", "Bolt Ltd")
	mustCreate(t, s, admin, "Site survey", "Cobalt")

	res, err := s.List(ctx, tech1, query.Raw{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Meta.Total)
	for _, p := range res.Items {
		assert.Equal(t, "t1", p.CreatedByUserID)
	}

	res, err = s.List(ctx, admin, query.Raw{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Meta.Total)
	owners := map[string]bool{}
	for _, p := range res.Items {
		owners[p.CreatedByUserID] = true
	}
	assert.Equal(t, map[string]bool{"t1": true, "t2": true, "a1": true}, owners)
}

func TestProjectService_ListMeta(t *testing.T) {
	ctx := context.Background()

	t.Run("empty result has zero pages", func(t *testing.T) {
		res, err := newService().List(ctx, tech1, query.Raw{})
		require.NoError(t, err)
		assert.Equal(t, Meta{Total: 0, Page: 1, Limit: 10, Pages: 0}, res.Meta)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("single record is one page", func(t *testing.T) {
		s := newService()
		mustCreate(t, s, tech1, "Install", "Acme Co")

		res, err := s.List(ctx, tech1, query.Raw{Limit: "10"})
		require.NoError(t, err)
		assert.Equal(t, Meta{Total: 1, Page: 1, Limit: 10, Pages: 1}, res.Meta)
	})

	t.Run("pages round up and far pages are empty", func(t *testing.T) {
		s := newService()
		for i := 0; i < 7; i++ {
			mustCreate(t, s, admin, "Job", "Acme Co")
		}

		res, err := s.List(ctx, admin, query.Raw{Limit: "3", Page: "3"})
		require.NoError(t, err)
		assert.Equal(t, Meta{Total: 7, Page: 3, Limit: 3, Pages: 3}, res.Meta)
		assert.Len(t, res.Items, 1)

		res, err = s.List(ctx, admin, query.Raw{Limit: "3", Page: "40"})
		require.NoError(t, err)
		assert.Equal(t, 40, res.Meta.Page, "page is not clamped")
		assert.Empty(t, res.Items)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := newService().List(ctx, admin, query.Raw{Status: "PAUSED"})
		requireCode(t, err, apperror.CodeValidation)
	})
}

func TestProjectService_ListFilters(t *testing.T) {
	s := newService()
	ctx := context.Background()

	done := mustCreate(t, s, admin, "Commission array", "Dune Farms")
	_, err := s.Update(ctx, admin, done.ID, domain.ProjectPatch{Status: domain.Value(domain.StatusDone)})
	require.NoError(t, err)

	addr := "400 Harbor Way"
	_, err = s.Create(ctx, admin, domain.NewProject{Title: "Panel cleaning", ClientName: "Echo", Address: &addr})
	require.NoError(t, err)

	res, err := s.List(ctx, admin, query.Raw{Status: "DONE"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, done.ID, res.Items[0].ID)

	res, err = s.List(ctx, admin, query.Raw{Search: "harbor"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Panel cleaning", res.Items[0].Title)

	res, err = s.List(ctx, admin, query.Raw{Search: "dune", Status: "DRAFT"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestProjectService_UnknownSortEqualsDefault(t *testing.T) {
	s := newService()
	ctx := context.Background()
	for _, title := range []string{"Charlie", "Alpha", "Bravo"} {
		mustCreate(t, s, admin, title, "Acme Co")
	}

	unknown, err := s.List(ctx, admin, query.Raw{SortBy: "unknownField"})
	require.NoError(t, err)
	absent, err := s.List(ctx, admin, query.Raw{})
	require.NoError(t, err)
	assert.Equal(t, absent.Items, unknown.Items)

	byTitle, err := s.List(ctx, admin, query.Raw{SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", byTitle.Items[0].Title)
	assert.Equal(t, "Charlie", byTitle.Items[2].Title)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty payload is a validation error regardless of state", func(t *testing.T) {
		s := newService()
		p := mustCreate(t, s, tech1, "Install", "Acme Co")

		_, err := s.Update(ctx, tech1, p.ID, domain.ProjectPatch{})
		requireCode(t, err, apperror.CodeValidation)

		_, err = s.Update(ctx, tech2, p.ID, domain.ProjectPatch{})
		requireCode(t, err, apperror.CodeValidation)

		_, err = s.Update(ctx, admin, uuid.NewString(), domain.ProjectPatch{})
		requireCode(t, err, apperror.CodeValidation)

		_, err = s.Update(ctx, admin, p.ID, domain.ProjectPatch{IsDeleted: domain.Value(true)})
		requireCode(t, err, apperror.CodeValidation)
	})

	t.Run("partial update with null clear", func(t *testing.T) {
		s := newService()
		phone, addr := "555-0101", "12 Sunny Rd"
		p, err := s.Create(ctx, tech1, domain.NewProject{Title: "Install", ClientName: "Acme Co", Phone: &phone, Address: &addr})
		require.NoError(t, err)

		when := time.Date(2026, 11, 2, 8, 30, 0, 0, time.UTC)
		got, err := s.Update(ctx, tech1, p.ID, domain.ProjectPatch{
			Title:       domain.Value("Install panels"),
			Phone:       domain.Null[string](),
			ScheduledAt: domain.Value(when),
		})
		require.NoError(t, err)

		assert.Equal(t, "Install panels", got.Title)
		assert.Nil(t, got.Phone)
		require.NotNil(t, got.Address)
		assert.Equal(t, "12 Sunny Rd", *got.Address)
		require.NotNil(t, got.ScheduledAt)
		assert.True(t, when.Equal(*got.ScheduledAt))
		assert.Equal(t, p.CreatedByUserID, got.CreatedByUserID)
		assert.Equal(t, p.CreatedAt, got.CreatedAt)
		assert.True(t, got.UpdatedAt.After(p.UpdatedAt))
	})

	t.Run("admin may update any record", func(t *testing.T) {
		s := newService()
		p := mustCreate(t, s, tech1, "Install", "Acme Co")

		got, err := s.Update(ctx, admin, p.ID, domain.ProjectPatch{Status: domain.Value(domain.StatusCanceled)})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCanceled, got.Status)
		assert.Equal(t, "t1", got.CreatedByUserID)
	})

	t.Run("invalid status in patch", func(t *testing.T) {
		s := newService()
		p := mustCreate(t, s, tech1, "Install", "Acme Co")
		_, err := s.Update(ctx, tech1, p.ID, domain.ProjectPatch{Status: domain.Value(domain.Status("LATE"))})
		requireCode(t, err, apperror.CodeValidation)
	})
}

func TestProjectService_Delete(t *testing.T) {
	s := newService()
	ctx := context.Background()
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	p := mustCreate(t, s, tech1, "Install", "Acme Co")

	deleted, err := s.Delete(ctx, tech1, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	require.NotNil(t, deleted.DeletedAt)
	assert.Equal(t, fixed, *deleted.DeletedAt)

	_, err = s.GetByID(ctx, tech1, p.ID)
	requireCode(t, err, apperror.CodeNotFound)

	_, err = s.GetByID(ctx, admin, p.ID)
	requireCode(t, err, apperror.CodeNotFound)

	_, err = s.Delete(ctx, tech1, p.ID)
	requireCode(t, err, apperror.CodeNotFound)

	_, err = s.Update(ctx, admin, p.ID, domain.ProjectPatch{Title: domain.Value("Revive")})
	requireCode(t, err, apperror.CodeNotFound)

	res, err := s.List(ctx, admin, query.Raw{})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestProjectService_MalformedIDIsNotFound(t *testing.T) {
	s := newService()
	_, err := s.GetByID(context.Background(), admin, "not-a-uuid")
	requireCode(t, err, apperror.CodeNotFound)
}

func TestProjectService_AcmeScenario(t *testing.T) {
	s := newService()
	ctx := context.Background()

	p1 := mustCreate(t, s, tech1, "Install panels Acme", "Acme Co")
	p2 := mustCreate(t, s, admin, "Repair Acme", "Acme Co")

	res, err := s.List(ctx, tech1, query.Raw{Search: "Acme"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, p1.ID, res.Items[0].ID)

	_, err = s.GetByID(ctx, tech1, p2.ID)
	requireCode(t, err, apperror.CodeNotFound)

	_, err = s.Delete(ctx, tech1, p1.ID)
	require.NoError(t, err)

	_, err = s.GetByID(ctx, tech1, p1.ID)
	requireCode(t, err, apperror.CodeNotFound)
}

type failingStore struct{ err error }

func (f failingStore) Create(context.Context, domain.Project) (domain.Project, error) {
	return domain.Project{}, f.err
}

func (f failingStore) FindOne(context.Context, domain.Filter) (domain.Project, bool, error) {
	return domain.Project{}, false, f.err
}

func (f failingStore) List(context.Context, domain.Filter, domain.Sort, int, int) (int64, []domain.Project, error) {
	return 0, nil, f.err
}

func (f failingStore) Update(context.Context, string, domain.ProjectPatch) (domain.Project, error) {
	return domain.Project{}, f.err
}

func TestProjectService_StoreFailuresPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	s := NewProjectService(failingStore{err: boom})
	ctx := context.Background()

	_, err := s.Create(ctx, tech1, domain.NewProject{Title: "Install", ClientName: "Acme"})
	assert.ErrorIs(t, err, boom)

	_, err = s.List(ctx, tech1, query.Raw{})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetByID(ctx, tech1, uuid.NewString())
	assert.ErrorIs(t, err, boom)
	_, isTyped := apperror.As(err)
	assert.False(t, isTyped)
}
