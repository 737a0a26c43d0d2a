package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
)

// MemoryStore keeps projects in process memory. It backs STORE_DRIVER=memory
// and the service tests. All operations are serialized by one RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  map[string]domain.Project
	order []string
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[string]domain.Project),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Create(_ context.Context, p domain.Project) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, taken := m.rows[id]; !taken {
			break
		}
		id = uuid.NewString()
	}

	now := m.now()
	p.ID = id
	if p.Status == "" {
		p.Status = domain.StatusDraft
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p.IsDeleted = false
	p.DeletedAt = nil

	m.rows[id] = clone(p)
	m.order = append(m.order, id)
	return clone(p), nil
}

func (m *MemoryStore) FindOne(_ context.Context, f domain.Filter) (domain.Project, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if p := m.rows[id]; f.Matches(p) {
			return clone(p), true, nil
		}
	}
	return domain.Project{}, false, nil
}

// List computes total and page under one read lock.
func (m *MemoryStore) List(_ context.Context, f domain.Filter, s domain.Sort, skip, limit int) (int64, []domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]domain.Project, 0)
	for _, id := range m.order {
		if p := m.rows[id]; f.Matches(p) {
			matched = append(matched, p)
		}
	}
	slices.SortStableFunc(matched, func(a, b domain.Project) int {
		return compareProjects(a, b, s)
	})

	total := int64(len(matched))
	if skip >= len(matched) {
		return total, []domain.Project{}, nil
	}
	end := len(matched)
	if limit < end-skip {
		end = skip + limit
	}

	out := make([]domain.Project, 0, end-skip)
	for _, p := range matched[skip:end] {
		out = append(out, clone(p))
	}
	return total, out, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[id]
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}

	patch.ApplyTo(&p)

	now := m.now()
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Microsecond)
	}
	p.UpdatedAt = now

	m.rows[id] = clone(p)
	return clone(p), nil
}

// compareProjects orders like the Postgres store: nulls sort after values in
// ascending order, and id breaks ties ascending regardless of direction.
func compareProjects(a, b domain.Project, s domain.Sort) int {
	var c int
	switch s.Field {
	case domain.SortUpdatedAt:
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	case domain.SortTitle:
		c = cmp.Compare(a.Title, b.Title)
	case domain.SortStatus:
		c = cmp.Compare(a.Status, b.Status)
	case domain.SortClientName:
		c = cmp.Compare(a.ClientName, b.ClientName)
	case domain.SortScheduledAt:
		c = compareNullableTime(a.ScheduledAt, b.ScheduledAt)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if s.Order != domain.SortAsc {
		c = -c
	}
	if c == 0 {
		c = cmp.Compare(a.ID, b.ID)
	}
	return c
}

func compareNullableTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

// clone copies p so callers never share pointer fields with stored rows.
func clone(p domain.Project) domain.Project {
	p.ClientEmail = clonePtr(p.ClientEmail)
	p.Phone = clonePtr(p.Phone)
	p.Address = clonePtr(p.Address)
	p.Description = clonePtr(p.Description)
	p.ScheduledAt = clonePtr(p.ScheduledAt)
	p.DeletedAt = clonePtr(p.DeletedAt)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
