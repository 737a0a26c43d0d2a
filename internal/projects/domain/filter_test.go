package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestFilter_And(t *testing.T) {
	scope := Filter{ActiveOnly: true, OwnerID: "t1"}

	t.Run("merges disjoint constraints", func(t *testing.T) {
		got := scope.And(Filter{Status: StatusDone, Search: []string{"acme"}})
		assert.True(t, got.ActiveOnly)
		assert.Equal(t, "t1", got.OwnerID)
		assert.Equal(t, StatusDone, got.Status)
		assert.Equal(t, []string{"acme"}, got.Search)
		assert.False(t, got.MatchNone())
	})

	t.Run("equal constraints are kept", func(t *testing.T) {
		got := scope.And(Filter{OwnerID: "t1"})
		assert.Equal(t, "t1", got.OwnerID)
		assert.False(t, got.MatchNone())
	})

	t.Run("conflicting owner matches nothing", func(t *testing.T) {
		got := scope.And(Filter{OwnerID: "t2"})
		assert.True(t, got.MatchNone())
		assert.False(t, got.Matches(Project{CreatedByUserID: "t1"}))
		assert.False(t, got.Matches(Project{CreatedByUserID: "t2"}))
	})

	t.Run("empty stays sticky", func(t *testing.T) {
		got := Filter{ID: "a"}.And(Filter{ID: "b"}).And(Filter{})
		assert.True(t, got.MatchNone())
	})
}

func TestFilter_Matches(t *testing.T) {
	p := Project{
		ID:              "p1",
		Title:           "Install panels Acme",
		ClientName:      "Acme Co",
		Address:         strPtr("12 Sunny Rd"),
		Status:          StatusDraft,
		CreatedByUserID: "t1",
	}

	assert.True(t, Filter{}.Matches(p))
	assert.True(t, Filter{ActiveOnly: true, OwnerID: "t1"}.Matches(p))
	assert.False(t, Filter{OwnerID: "t2"}.Matches(p))
	assert.False(t, Filter{ID: "p2"}.Matches(p))
	assert.False(t, Filter{Status: StatusDone}.Matches(p))

	assert.True(t, Filter{Search: []string{"PANELS"}}.Matches(p), "title, case-insensitive")
	assert.True(t, Filter{Search: []string{"acme co"}}.Matches(p), "client name")
	assert.True(t, Filter{Search: []string{"sunny"}}.Matches(p), "address")
	assert.False(t, Filter{Search: []string{"battery"}}.Matches(p))
	assert.False(t, Filter{Search: []string{"acme", "battery"}}.Matches(p), "every term must match")

	deleted := p
	deleted.IsDeleted = true
	assert.False(t, Filter{ActiveOnly: true}.Matches(deleted))
	assert.True(t, Filter{}.Matches(deleted))

	noAddress := p
	noAddress.Address = nil
	assert.False(t, Filter{Search: []string{"sunny"}}.Matches(noAddress))
}
