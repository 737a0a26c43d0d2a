// Package query turns untrusted list parameters into bounded values.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Raw holds list parameters exactly as received.
type Raw struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
	Status    string
	Search    string
}

// Params are normalized list parameters.
type Params struct {
	Page   int
	Limit  int
	Skip   int
	Sort   domain.Sort
	Status domain.Status
	Search string
}

// Normalize clamps and defaults every parameter. Only an unknown status is an error.
func Normalize(raw Raw) (Params, error) {
	status, err := parseStatus(raw.Status)
	if err != nil {
		return Params{}, err
	}

	page := parsePage(raw.Page)
	limit := parseLimit(raw.Limit)

	return Params{
		Page:   page,
		Limit:  limit,
		Skip:   skip(page, limit),
		Sort:   parseSort(raw.SortBy, raw.SortOrder),
		Status: status,
		Search: strings.TrimSpace(raw.Search),
	}, nil
}

// Filter returns the status and search part of the predicate.
func (p Params) Filter() domain.Filter {
	f := domain.Filter{Status: p.Status}
	if p.Search != "" {
		f.Search = []string{p.Search}
	}
	return f
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

// parseLimit treats absent, malformed and zero as the default; negative values
// clamp up to 1 and large ones down to MaxLimit.
func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return DefaultLimit
	}
	return min(MaxLimit, max(1, n))
}

// skip saturates rather than overflowing for absurd page numbers.
func skip(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func parseSort(by, order string) domain.Sort {
	field, ok := domain.ParseSortField(by)
	if !ok {
		field = domain.SortCreatedAt
	}
	o := domain.SortDesc
	if order == string(domain.SortAsc) {
		o = domain.SortAsc
	}
	return domain.Sort{Field: field, Order: o}
}

func parseStatus(s string) (domain.Status, error) {
	if s == "" {
		return "", nil
	}
	st := domain.Status(s)
	if !st.Valid() {
		return "", apperror.Validation("Invalid status value", apperror.Detail{
			Field:   "status",
			Message: fmt.Sprintf("Allowed: %s", allowedStatuses()),
		})
	}
	return st, nil
}

func allowedStatuses() string {
	all := domain.Statuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
