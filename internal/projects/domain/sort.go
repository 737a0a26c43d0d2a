package domain

// SortField is a whitelisted, sortable project attribute.
type SortField string

const (
	SortCreatedAt   SortField = "createdAt"
	SortUpdatedAt   SortField = "updatedAt"
	SortTitle       SortField = "title"
	SortStatus      SortField = "status"
	SortScheduledAt SortField = "scheduledAt"
	SortClientName  SortField = "clientName"
)

// ParseSortField returns the field named s if it is whitelisted.
func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(s); f {
	case SortCreatedAt, SortUpdatedAt, SortTitle, SortStatus, SortScheduledAt, SortClientName:
		return f, true
	}
	return "", false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is newest first.
var DefaultSort = Sort{Field: SortCreatedAt, Order: SortDesc}
