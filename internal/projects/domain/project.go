package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when an id does not resolve to a row.
var ErrNotFound = errors.New("project not found")

// Status is the lifecycle state of a project.
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusCanceled   Status = "CANCELED"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusInProgress, StatusDone, StatusCanceled}
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// Project is a solar-installation service job.
// It is storage-agnostic and shared by the store, service and HTTP layers.
type Project struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ClientName      string     `json:"clientName"`
	ClientEmail     *string    `json:"clientEmail"`
	Phone           *string    `json:"phone"`
	Address         *string    `json:"address"`
	Description     *string    `json:"description"`
	Status          Status     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	CreatedByUserID string     `json:"createdByUserId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	IsDeleted       bool       `json:"isDeleted"`
	DeletedAt       *time.Time `json:"deletedAt"`
}

// NewProject holds the caller-supplied fields of a create request.
// An empty Status means DRAFT.
type NewProject struct {
	Title       string
	ClientName  string
	ClientEmail *string
	Phone       *string
	Address     *string
	Description *string
	Status      Status
	ScheduledAt *time.Time
}
