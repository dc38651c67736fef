package task

import (
	"errors"
	"fmt"
	"time"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var (
	// ErrMissingTitle indicates a task without a title.
	ErrMissingTitle = errors.New("task title is required")
	// ErrMissingDueDate indicates a task without a due date.
	ErrMissingDueDate = errors.New("task due date is required")
	// ErrAmbiguousTarget indicates both or neither of contactId/listingId set.
	ErrAmbiguousTarget = errors.New("task must reference exactly one of a contact or a listing")
	// ErrNotFound indicates the task doesn't exist.
	ErrNotFound = errors.New("task not found")
)

// Task is a dated to-do attached to exactly one contact or one listing.
// DueDate is an ISO date string (YYYY-MM-DD); the task classifier resolves
// relative date expressions before the handler sees them.
type Task struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	DueDate            string    `json:"dueDate"`
	Priority           Priority  `json:"priority"`
	Status             Status    `json:"status"`
	ContactID          string    `json:"contactId,omitempty"`
	ListingID          string    `json:"listingId,omitempty"`
	ProspectID         string    `json:"prospectId,omitempty"`
	ProspectBusinessID string    `json:"prospectBusinessId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Validate checks the task invariants before it is written.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrMissingTitle
	}
	if t.DueDate == "" {
		return ErrMissingDueDate
	}
	if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
		return fmt.Errorf("due date %q is not YYYY-MM-DD: %w", t.DueDate, err)
	}
	if (t.ContactID == "") == (t.ListingID == "") {
		return ErrAmbiguousTarget
	}
	return nil
}

// ParsePriority maps a raw priority string, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s)
	}
	return PriorityMedium
}
