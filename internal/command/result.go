package command

import (
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
	"github.com/openhouse-crm/openhouse/internal/domain/task"
)

// Result is the uniform outcome every handler returns. Success=false with an
// Error set is a domain-level failure (entity not found, validation, partial
// workflow failure) and is still an HTTP 200 at the transport; infrastructure
// failures travel as Go errors instead.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`

	ContactID  string                    `json:"contactId,omitempty"`
	Contact    *contact.Contact          `json:"contact,omitempty"`
	Contacts   []contact.Contact         `json:"contacts,omitempty"`
	ListingID  string                    `json:"listingId,omitempty"`
	Listing    *listing.Listing          `json:"listing,omitempty"`
	ActivityID string                    `json:"activityId,omitempty"`
	ListID     string                    `json:"listId,omitempty"`
	List       *contactlist.ContactList  `json:"list,omitempty"`
	TaskID     string                    `json:"taskId,omitempty"`
	Task       *task.Task                `json:"task,omitempty"`
	Businesses []prospect.Business       `json:"businesses,omitempty"`
	Count      int                       `json:"count,omitempty"`
}

// suggestion texts reused across handlers
const (
	contactSuggestion = "Try the contact's email address, full name, or company name."
	listingSuggestion = "Try the listing's street address or name."
	listSuggestion    = "Try the exact name the list was created with."
)

func failure(errMsg, suggestion string) Result {
	return Result{Success: false, Error: errMsg, Suggestion: suggestion}
}
