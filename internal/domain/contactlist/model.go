package contactlist

import "time"

// ContactList is a named snapshot of contact ids. ContactIDs is computed
// once from a criteria query at creation time and never kept in sync with
// later contact changes; no handler mutates membership after creation.
type ContactList struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactIDs  []string  `json:"contactIds"`
	Description string    `json:"description,omitempty"`
	Criteria    string    `json:"criteria,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
