package listing

import (
	"strings"
	"time"
)

// Listing represents a property listing. The four name fields are redundant
// display-name candidates populated inconsistently by upstream imports, which
// is why DisplayName applies a fixed fallback chain.
type Listing struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	Address        string    `json:"address,omitempty"`
	StreetAddress  string    `json:"streetAddress,omitempty"`
	Title          string    `json:"title,omitempty"`
	ContactListIDs []string  `json:"contactListIds,omitempty"`
	ActivityIDs    []string  `json:"activityIds,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DisplayName computes the listing's display name: name, then address, then
// streetAddress, then title, skipping blank or whitespace-only values. When
// nothing is set it synthesizes "Listing " plus the last 6 characters of the
// id, so the result is never blank.
func (l *Listing) DisplayName() string {
	for _, candidate := range []string{l.Name, l.Address, l.StreetAddress, l.Title} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	suffix := l.ID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "Listing " + suffix
}

// HasContactList reports whether the list id is already attached.
func (l *Listing) HasContactList(id string) bool {
	for _, existing := range l.ContactListIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// HasActivity reports whether the activity id is already attached.
func (l *Listing) HasActivity(id string) bool {
	for _, existing := range l.ActivityIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// MatchFields returns the identifying fields in resolution priority order.
func (l *Listing) MatchFields() []string {
	return []string{l.StreetAddress, l.Address, l.Name, l.Title}
}
