package activity

import (
	"fmt"
	"time"
)

// Type classifies a CRM activity.
type Type string

const (
	TypeCall     Type = "call"
	TypeEmail    Type = "email"
	TypeText     Type = "text"
	TypeMeeting  Type = "meeting"
	TypeShowing  Type = "showing"
	TypeFollowUp Type = "follow_up"
	TypeOther    Type = "other"
)

var validTypes = map[Type]struct{}{
	TypeCall:     {},
	TypeEmail:    {},
	TypeText:     {},
	TypeMeeting:  {},
	TypeShowing:  {},
	TypeFollowUp: {},
	TypeOther:    {},
}

// ParseType validates a raw activity type string.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := validTypes[t]; !ok {
		return "", fmt.Errorf("invalid activity type %q", s)
	}
	return t, nil
}

// Activity is an interaction logged against a contact. ListingID and
// ListingName are set only when the activity is attached to a listing; the
// attachment is a patch applied after creation, not part of the initial
// write.
type Activity struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contactId"`
	Type        Type      `json:"type"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	ListingID   string    `json:"listingId,omitempty"`
	ListingName string    `json:"listingName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
