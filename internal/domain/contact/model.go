package contact

import "time"

// Contact represents a person or company record in the CRM. Every field
// except ID is optional; the store does not enforce uniqueness on any of
// them. Email is the most reliable key for resolution when present.
type Contact struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Company        string    `json:"company,omitempty"`
	Address        string    `json:"address,omitempty"`
	BusinessSector string    `json:"businessSector,omitempty"`
	LinkedIn       string    `json:"linkedin,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DisplayName returns the contact's human-readable name for messages and
// audit entries.
func (c *Contact) DisplayName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	case c.LastName != "":
		return c.LastName
	case c.Company != "":
		return c.Company
	case c.Email != "":
		return c.Email
	}
	return c.ID
}

// FieldValue returns the value of a named updatable field.
func (c *Contact) FieldValue(field string) string {
	switch field {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	case FieldCompany:
		return c.Company
	case FieldAddress:
		return c.Address
	case FieldBusinessSector:
		return c.BusinessSector
	case FieldLinkedIn:
		return c.LinkedIn
	case FieldNotes:
		return c.Notes
	}
	return ""
}

// SetField assigns the value of a named updatable field. Returns false for
// unknown field names.
func (c *Contact) SetField(field, value string) bool {
	switch field {
	case FieldFirstName:
		c.FirstName = value
	case FieldLastName:
		c.LastName = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	case FieldCompany:
		c.Company = value
	case FieldAddress:
		c.Address = value
	case FieldBusinessSector:
		c.BusinessSector = value
	case FieldLinkedIn:
		c.LinkedIn = value
	case FieldNotes:
		c.Notes = value
	default:
		return false
	}
	return true
}
