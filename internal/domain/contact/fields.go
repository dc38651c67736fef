package contact

// Canonical updatable field names. Commands referencing any other field name
// are rejected before the store is touched.
const (
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldCompany        = "company"
	FieldAddress        = "address"
	FieldBusinessSector = "businessSector"
	FieldLinkedIn       = "linkedin"
	FieldNotes          = "notes"
)

var updatableFields = map[string]struct{}{
	FieldFirstName:      {},
	FieldLastName:       {},
	FieldEmail:          {},
	FieldPhone:          {},
	FieldCompany:        {},
	FieldAddress:        {},
	FieldBusinessSector: {},
	FieldLinkedIn:       {},
	FieldNotes:          {},
}

// IsUpdatableField reports whether the given name is one of the known
// Contact fields.
func IsUpdatableField(name string) bool {
	_, ok := updatableFields[name]
	return ok
}

// UpdatableFields returns the known field names in a stable order, for error
// messages.
func UpdatableFields() []string {
	return []string{
		FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldCompany,
		FieldAddress, FieldBusinessSector, FieldLinkedIn, FieldNotes,
	}
}
