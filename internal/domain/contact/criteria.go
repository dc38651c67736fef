package contact

import "strings"

// Criteria is a sparse filter over contacts. Exact-match fields are pushed
// down to the store where supported; SearchTerms is always applied as an
// in-memory substring scan because the store has no full-text index.
type Criteria struct {
	BusinessSector string
	Company        string
	HasLinkedIn    *bool
	HasNotes       *bool
	SearchTerms    string
}

// Empty reports whether no filter at all was supplied.
func (cr Criteria) Empty() bool {
	return cr.BusinessSector == "" && cr.Company == "" &&
		cr.HasLinkedIn == nil && cr.HasNotes == nil && cr.SearchTerms == ""
}

// MatchesSearch reports whether the contact contains term (case-insensitive)
// in any of its searchable text fields.
func (c *Contact) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, v := range []string{c.FirstName, c.LastName, c.Email, c.Company, c.BusinessSector, c.Notes} {
		if v != "" && strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// MatchesPresence applies the hasLinkedIn / hasNotes presence filters.
func (c *Contact) MatchesPresence(cr Criteria) bool {
	if cr.HasLinkedIn != nil && (c.LinkedIn != "") != *cr.HasLinkedIn {
		return false
	}
	if cr.HasNotes != nil && (c.Notes != "") != *cr.HasNotes {
		return false
	}
	return true
}
