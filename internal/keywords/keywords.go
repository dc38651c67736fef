// Package keywords holds the vocabulary tables used to derive search terms
// and filter fields from free-text criteria. The tables are plain data so
// adding a sector or neighborhood is an edit here, not a code change
// elsewhere.
package keywords

import "strings"

// Sectors are the business sector terms recognized in criteria text.
var Sectors = []string{
	"tech",
	"technology",
	"finance",
	"financial",
	"real estate",
	"healthcare",
	"legal",
	"law",
	"construction",
	"retail",
	"hospitality",
	"education",
	"marketing",
	"media",
	"insurance",
	"investor",
	"investment",
}

// Neighborhoods are the location terms recognized in criteria text.
var Neighborhoods = []string{
	"downtown",
	"midtown",
	"uptown",
	"brooklyn",
	"manhattan",
	"queens",
	"bronx",
	"harlem",
	"soho",
	"tribeca",
	"chelsea",
	"williamsburg",
	"astoria",
	"upper east side",
	"upper west side",
	"east village",
	"west village",
	"financial district",
}

// IsSectorTerm reports whether the text contains a known sector term.
func IsSectorTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, sector := range Sectors {
		if strings.Contains(lower, sector) {
			return true
		}
	}
	return false
}

// IsLocationTerm reports whether the text contains a known location term.
func IsLocationTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, hood := range Neighborhoods {
		if strings.Contains(lower, hood) {
			return true
		}
	}
	return false
}

// DeriveSearchTerm reduces a free-text criteria sentence to the single term
// used to match contacts. Checked in order: the explicit high-traffic terms,
// the sector table, a double-quoted phrase, then the last word of the
// sentence.
func DeriveSearchTerm(criteria string) string {
	lower := strings.ToLower(strings.TrimSpace(criteria))
	if lower == "" {
		return ""
	}

	for _, term := range []string{"investor", "tech", "finance"} {
		if strings.Contains(lower, term) {
			return term
		}
	}

	for _, sector := range Sectors {
		if strings.Contains(lower, sector) {
			return sector
		}
	}

	if quoted := quotedPhrase(criteria); quoted != "" {
		return strings.ToLower(quoted)
	}

	words := strings.Fields(lower)
	return words[len(words)-1]
}

// InferFilterField picks the contact field a filter criteria applies to when
// the classifier did not name one.
func InferFilterField(criteria string) string {
	switch {
	case IsSectorTerm(criteria):
		return "businessSector"
	case IsLocationTerm(criteria):
		return "address"
	default:
		return "company"
	}
}

func quotedPhrase(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}
