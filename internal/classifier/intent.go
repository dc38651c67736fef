package classifier

// Intent is the closed-set classification label assigned to a free-text
// command.
type Intent string

const (
	IntentUpdateContact            Intent = "UPDATE_CONTACT"
	IntentAddNote                  Intent = "ADD_NOTE"
	IntentCreateActivity           Intent = "CREATE_ACTIVITY"
	IntentCreateContact            Intent = "CREATE_CONTACT"
	IntentDeleteContact            Intent = "DELETE_CONTACT"
	IntentSearchContact            Intent = "SEARCH_CONTACT"
	IntentListContacts             Intent = "LIST_CONTACTS"
	IntentCreateList               Intent = "CREATE_LIST"
	IntentAttachListToListing      Intent = "ATTACH_LIST_TO_LISTING"
	IntentCombinedListCreation     Intent = "COMBINED_LIST_CREATION_AND_ATTACHMENT"
	IntentCombinedActivityCreation Intent = "COMBINED_ACTIVITY_CREATION_AND_LISTING_ATTACHMENT"
	IntentProspectBusinesses       Intent = "PROSPECT_BUSINESSES"
	IntentFilterContacts           Intent = "FILTER_CONTACTS"
	IntentGeneralQuery             Intent = "GENERAL_QUERY"
	IntentCreateTask               Intent = "CREATE_TASK"
)

var knownIntents = map[Intent]struct{}{
	IntentUpdateContact:            {},
	IntentAddNote:                  {},
	IntentCreateActivity:           {},
	IntentCreateContact:            {},
	IntentDeleteContact:            {},
	IntentSearchContact:            {},
	IntentListContacts:             {},
	IntentCreateList:               {},
	IntentAttachListToListing:      {},
	IntentCombinedListCreation:     {},
	IntentCombinedActivityCreation: {},
	IntentProspectBusinesses:       {},
	IntentFilterContacts:           {},
	IntentGeneralQuery:             {},
	IntentCreateTask:               {},
}

// Known reports whether the intent tag is in the catalogue.
func (i Intent) Known() bool {
	_, ok := knownIntents[i]
	return ok
}

// MinConfidence returns the acceptance threshold for the intent.
// UPDATE_CONTACT and ADD_NOTE use a lower bar because those two commands are
// phrased in the most variable natural language; the tradeoff is more false
// positives on the two most common commands instead of false negatives.
func (i Intent) MinConfidence() float64 {
	switch i {
	case IntentUpdateContact, IntentAddNote:
		return 0.2
	}
	return 0.3
}
