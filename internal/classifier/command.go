package classifier

// Command is the typed form of a classified command. The untyped extracted
// field bag never crosses the classifier boundary; each intent has a struct
// built by a validating parse immediately after the JSON is received.
type Command interface {
	Intent() Intent
}

// UpdateContact overwrites a single contact field.
type UpdateContact struct {
	ContactIdentifier string
	Field             string
	Value             string
}

func (UpdateContact) Intent() Intent { return IntentUpdateContact }

// AddNote appends a note to a contact.
type AddNote struct {
	ContactIdentifier string
	Value             string
}

func (AddNote) Intent() Intent { return IntentAddNote }

// CreateActivity logs an interaction against a contact.
type CreateActivity struct {
	ContactIdentifier string
	ActivityType      string
	Description       string
}

func (CreateActivity) Intent() Intent { return IntentCreateActivity }

// CreateContact creates a new contact record.
type CreateContact struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Company        string
	Address        string
	BusinessSector string
	LinkedIn       string
	Notes          string
}

func (CreateContact) Intent() Intent { return IntentCreateContact }

// DeleteContact deletes a contact, or clears one of its fields when Field is
// set.
type DeleteContact struct {
	ContactIdentifier string
	Field             string
}

func (DeleteContact) Intent() Intent { return IntentDeleteContact }

// SearchContact looks up a single contact.
type SearchContact struct {
	ContactIdentifier string
}

func (SearchContact) Intent() Intent { return IntentSearchContact }

// ListContacts returns every contact.
type ListContacts struct{}

func (ListContacts) Intent() Intent { return IntentListContacts }

// CreateList materializes a contact list from free-text criteria.
type CreateList struct {
	ListName     string
	ListCriteria string
	Description  string
}

func (CreateList) Intent() Intent { return IntentCreateList }

// AttachListToListing attaches an existing list to a listing.
type AttachListToListing struct {
	ListIdentifier    string
	ListingIdentifier string
}

func (AttachListToListing) Intent() Intent { return IntentAttachListToListing }

// CombinedListCreation creates a list and attaches it to a listing in one
// command.
type CombinedListCreation struct {
	ListName          string
	ListCriteria      string
	ListingIdentifier string
}

func (CombinedListCreation) Intent() Intent { return IntentCombinedListCreation }

// CombinedActivityCreation logs an activity and attaches it to a listing in
// one command.
type CombinedActivityCreation struct {
	ContactIdentifier string
	ActivityType      string
	Description       string
	ListingIdentifier string
}

func (CombinedActivityCreation) Intent() Intent { return IntentCombinedActivityCreation }

// ProspectBusinesses searches for businesses near a location.
type ProspectBusinesses struct {
	BusinessCategory string
	Location         string
}

func (ProspectBusinesses) Intent() Intent { return IntentProspectBusinesses }

// FilterContacts filters contacts by a single dynamic field.
type FilterContacts struct {
	FilterCriteria string
	FilterField    string
}

func (FilterContacts) Intent() Intent { return IntentFilterContacts }

// GeneralQuery is anything that isn't a CRM action.
type GeneralQuery struct {
	UserMessage string
}

func (GeneralQuery) Intent() Intent { return IntentGeneralQuery }

// CreateTask creates a dated task against a contact or a listing. DueDate is
// already an ISO date; the task classifier resolves relative expressions.
type CreateTask struct {
	Title             string
	Description       string
	DueDate           string
	Priority          string
	TaskType          string
	ContactIdentifier string
	ListingIdentifier string
}

func (CreateTask) Intent() Intent { return IntentCreateTask }

// buildCommand converts a validated classification into its typed command,
// enforcing the per-intent required fields.
func buildCommand(intent Intent, data map[string]string, userMessage string) (Command, error) {
	pick := func(keys ...string) string {
		for _, key := range keys {
			if v := data[key]; v != "" {
				return v
			}
		}
		return ""
	}
	require := func(field string, keys ...string) (string, error) {
		if v := pick(keys...); v != "" {
			return v, nil
		}
		return "", &MissingFieldError{Intent: intent, Field: field}
	}

	switch intent {
	case IntentUpdateContact:
		identifier, err := require("contactIdentifier", "contactIdentifier")
		if err != nil {
			return nil, err
		}
		field, err := require("field", "field")
		if err != nil {
			return nil, err
		}
		value, err := require("value", "value")
		if err != nil {
			return nil, err
		}
		return UpdateContact{ContactIdentifier: identifier, Field: field, Value: value}, nil

	case IntentAddNote:
		identifier, err := require("contactIdentifier", "contactIdentifier")
		if err != nil {
			return nil, err
		}
		value, err := require("value", "value", "note")
		if err != nil {
			return nil, err
		}
		return AddNote{ContactIdentifier: identifier, Value: value}, nil

	case IntentCreateActivity:
		identifier, err := require("contactIdentifier", "contactIdentifier", "contactName")
		if err != nil {
			return nil, err
		}
		activityType, err := require("activityType", "activityType")
		if err != nil {
			return nil, err
		}
		return CreateActivity{
			ContactIdentifier: identifier,
			ActivityType:      activityType,
			Description:       pick("description"),
		}, nil

	case IntentCreateContact:
		firstName, err := require("firstName", "firstName")
		if err != nil {
			return nil, err
		}
		return CreateContact{
			FirstName:      firstName,
			LastName:       pick("lastName"),
			Email:          pick("email"),
			Phone:          pick("phone"),
			Company:        pick("company"),
			Address:        pick("address"),
			BusinessSector: pick("businessSector"),
			LinkedIn:       pick("linkedin"),
			Notes:          pick("notes"),
		}, nil

	case IntentDeleteContact:
		identifier, err := require("contactIdentifier", "contactIdentifier")
		if err != nil {
			return nil, err
		}
		return DeleteContact{ContactIdentifier: identifier, Field: pick("field")}, nil

	case IntentSearchContact:
		identifier, err := require("contactIdentifier", "contactIdentifier")
		if err != nil {
			return nil, err
		}
		return SearchContact{ContactIdentifier: identifier}, nil

	case IntentListContacts:
		return ListContacts{}, nil

	case IntentCreateList:
		name, err := require("listName", "listName")
		if err != nil {
			return nil, err
		}
		criteria, err := require("listCriteria", "listCriteria")
		if err != nil {
			return nil, err
		}
		return CreateList{ListName: name, ListCriteria: criteria, Description: pick("description")}, nil

	case IntentAttachListToListing:
		list, err := require("listIdentifier", "listIdentifier", "listName")
		if err != nil {
			return nil, err
		}
		lst, err := require("listingIdentifier", "listingIdentifier", "listingName")
		if err != nil {
			return nil, err
		}
		return AttachListToListing{ListIdentifier: list, ListingIdentifier: lst}, nil

	case IntentCombinedListCreation:
		name, err := require("listName", "listName")
		if err != nil {
			return nil, err
		}
		criteria, err := require("listCriteria", "listCriteria")
		if err != nil {
			return nil, err
		}
		lst, err := require("listingIdentifier", "listingIdentifier", "listingName")
		if err != nil {
			return nil, err
		}
		return CombinedListCreation{ListName: name, ListCriteria: criteria, ListingIdentifier: lst}, nil

	case IntentCombinedActivityCreation:
		identifier, err := require("contactIdentifier", "contactIdentifier", "contactName")
		if err != nil {
			return nil, err
		}
		activityType, err := require("activityType", "activityType")
		if err != nil {
			return nil, err
		}
		lst, err := require("listingIdentifier", "listingIdentifier", "listingName")
		if err != nil {
			return nil, err
		}
		return CombinedActivityCreation{
			ContactIdentifier: identifier,
			ActivityType:      activityType,
			Description:       pick("description"),
			ListingIdentifier: lst,
		}, nil

	case IntentProspectBusinesses:
		category, err := require("businessCategory", "businessCategory")
		if err != nil {
			return nil, err
		}
		location, err := require("location", "location")
		if err != nil {
			return nil, err
		}
		return ProspectBusinesses{BusinessCategory: category, Location: location}, nil

	case IntentFilterContacts:
		criteria, err := require("filterCriteria", "filterCriteria")
		if err != nil {
			return nil, err
		}
		return FilterContacts{FilterCriteria: criteria, FilterField: pick("filterField")}, nil

	case IntentGeneralQuery:
		return GeneralQuery{UserMessage: userMessage}, nil

	case IntentCreateTask:
		title, err := require("taskDescription", "taskDescription", "title")
		if err != nil {
			return nil, err
		}
		dueDate, err := require("dueDate", "dueDate")
		if err != nil {
			return nil, err
		}
		return CreateTask{
			Title:             title,
			Description:       pick("description"),
			DueDate:           dueDate,
			Priority:          pick("priority"),
			TaskType:          pick("taskType"),
			ContactIdentifier: pick("contactIdentifier", "contactName"),
			ListingIdentifier: pick("listingIdentifier", "listingName"),
		}, nil
	}

	return nil, ErrUnparsable
}
