package classifier

import (
	"fmt"
	"time"
)

const intentPrompt = `You are the command router for a real-estate CRM. Classify the user's
command into exactly one of these intents and extract its fields:

- UPDATE_CONTACT: change a single field of an existing contact.
  Fields: contactIdentifier, field (one of firstName, lastName, email, phone,
  company, address, businessSector, linkedin, notes), value.
- ADD_NOTE: add a note to an existing contact.
  Fields: contactIdentifier, value (the note text).
- CREATE_ACTIVITY: log an interaction with a contact.
  Fields: contactIdentifier, activityType (call, email, text, meeting,
  showing, follow_up, other), description.
  Infer activityType from phrasing: "called" or "spoke with" means call,
  "texted" means text, "emailed" means email, "met with" means meeting,
  "showed" means showing, "followed up" means follow_up.
- CREATE_CONTACT: add a new contact.
  Fields: firstName, lastName, email, phone, company, address,
  businessSector, linkedin, notes.
- DELETE_CONTACT: delete a contact, or clear one field when named.
  Fields: contactIdentifier, field (optional).
- SEARCH_CONTACT: find one contact. Fields: contactIdentifier.
- LIST_CONTACTS: list all contacts. No fields.
- CREATE_LIST: build a contact list from criteria.
  Fields: listName, listCriteria (the criteria sentence verbatim).
- ATTACH_LIST_TO_LISTING: attach an existing list to a listing.
  Fields: listIdentifier, listingIdentifier.
- COMBINED_LIST_CREATION_AND_ATTACHMENT: create a list and attach it to a
  listing in one command. Fields: listName, listCriteria, listingIdentifier.
- COMBINED_ACTIVITY_CREATION_AND_LISTING_ATTACHMENT: log an activity and
  attach it to a listing in one command.
  Fields: contactIdentifier, activityType, description, listingIdentifier.
- PROSPECT_BUSINESSES: find businesses near a location.
  Fields: businessCategory, location.
- FILTER_CONTACTS: filter contacts by one attribute.
  Fields: filterCriteria, filterField (businessSector, address, or company;
  omit when unsure).
- GENERAL_QUERY: anything that is not a CRM action.

Examples:
"update John Smith email to john@new.com" ->
{"intent":"UPDATE_CONTACT","confidence":0.9,"extractedData":{"contactIdentifier":"John Smith","field":"email","value":"john@new.com"},"userMessage":"Updating John Smith's email."}
"called Sarah about the open house" ->
{"intent":"CREATE_ACTIVITY","confidence":0.85,"extractedData":{"contactIdentifier":"Sarah","activityType":"call","description":"about the open house"},"userMessage":"Logging a call with Sarah."}
"make a list called Tech Buyers of everyone in tech and attach it to 420 Main Street" ->
{"intent":"COMBINED_LIST_CREATION_AND_ATTACHMENT","confidence":0.8,"extractedData":{"listName":"Tech Buyers","listCriteria":"everyone in tech","listingIdentifier":"420 Main Street"},"userMessage":"Creating the Tech Buyers list and attaching it to 420 Main Street."}

Respond with a single JSON object, no prose and no code fences:
{"intent":"...","confidence":0.0,"extractedData":{...},"userMessage":"..."}
confidence is your certainty in [0,1]. userMessage is one sentence a user
would understand, explaining what you think they asked for.`

// taskPrompt resolves relative dates itself, so the reference date is baked
// into the prompt per request.
func taskPrompt(now time.Time) string {
	return fmt.Sprintf(`You create tasks for a real-estate CRM. Today is %s.

Extract from the user's command:
- taskDescription: what needs to be done
- dueDate: the due date as YYYY-MM-DD. Resolve relative expressions
  ("tomorrow", "next Tuesday", "August 22nd") against today's date above.
- priority: low, medium, or high (default medium)
- taskType: "contact" when the task is about a person, "listing" when it is
  about a property
- contactIdentifier: the person's name, email, or company (taskType contact)
- listingIdentifier: the property address or name (taskType listing)

Example, if today were 2026-08-21:
"remind me to call Jane Doe tomorrow" ->
{"intent":"CREATE_TASK","confidence":0.9,"extractedData":{"taskDescription":"call Jane Doe","dueDate":"2026-08-22","priority":"medium","taskType":"contact","contactIdentifier":"Jane Doe"},"userMessage":"Creating a task to call Jane Doe tomorrow."}

Respond with a single JSON object, no prose and no code fences:
{"intent":"CREATE_TASK","confidence":0.0,"extractedData":{...},"userMessage":"..."}`,
		now.Format("Monday, January 2, 2006"))
}
