// Package command implements the per-intent handlers behind the
// natural-language command surface.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/llm"
	"github.com/openhouse-crm/openhouse/internal/places"
	"github.com/openhouse-crm/openhouse/internal/repository"
	"github.com/openhouse-crm/openhouse/internal/resolver"
)

// Dispatcher routes a typed command to its handler. Handlers return a Result
// for domain outcomes (including failures the user can act on) and a Go error
// only for infrastructure failures the transport should report as a 500.
type Dispatcher struct {
	contacts  repository.ContactRepository
	listings  repository.ListingRepository
	lists     repository.ContactListRepository
	activity  repository.ActivityRepository
	tasks     repository.TaskRepository
	audits    repository.AuditRepository
	prospects repository.ProspectRepository
	resolver  *resolver.Resolver
	searcher  places.Searcher
	llmClient llm.Client
	llmModel  string
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Deps bundles the dispatcher's collaborators.
type Deps struct {
	Contacts  repository.ContactRepository
	Listings  repository.ListingRepository
	Lists     repository.ContactListRepository
	Activity  repository.ActivityRepository
	Tasks     repository.TaskRepository
	Audits    repository.AuditRepository
	Prospects repository.ProspectRepository
	Resolver  *resolver.Resolver
	Searcher  places.Searcher
	LLM       llm.Client
	LLMModel  string
	Logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(deps Deps) *Dispatcher {
	return &Dispatcher{
		contacts:  deps.Contacts,
		listings:  deps.Listings,
		lists:     deps.Lists,
		activity:  deps.Activity,
		tasks:     deps.Tasks,
		audits:    deps.Audits,
		prospects: deps.Prospects,
		resolver:  deps.Resolver,
		searcher:  deps.Searcher,
		llmClient: deps.LLM,
		llmModel:  deps.LLMModel,
		logger:    deps.Logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Dispatch executes the typed command. rawCommand is the original user text,
// carried through for audit entries.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd classifier.Command, rawCommand string) (Result, error) {
	switch c := cmd.(type) {
	case classifier.UpdateContact:
		return d.handleUpdateContact(ctx, c, rawCommand)
	case classifier.AddNote:
		return d.handleAddNote(ctx, c, rawCommand)
	case classifier.CreateActivity:
		return d.handleCreateActivity(ctx, c, rawCommand)
	case classifier.CreateContact:
		return d.handleCreateContact(ctx, c, rawCommand)
	case classifier.DeleteContact:
		return d.handleDeleteContact(ctx, c, rawCommand)
	case classifier.SearchContact:
		return d.handleSearchContact(ctx, c)
	case classifier.ListContacts:
		return d.handleListContacts(ctx)
	case classifier.CreateList:
		return d.handleCreateList(ctx, c, rawCommand)
	case classifier.AttachListToListing:
		return d.handleAttachListToListing(ctx, c, rawCommand)
	case classifier.CombinedListCreation:
		return d.handleCombinedListCreation(ctx, c, rawCommand)
	case classifier.CombinedActivityCreation:
		return d.handleCombinedActivityCreation(ctx, c, rawCommand)
	case classifier.ProspectBusinesses:
		return d.handleProspectBusinesses(ctx, c, rawCommand)
	case classifier.FilterContacts:
		return d.handleFilterContacts(ctx, c)
	case classifier.GeneralQuery:
		return d.handleGeneralQuery(ctx, c)
	case classifier.CreateTask:
		return d.handleCreateTask(ctx, c, rawCommand)
	}
	return Result{}, fmt.Errorf("no handler for intent %s", cmd.Intent())
}
