package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
	"github.com/openhouse-crm/openhouse/internal/domain/task"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

func (d *Dispatcher) handleCreateTask(ctx context.Context, cmd classifier.CreateTask, rawCommand string) (Result, error) {
	now := d.now()
	t := &task.Task{
		ID:          d.newID(),
		Title:       cmd.Title,
		Description: cmd.Description,
		DueDate:     cmd.DueDate,
		Priority:    task.ParsePriority(cmd.Priority),
		Status:      task.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// taskType discriminates which resolver to use; when absent, the
	// presence of a listing identifier decides.
	useListing := cmd.TaskType == "listing" || (cmd.TaskType == "" && cmd.ListingIdentifier != "")

	result := Result{}
	var targetName string
	if useListing {
		if cmd.ListingIdentifier == "" {
			return failure("A listing task needs a listing identifier", listingSuggestion), nil
		}
		target, err := d.resolver.FindListing(ctx, cmd.ListingIdentifier)
		if err != nil {
			if errors.Is(err, listing.ErrNotFound) {
				return failure(
					fmt.Sprintf("No listing found matching %q", cmd.ListingIdentifier),
					listingSuggestion,
				), nil
			}
			return Result{}, fmt.Errorf("resolve listing: %w", err)
		}
		t.ListingID = target.ID
		targetName = target.DisplayName()
		result.ListingID = target.ID
		result.Listing = target
	} else {
		if cmd.ContactIdentifier == "" {
			return failure("A contact task needs a contact identifier", contactSuggestion), nil
		}
		found, err := d.resolver.FindContact(ctx, cmd.ContactIdentifier)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return failure(
					fmt.Sprintf("No contact found matching %q", cmd.ContactIdentifier),
					contactSuggestion,
				), nil
			}
			return Result{}, fmt.Errorf("resolve contact: %w", err)
		}
		t.ContactID = found.ID
		targetName = found.DisplayName()
		result.ContactID = found.ID
		result.Contact = found
	}

	if err := t.Validate(); err != nil {
		return failure(err.Error(), ""), nil
	}
	if err := d.tasks.Create(ctx, t); err != nil {
		return Result{}, fmt.Errorf("create task: %w", err)
	}

	d.recordAudit(ctx, rawCommand, "create_task", t.ID, targetName, "success",
		fmt.Sprintf("%s due %s", t.Title, t.DueDate))

	result.Success = true
	result.Message = fmt.Sprintf("✅ Created task %q for %s, due %s", t.Title, targetName, t.DueDate)
	result.TaskID = t.ID
	result.Task = t
	return result, nil
}
