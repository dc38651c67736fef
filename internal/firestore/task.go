package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/openhouse-crm/openhouse/internal/domain/task"
)

// TaskRepository implements repository.TaskRepository for Firestore
type TaskRepository struct {
	store *Store
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

type taskDoc struct {
	Title              string    `firestore:"title"`
	Description        string    `firestore:"description"`
	DueDate            string    `firestore:"dueDate"`
	Priority           string    `firestore:"priority"`
	Status             string    `firestore:"status"`
	ContactID          string    `firestore:"contactId"`
	ListingID          string    `firestore:"listingId"`
	ProspectID         string    `firestore:"prospectId"`
	ProspectBusinessID string    `firestore:"prospectBusinessId"`
	CreatedAt          time.Time `firestore:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt"`
}

func toTaskDoc(t *task.Task) taskDoc {
	return taskDoc{
		Title:              t.Title,
		Description:        t.Description,
		DueDate:            t.DueDate,
		Priority:           string(t.Priority),
		Status:             string(t.Status),
		ContactID:          t.ContactID,
		ListingID:          t.ListingID,
		ProspectID:         t.ProspectID,
		ProspectBusinessID: t.ProspectBusinessID,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func (d taskDoc) toTask(id string) task.Task {
	return task.Task{
		ID:                 id,
		Title:              d.Title,
		Description:        d.Description,
		DueDate:            d.DueDate,
		Priority:           task.Priority(d.Priority),
		Status:             task.Status(d.Status),
		ContactID:          d.ContactID,
		ListingID:          d.ListingID,
		ProspectID:         d.ProspectID,
		ProspectBusinessID: d.ProspectBusinessID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// Create writes a new task document
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	_, err := r.store.client.Collection(collectionTasks).Doc(t.ID).Set(ctx, toTaskDoc(t))
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	snap, err := r.store.client.Collection(collectionTasks).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var doc taskDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	t := doc.toTask(snap.Ref.ID)
	return &t, nil
}

// Update overwrites a task
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	doc := r.store.client.Collection(collectionTasks).Doc(t.ID)
	if _, err := doc.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	if _, err := doc.Set(ctx, toTaskDoc(t)); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task document
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	doc := r.store.client.Collection(collectionTasks).Doc(id)
	if _, err := doc.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	if _, err := doc.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// List returns all tasks ordered by due date
func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	iter := r.store.client.Collection(collectionTasks).OrderBy("dueDate", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var tasks []task.Task
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate tasks: %w", err)
		}
		var doc taskDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, doc.toTask(snap.Ref.ID))
	}
	return tasks, nil
}
