// Package testserver spins up the full HTTP stack over an in-memory SQLite
// store with a scripted classifier, for end-to-end tests that don't need a
// real LLM.
package testserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/command"
	"github.com/openhouse-crm/openhouse/internal/repository"
	"github.com/openhouse-crm/openhouse/internal/resolver"
	"github.com/openhouse-crm/openhouse/internal/sqlite"
	"github.com/openhouse-crm/openhouse/internal/transport"
)

// ClassifyFunc adapts a function to the command.Classifier interface.
type ClassifyFunc func(ctx context.Context, cmd string) (classifier.Classification, classifier.Command, error)

func (f ClassifyFunc) Classify(ctx context.Context, cmd string) (classifier.Classification, classifier.Command, error) {
	return f(ctx, cmd)
}

// TaskClassifyFunc adapts a function to the command.TaskClassifier interface.
type TaskClassifyFunc func(ctx context.Context, cmd string) (classifier.Classification, classifier.CreateTask, error)

func (f TaskClassifyFunc) Classify(ctx context.Context, cmd string) (classifier.Classification, classifier.CreateTask, error) {
	return f(ctx, cmd)
}

// TestServer is the running stack plus direct repository access for seeding
// and assertions.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Contacts repository.ContactRepository
	Listings repository.ListingRepository
	Lists    repository.ContactListRepository
	Activity repository.ActivityRepository
	Tasks    repository.TaskRepository
}

// New builds the stack. cls and taskCls script the classification layer.
func New(t *testing.T, cls command.Classifier, taskCls command.TaskClassifier) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.DiscardHandler)

	contacts := sqlite.NewContactRepository(db)
	listings := sqlite.NewListingRepository(db)
	lists := sqlite.NewContactListRepository(db)
	activities := sqlite.NewActivityRepository(db)
	tasks := sqlite.NewTaskRepository(db)
	audits := sqlite.NewAuditRepository(db)
	prospects := sqlite.NewProspectRepository(db)

	res := resolver.New(contacts, listings, lists, logger)
	dispatcher := command.NewDispatcher(command.Deps{
		Contacts:  contacts,
		Listings:  listings,
		Lists:     lists,
		Activity:  activities,
		Tasks:     tasks,
		Audits:    audits,
		Prospects: prospects,
		Resolver:  res,
		Logger:    logger,
	})
	service := command.NewService(cls, taskCls, dispatcher, logger)

	server := httptest.NewServer(transport.NewServer(transport.Deps{
		Service:    service,
		Listings:   listings,
		Lists:      lists,
		Activities: activities,
		Logger:     logger,
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Contacts: contacts,
		Listings: listings,
		Lists:    lists,
		Activity: activities,
		Tasks:    tasks,
	}
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})
	return ts
}
