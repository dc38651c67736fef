// Package mcp exposes the command service as MCP tools over stdio, so MCP
// clients can drive the CRM with the same natural-language commands as the
// HTTP surface.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openhouse-crm/openhouse/internal/command"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// Server wraps the command service for MCP clients.
type Server struct {
	service    *command.Service
	contacts   repository.ContactRepository
	activities repository.ActivityRepository
	logger     *slog.Logger
}

// NewServer creates the MCP tool server.
func NewServer(service *command.Service, contacts repository.ContactRepository, activities repository.ActivityRepository, logger *slog.Logger) *Server {
	return &Server{service: service, contacts: contacts, activities: activities, logger: logger}
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "openhouse",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_command",
		Description: "Run a natural-language CRM command (update contacts, add notes, log activities, create and attach lists, filter contacts)",
	}, s.executeCommand)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a dated task from a natural-language request, resolving relative dates like 'tomorrow'",
	}, s.createTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_contacts",
		Description: "Search contacts by a case-insensitive term across name, email, company, sector, and notes",
	}, s.searchContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recent_activity",
		Description: "List recent CRM activities, optionally for one contact",
	}, s.recentActivity)

	s.logger.Info("mcp server listening on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

type ExecuteCommandInput struct {
	Command string `json:"command" jsonschema:"The natural-language CRM command (required)"`
}

func (s *Server) executeCommand(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteCommandInput) (*mcp.CallToolResult, command.Result, error) {
	if input.Command == "" {
		return nil, command.Result{}, fmt.Errorf("command is required")
	}

	result, err := s.service.Execute(ctx, input.Command)
	if err != nil {
		return nil, command.Result{}, err
	}
	return nil, result, nil
}

type CreateTaskInput struct {
	Command string `json:"command" jsonschema:"The natural-language task request, e.g. 'remind me to call Jane tomorrow' (required)"`
}

func (s *Server) createTask(ctx context.Context, _ *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, command.Result, error) {
	if input.Command == "" {
		return nil, command.Result{}, fmt.Errorf("command is required")
	}

	result, err := s.service.ExecuteTask(ctx, input.Command)
	if err != nil {
		return nil, command.Result{}, err
	}
	return nil, result, nil
}

type SearchContactsInput struct {
	Query string `json:"query" jsonschema:"Search term matched against name, email, company, sector, and notes (required)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type SearchContactsOutput struct {
	Contacts []ContactSummary `json:"contacts"`
	Count    int              `json:"count"`
}

type ContactSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
	Sector  string `json:"sector,omitempty"`
}

func (s *Server) searchContacts(ctx context.Context, _ *mcp.CallToolRequest, input SearchContactsInput) (*mcp.CallToolResult, SearchContactsOutput, error) {
	if input.Query == "" {
		return nil, SearchContactsOutput{}, fmt.Errorf("query is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	all, err := s.contacts.List(ctx)
	if err != nil {
		return nil, SearchContactsOutput{}, fmt.Errorf("list contacts: %w", err)
	}

	var out SearchContactsOutput
	for i := range all {
		if !all[i].MatchesSearch(input.Query) {
			continue
		}
		out.Contacts = append(out.Contacts, ContactSummary{
			ID:      all[i].ID,
			Name:    all[i].DisplayName(),
			Email:   all[i].Email,
			Company: all[i].Company,
			Sector:  all[i].BusinessSector,
		})
		if len(out.Contacts) >= limit {
			break
		}
	}
	out.Count = len(out.Contacts)
	return nil, out, nil
}

type RecentActivityInput struct {
	ContactID string `json:"contact_id,omitempty" jsonschema:"Limit to one contact's activities"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
}

type RecentActivityOutput struct {
	Activities []ActivitySummary `json:"activities"`
}

type ActivitySummary struct {
	ID          string `json:"id"`
	ContactID   string `json:"contactId"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	ListingName string `json:"listingName,omitempty"`
}

func (s *Server) recentActivity(ctx context.Context, _ *mcp.CallToolRequest, input RecentActivityInput) (*mcp.CallToolResult, RecentActivityOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	all, err := s.activities.List(ctx, repository.ListActivitiesOptions{
		ContactID: input.ContactID,
		Limit:     limit,
	})
	if err != nil {
		return nil, RecentActivityOutput{}, fmt.Errorf("list activities: %w", err)
	}

	out := RecentActivityOutput{Activities: make([]ActivitySummary, 0, len(all))}
	for _, act := range all {
		out.Activities = append(out.Activities, ActivitySummary{
			ID:          act.ID,
			ContactID:   act.ContactID,
			Type:        string(act.Type),
			Description: act.Description,
			Date:        act.Date.Format("2006-01-02 15:04"),
			ListingName: act.ListingName,
		})
	}
	return nil, out, nil
}
