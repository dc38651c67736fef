// Package transport exposes the HTTP surface: the intent-routed command
// endpoints plus plain reads and writes that bypass the classifier.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/command"
	"github.com/openhouse-crm/openhouse/internal/domain/activity"
	"github.com/openhouse-crm/openhouse/internal/email"
	"github.com/openhouse-crm/openhouse/internal/llm"
	"github.com/openhouse-crm/openhouse/internal/repository"
)

// Server wires HTTP handlers.
type Server struct {
	service    *command.Service
	listings   repository.ListingRepository
	lists      repository.ContactListRepository
	activities repository.ActivityRepository
	sender     email.Sender
	logger     *slog.Logger
	newID      func() string
	now        func() time.Time
}

// Deps bundles the server's collaborators. Sender may be nil when outbound
// email is not configured.
type Deps struct {
	Service    *command.Service
	Listings   repository.ListingRepository
	Lists      repository.ContactListRepository
	Activities repository.ActivityRepository
	Sender     email.Sender
	Logger     *slog.Logger
	NewID      func() string
	Now        func() time.Time
}

// NewServer creates the HTTP router.
func NewServer(deps Deps) *chi.Mux {
	srv := &Server{
		service:    deps.Service,
		listings:   deps.Listings,
		lists:      deps.Lists,
		activities: deps.Activities,
		sender:     deps.Sender,
		logger:     deps.Logger,
		newID:      deps.NewID,
		now:        deps.Now,
	}
	if srv.now == nil {
		srv.now = time.Now
	}
	if srv.newID == nil {
		srv.newID = uuid.NewString
	}

	r := chi.NewRouter()
	r.Use(CORSMiddleware)

	r.Post("/ai-contact-action", srv.handleContactAction)
	r.Post("/ai-create-task", srv.handleCreateTask)
	r.Post("/chat", srv.handleChat)
	r.Get("/listings", srv.handleListListings)
	r.Post("/add-contact-list-to-listing", srv.handleDirectAttach)
	r.Post("/activities", srv.handleCreateActivity)
	r.Get("/activities", srv.handleListActivities)
	r.Get("/activities/contact/{id}", srv.handleListContactActivities)
	r.Post("/send-email", srv.handleSendEmail)
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type commandRequest struct {
	Command string `json:"command"`
}

func (s *Server) handleContactAction(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a non-empty command is required"})
		return
	}

	result, err := s.service.Execute(r.Context(), req.Command)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a non-empty command is required"})
		return
	}

	result, err := s.service.ExecuteTask(r.Context(), req.Command)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeCommandError maps classification and infrastructure errors onto HTTP
// statuses. Domain failures never reach here; they are 200s with
// success:false.
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	var lowConf *classifier.LowConfidenceError
	if errors.As(err, &lowConf) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      "I'm not confident I understood that command.",
			"suggestion": lowConf.UserMessage,
			"debug": map[string]any{
				"intent":     lowConf.Intent,
				"confidence": lowConf.Confidence,
			},
		})
		return
	}

	var missing *classifier.MissingFieldError
	if errors.As(err, &missing) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("The command is missing %s.", missing.Field),
		})
		return
	}

	if errors.Is(err, classifier.ErrUnparsable) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Could not understand that command. Please rephrase it.",
		})
		return
	}

	// Auth and rate-limit failures from the LLM pass through so the client
	// can distinguish them from server faults.
	if code := llm.StatusCode(err); code == http.StatusUnauthorized ||
		code == http.StatusTooManyRequests || code == http.StatusBadRequest {
		writeJSON(w, code, map[string]string{"error": "The language model rejected the request."})
		return
	}

	s.logger.Error("command failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a non-empty message is required"})
		return
	}

	reply, err := s.service.Chat(r.Context(), req.Message)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	all, err := s.listings.List(r.Context())
	if err != nil {
		s.logger.Error("list listings failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "listings": all})
}

type directAttachRequest struct {
	ListingID     string `json:"listingId"`
	ContactListID string `json:"contactListId"`
}

// handleDirectAttach attaches a list to a listing by id, bypassing the
// classifier and resolver entirely.
func (s *Server) handleDirectAttach(w http.ResponseWriter, r *http.Request) {
	var req directAttachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListingID == "" || req.ContactListID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "listingId and contactListId are required"})
		return
	}

	target, err := s.listings.Get(r.Context(), req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "listing not found"})
			return
		}
		s.logger.Error("get listing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if _, err := s.lists.Get(r.Context(), req.ContactListID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "contact list not found"})
			return
		}
		s.logger.Error("get contact list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if target.HasContactList(req.ContactListID) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "contact list already attached",
		})
		return
	}

	target.ContactListIDs = append(target.ContactListIDs, req.ContactListID)
	if err := s.listings.Update(r.Context(), target); err != nil {
		s.logger.Error("update listing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":               true,
		"message":               fmt.Sprintf("Attached contact list to %s", target.DisplayName()),
		"listingId":             target.ID,
		"contactListId":         req.ContactListID,
		"updatedContactListIds": target.ContactListIDs,
	})
}

type createActivityRequest struct {
	ContactID   string `json:"contactId"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ListingID   string `json:"listingId"`
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ContactID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "contactId is required"})
		return
	}

	actType, err := activity.ParseType(req.Type)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	now := s.now()
	act := &activity.Activity{
		ID:          s.newID(),
		ContactID:   req.ContactID,
		Type:        actType,
		Description: req.Description,
		Date:        now,
		ListingID:   req.ListingID,
		CreatedAt:   now,
	}
	if err := s.activities.Create(r.Context(), act); err != nil {
		s.logger.Error("create activity failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"activityId": act.ID,
		"message":    "Activity created",
	})
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	opts := repository.ListActivitiesOptions{
		ContactID: r.URL.Query().Get("contactId"),
		ListingID: r.URL.Query().Get("listingId"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		opts.Limit = limit
	}

	s.writeActivities(w, r, opts)
}

func (s *Server) handleListContactActivities(w http.ResponseWriter, r *http.Request) {
	s.writeActivities(w, r, repository.ListActivitiesOptions{
		ContactID: chi.URLParam(r, "id"),
	})
}

func (s *Server) writeActivities(w http.ResponseWriter, r *http.Request, opts repository.ListActivitiesOptions) {
	all, err := s.activities.List(r.Context(), opts)
	if err != nil {
		s.logger.Error("list activities failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "activities": all})
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if s.sender == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "email is not configured"})
		return
	}

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a recipient is required"})
		return
	}

	if err := s.sender.Send(r.Context(), email.Message{To: req.To, Subject: req.Subject, Body: req.Body}); err != nil {
		s.logger.Error("send email failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Email sent"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
