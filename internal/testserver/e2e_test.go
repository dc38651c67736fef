package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/command"
	"github.com/openhouse-crm/openhouse/internal/domain/contact"
	"github.com/openhouse-crm/openhouse/internal/domain/contactlist"
	"github.com/openhouse-crm/openhouse/internal/domain/listing"
)

func postCommand(t *testing.T, ts *TestServer, cmd string) command.Result {
	t.Helper()
	body, err := json.Marshal(map[string]string{"command": cmd})
	require.NoError(t, err)

	resp, err := http.Post(ts.Server.URL+"/ai-contact-action", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result command.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func TestUpdateContactEndToEnd(t *testing.T) {
	cls := ClassifyFunc(func(_ context.Context, _ string) (classifier.Classification, classifier.Command, error) {
		return classifier.Classification{Intent: classifier.IntentUpdateContact, Confidence: 0.8},
			classifier.UpdateContact{ContactIdentifier: "John Smith", Field: "email", Value: "john@new.com"},
			nil
	})
	ts := New(t, cls, nil)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, ts.Contacts.Create(context.Background(), &contact.Contact{
		ID: "c1", FirstName: "John", LastName: "Smith", Email: "john@old.com",
		CreatedAt: now, UpdatedAt: now,
	}))

	result := postCommand(t, ts, "update John Smith email to john@new.com")
	require.True(t, result.Success)
	require.Equal(t, `✅ Updated email for John Smith to "john@new.com"`, result.Message)

	stored, err := ts.Contacts.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, "john@new.com", stored.Email)
}

func TestAttachListTwiceEndToEnd(t *testing.T) {
	cls := ClassifyFunc(func(_ context.Context, _ string) (classifier.Classification, classifier.Command, error) {
		return classifier.Classification{Intent: classifier.IntentAttachListToListing, Confidence: 0.8},
			classifier.AttachListToListing{ListIdentifier: "Tech Companies", ListingIdentifier: "420 Main Street"},
			nil
	})
	ts := New(t, cls, nil)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, ts.Lists.Create(context.Background(), &contactlist.ContactList{
		ID: "cl1", Name: "Tech Companies", ContactIDs: []string{"c1"}, CreatedAt: now,
	}))
	require.NoError(t, ts.Listings.Create(context.Background(), &listing.Listing{
		ID: "l1", StreetAddress: "420 Main Street", CreatedAt: now,
	}))

	first := postCommand(t, ts, "attach the Tech Companies list to 420 Main Street")
	require.True(t, first.Success)

	stored, err := ts.Listings.Get(context.Background(), "l1")
	require.NoError(t, err)
	require.Equal(t, []string{"cl1"}, stored.ContactListIDs)

	second := postCommand(t, ts, "attach the Tech Companies list to 420 Main Street")
	require.False(t, second.Success)
	require.Contains(t, second.Error, "already attached")

	stored, err = ts.Listings.Get(context.Background(), "l1")
	require.NoError(t, err)
	require.Equal(t, []string{"cl1"}, stored.ContactListIDs)
}
