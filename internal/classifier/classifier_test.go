package classifier

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openhouse-crm/openhouse/internal/llm"
)

type fakeLLM struct {
	content string
	err     error
}

func (f *fakeLLM) Complete(_ context.Context, _ llm.Request) (llm.Response, error) {
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.content}, nil
}

func newTestClassifier(content string) *Classifier {
	return New(&fakeLLM{content: content}, "test-model", slog.New(slog.DiscardHandler))
}

func TestClassifyUpdateContact(t *testing.T) {
	c := newTestClassifier(`{"intent":"UPDATE_CONTACT","confidence":0.9,
		"extractedData":{"contactIdentifier":"John Smith","field":"email","value":"j@x.com"},
		"userMessage":"Updating John Smith's email."}`)

	cls, cmd, err := c.Classify(context.Background(), "update John Smith email to j@x.com")
	require.NoError(t, err)
	require.Equal(t, IntentUpdateContact, cls.Intent)
	require.Equal(t, UpdateContact{
		ContactIdentifier: "John Smith",
		Field:             "email",
		Value:             "j@x.com",
	}, cmd)
}

func TestClassifyStripsCodeFences(t *testing.T) {
	c := newTestClassifier("```json\n{\"intent\":\"LIST_CONTACTS\",\"confidence\":0.8,\"extractedData\":{},\"userMessage\":\"Listing contacts.\"}\n```")

	_, cmd, err := c.Classify(context.Background(), "show me everyone")
	require.NoError(t, err)
	require.Equal(t, ListContacts{}, cmd)
}

func TestClassifyUnparsableJSON(t *testing.T) {
	c := newTestClassifier("I think you want to update a contact.")

	_, _, err := c.Classify(context.Background(), "update something")
	require.ErrorIs(t, err, ErrUnparsable)
}

func TestClassifyUnknownIntent(t *testing.T) {
	c := newTestClassifier(`{"intent":"MAKE_COFFEE","confidence":0.9,"extractedData":{},"userMessage":"?"}`)

	_, _, err := c.Classify(context.Background(), "make coffee")
	require.ErrorIs(t, err, ErrUnparsable)
}

func TestConfidenceThresholdPerIntent(t *testing.T) {
	// 0.25 clears the lowered bar for UPDATE_CONTACT but not CREATE_LIST.
	c := newTestClassifier(`{"intent":"UPDATE_CONTACT","confidence":0.25,
		"extractedData":{"contactIdentifier":"Jo","field":"phone","value":"555"},
		"userMessage":"Updating Jo's phone."}`)
	_, cmd, err := c.Classify(context.Background(), "jo phone 555")
	require.NoError(t, err)
	require.IsType(t, UpdateContact{}, cmd)

	c = newTestClassifier(`{"intent":"CREATE_LIST","confidence":0.25,
		"extractedData":{"listName":"L","listCriteria":"tech"},
		"userMessage":"Creating list L."}`)
	_, _, err = c.Classify(context.Background(), "list L of tech")
	var lowErr *LowConfidenceError
	require.ErrorAs(t, err, &lowErr)
	require.Equal(t, IntentCreateList, lowErr.Intent)
	require.Equal(t, "Creating list L.", lowErr.UserMessage)
}

func TestConfidenceBelowFloorFailsEverywhere(t *testing.T) {
	c := newTestClassifier(`{"intent":"UPDATE_CONTACT","confidence":0.15,
		"extractedData":{"contactIdentifier":"Jo","field":"phone","value":"555"},
		"userMessage":"Not sure."}`)

	_, _, err := c.Classify(context.Background(), "jo phone maybe")
	var lowErr *LowConfidenceError
	require.ErrorAs(t, err, &lowErr)
}

func TestClassifyMissingRequiredField(t *testing.T) {
	c := newTestClassifier(`{"intent":"UPDATE_CONTACT","confidence":0.9,
		"extractedData":{"contactIdentifier":"John Smith","field":"email"},
		"userMessage":"Updating John Smith's email."}`)

	_, _, err := c.Classify(context.Background(), "update John Smith email")
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "value", missing.Field)
}

func TestClassifyPropagatesClientError(t *testing.T) {
	wantErr := &llm.StatusError{StatusCode: 429, Body: "rate limited"}
	c := New(&fakeLLM{err: wantErr}, "test-model", slog.New(slog.DiscardHandler))

	_, _, err := c.Classify(context.Background(), "anything")
	require.Error(t, err)
	require.Equal(t, 429, llm.StatusCode(err))
}

func TestClassifyGeneralQueryCarriesUserMessage(t *testing.T) {
	c := newTestClassifier(`{"intent":"GENERAL_QUERY","confidence":0.7,"extractedData":{},"userMessage":"General question."}`)

	_, cmd, err := c.Classify(context.Background(), "what's the weather")
	require.NoError(t, err)
	require.Equal(t, GeneralQuery{UserMessage: "what's the weather"}, cmd)
}

func TestClassifyNonStringExtractedValues(t *testing.T) {
	c := newTestClassifier(`{"intent":"UPDATE_CONTACT","confidence":0.9,
		"extractedData":{"contactIdentifier":"Jo","field":"phone","value":5551234},
		"userMessage":"Updating Jo's phone."}`)

	_, cmd, err := c.Classify(context.Background(), "jo phone 5551234")
	require.NoError(t, err)
	require.Equal(t, "5551234", cmd.(UpdateContact).Value)
}

func TestTaskClassifier(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, time.August, 21, 9, 0, 0, 0, time.UTC)
	}
	tc := NewTaskClassifier(&fakeLLM{content: `{"intent":"CREATE_TASK","confidence":0.9,
		"extractedData":{"taskDescription":"call Jane Doe","dueDate":"2026-08-22",
		"priority":"high","taskType":"contact","contactIdentifier":"Jane Doe"},
		"userMessage":"Creating a task."}`}, "test-model", slog.New(slog.DiscardHandler), now)

	_, cmd, err := tc.Classify(context.Background(), "remind me to call Jane Doe tomorrow")
	require.NoError(t, err)
	require.Equal(t, "call Jane Doe", cmd.Title)
	require.Equal(t, "2026-08-22", cmd.DueDate)
	require.Equal(t, "high", cmd.Priority)
	require.Equal(t, "Jane Doe", cmd.ContactIdentifier)
}

func TestTaskClassifierLowConfidence(t *testing.T) {
	tc := NewTaskClassifier(&fakeLLM{content: `{"intent":"CREATE_TASK","confidence":0.2,
		"extractedData":{"taskDescription":"something","dueDate":"2026-08-22"},
		"userMessage":"Not sure what to schedule."}`}, "test-model", slog.New(slog.DiscardHandler), nil)

	_, _, err := tc.Classify(context.Background(), "do a thing sometime")
	var lowErr *LowConfidenceError
	require.True(t, errors.As(err, &lowErr))
	require.Equal(t, 0.2, lowErr.Confidence)
}

func TestTaskClassifierMissingDueDate(t *testing.T) {
	tc := NewTaskClassifier(&fakeLLM{content: `{"intent":"CREATE_TASK","confidence":0.9,
		"extractedData":{"taskDescription":"call Jane"},
		"userMessage":"Creating a task."}`}, "test-model", slog.New(slog.DiscardHandler), nil)

	_, _, err := tc.Classify(context.Background(), "remind me to call Jane")
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "dueDate", missing.Field)
}
