// Package classifier turns free-text CRM commands into typed commands by way
// of an LLM intent classification.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openhouse-crm/openhouse/internal/llm"
)

// Classification is the validated classifier output before command
// construction.
type Classification struct {
	Intent      Intent
	Confidence  float64
	Data        map[string]string
	UserMessage string
}

// Classifier routes natural-language commands to intents.
type Classifier struct {
	client llm.Client
	model  string
	logger *slog.Logger
}

// New creates a Classifier using the given completion client.
func New(client llm.Client, model string, logger *slog.Logger) *Classifier {
	return &Classifier{client: client, model: model, logger: logger}
}

// wire shape of the model response
type rawClassification struct {
	Intent        string         `json:"intent"`
	Confidence    float64        `json:"confidence"`
	ExtractedData map[string]any `json:"extractedData"`
	UserMessage   string         `json:"userMessage"`
}

// Classify classifies the command and returns its typed form. Errors are
// ErrUnparsable, *LowConfidenceError, *MissingFieldError, or a transport
// failure from the underlying client.
func (c *Classifier) Classify(ctx context.Context, command string) (Classification, Command, error) {
	resp, err := c.client.Complete(ctx, llm.Request{
		Model:       c.model,
		System:      intentPrompt,
		Prompt:      command,
		Temperature: 0.1,
	})
	if err != nil {
		return Classification{}, nil, fmt.Errorf("classify command: %w", err)
	}

	cls, err := c.parse(resp.Content)
	if err != nil {
		return Classification{}, nil, err
	}

	c.logger.Debug("classified command",
		"intent", cls.Intent,
		"confidence", cls.Confidence,
		"tokens", resp.TokensUsed)

	if cls.Confidence < cls.Intent.MinConfidence() {
		return cls, nil, &LowConfidenceError{
			Intent:      cls.Intent,
			Confidence:  cls.Confidence,
			UserMessage: cls.UserMessage,
		}
	}

	cmd, err := buildCommand(cls.Intent, cls.Data, command)
	if err != nil {
		return cls, nil, err
	}
	return cls, cmd, nil
}

func (c *Classifier) parse(content string) (Classification, error) {
	var raw rawClassification
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		c.logger.Warn("unparsable classifier response", "error", err)
		return Classification{}, ErrUnparsable
	}

	intent := Intent(raw.Intent)
	if !intent.Known() {
		c.logger.Warn("unknown intent from classifier", "intent", raw.Intent)
		return Classification{}, ErrUnparsable
	}

	data := make(map[string]string, len(raw.ExtractedData))
	for key, value := range raw.ExtractedData {
		switch v := value.(type) {
		case string:
			data[key] = v
		case nil:
			// skip
		default:
			data[key] = fmt.Sprintf("%v", v)
		}
	}

	return Classification{
		Intent:      intent,
		Confidence:  raw.Confidence,
		Data:        data,
		UserMessage: raw.UserMessage,
	}, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// TaskClassifier extracts task creation details, resolving relative dates
// against a clock.
type TaskClassifier struct {
	client llm.Client
	model  string
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskClassifier creates a TaskClassifier. now defaults to time.Now when
// nil.
func NewTaskClassifier(client llm.Client, model string, logger *slog.Logger, now func() time.Time) *TaskClassifier {
	if now == nil {
		now = time.Now
	}
	return &TaskClassifier{client: client, model: model, logger: logger, now: now}
}

// Classify extracts a CreateTask command from the free-text request.
func (c *TaskClassifier) Classify(ctx context.Context, command string) (Classification, CreateTask, error) {
	resp, err := c.client.Complete(ctx, llm.Request{
		Model:       c.model,
		System:      taskPrompt(c.now()),
		Prompt:      command,
		Temperature: 0.1,
	})
	if err != nil {
		return Classification{}, CreateTask{}, fmt.Errorf("classify task: %w", err)
	}

	var raw rawClassification
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &raw); err != nil {
		c.logger.Warn("unparsable task classifier response", "error", err)
		return Classification{}, CreateTask{}, ErrUnparsable
	}

	data := make(map[string]string, len(raw.ExtractedData))
	for key, value := range raw.ExtractedData {
		if v, ok := value.(string); ok {
			data[key] = v
		}
	}
	cls := Classification{
		Intent:      IntentCreateTask,
		Confidence:  raw.Confidence,
		Data:        data,
		UserMessage: raw.UserMessage,
	}

	if cls.Confidence < IntentCreateTask.MinConfidence() {
		return cls, CreateTask{}, &LowConfidenceError{
			Intent:      IntentCreateTask,
			Confidence:  cls.Confidence,
			UserMessage: cls.UserMessage,
		}
	}

	cmd, err := buildCommand(IntentCreateTask, data, command)
	if err != nil {
		return cls, CreateTask{}, err
	}
	return cls, cmd.(CreateTask), nil
}
