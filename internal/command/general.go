package command

import (
	"context"
	"fmt"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/llm"
)

const generalPrompt = `You are a helpful assistant for a real-estate agent.
Answer briefly and practically. If the question is about their CRM data,
suggest a concrete CRM command they could run instead.`

// handleGeneralQuery passes non-CRM questions straight through to the model.
func (d *Dispatcher) handleGeneralQuery(ctx context.Context, cmd classifier.GeneralQuery) (Result, error) {
	resp, err := d.llmClient.Complete(ctx, llm.Request{
		Model:       d.llmModel,
		System:      generalPrompt,
		Prompt:      cmd.UserMessage,
		Temperature: 0.7,
	})
	if err != nil {
		return Result{}, fmt.Errorf("general query: %w", err)
	}

	return Result{Success: true, Message: resp.Content}, nil
}
