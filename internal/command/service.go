package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openhouse-crm/openhouse/internal/classifier"
)

// Classifier is the intent classification capability the service consumes.
type Classifier interface {
	Classify(ctx context.Context, command string) (classifier.Classification, classifier.Command, error)
}

// TaskClassifier is the task-specific classification capability.
type TaskClassifier interface {
	Classify(ctx context.Context, command string) (classifier.Classification, classifier.CreateTask, error)
}

// Service ties classification and dispatch together: one call per user
// command.
type Service struct {
	classifier     Classifier
	taskClassifier TaskClassifier
	dispatcher     *Dispatcher
	logger         *slog.Logger
}

// NewService creates a Service.
func NewService(cls Classifier, taskCls TaskClassifier, dispatcher *Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		classifier:     cls,
		taskClassifier: taskCls,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

// Execute classifies and runs a free-text command. Classification errors
// (ErrUnparsable, *LowConfidenceError, *MissingFieldError) pass through to
// the caller for transport-level mapping.
func (s *Service) Execute(ctx context.Context, rawCommand string) (Result, error) {
	cls, cmd, err := s.classifier.Classify(ctx, rawCommand)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("executing command", "intent", cls.Intent, "confidence", cls.Confidence)
	result, err := s.dispatcher.Dispatch(ctx, cmd, rawCommand)
	if err != nil {
		return Result{}, fmt.Errorf("dispatch %s: %w", cls.Intent, err)
	}
	return result, nil
}

// ExecuteTask classifies and runs a task-creation command through the
// task-specific classifier.
func (s *Service) ExecuteTask(ctx context.Context, rawCommand string) (Result, error) {
	cls, cmd, err := s.taskClassifier.Classify(ctx, rawCommand)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("executing task command", "confidence", cls.Confidence)
	result, err := s.dispatcher.Dispatch(ctx, cmd, rawCommand)
	if err != nil {
		return Result{}, fmt.Errorf("dispatch %s: %w", cls.Intent, err)
	}
	return result, nil
}

// Chat is the plain LLM passthrough behind /chat.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	result, err := s.dispatcher.handleGeneralQuery(ctx, classifier.GeneralQuery{UserMessage: message})
	if err != nil {
		return "", err
	}
	return result.Message, nil
}
