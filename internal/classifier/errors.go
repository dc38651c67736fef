package classifier

import (
	"errors"
	"fmt"
)

// ErrUnparsable indicates the model's response was not the required JSON
// shape. It is never partially accepted or guessed at.
var ErrUnparsable = errors.New("classifier response is not valid JSON")

// LowConfidenceError indicates the classification parsed but fell below the
// intent's confidence threshold. UserMessage carries the classifier's own
// natural-language explanation for the caller to surface.
type LowConfidenceError struct {
	Intent      Intent
	Confidence  float64
	UserMessage string
}

func (e *LowConfidenceError) Error() string {
	return fmt.Sprintf("classification confidence %.2f below threshold %.2f for %s",
		e.Confidence, e.Intent.MinConfidence(), e.Intent)
}

// MissingFieldError indicates a required extracted field was absent. Raised
// when the typed command is constructed, before any store access.
type MissingFieldError struct {
	Intent Intent
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s requires field %q", e.Intent, e.Field)
}
