package ai

import (
	"context"
	"errors"
)

// Gateway wraps a single chat-completion call against the external model.
// Implementations do not retry; retry policy lives in this package's
// generation loop.
type Gateway interface {
	// Complete sends the prompt and returns the model's response as
	// plain text. Returns ErrNoContent when the response carries no
	// extractable text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNoContent indicates the model responded without any text content.
var ErrNoContent = errors.New("no text content in model response")
