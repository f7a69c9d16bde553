// Package greeting produces the Valentine's message, either from a text
// model or from a fixed fallback. Generate never fails.
package greeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/lovewizard/internal/logger"
)

// EmptyFallback is used when the model answers with no text.
const EmptyFallback = "You are the most beautiful person in the world. I love you more than words can say. ❤️"

// FailureFallback is used when the model call fails.
func FailureFallback(partnerName, authorName string) string {
	return fmt.Sprintf("Happy Valentine's Day, %s! Every moment with you is a gift. I'm so lucky to have you. Love, %s ❤️",
		partnerName, authorName)
}

// TextModel completes a prompt.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Adapter wraps a TextModel with the fallback contract: one attempt per
// call, errors are logged and replaced by a fallback greeting.
type Adapter struct {
	model TextModel
}

// NewAdapter creates an adapter. A nil model always yields FailureFallback.
func NewAdapter(model TextModel) *Adapter {
	return &Adapter{model: model}
}

// Generate returns a greeting from authorName to partnerName.
func (a *Adapter) Generate(ctx context.Context, partnerName, authorName string) string {
	if a.model == nil {
		logger.Warn("Greeting model not configured, using fallback")
		return FailureFallback(partnerName, authorName)
	}

	text, err := a.model.Complete(ctx, Prompt(partnerName, authorName))
	if err != nil {
		logger.Error("Greeting generation failed: %v", err)
		return FailureFallback(partnerName, authorName)
	}

	if strings.TrimSpace(text) == "" {
		logger.Warn("Greeting model returned empty text, using fallback")
		return EmptyFallback
	}

	logger.Debug("Generated greeting (%d bytes)", len(text))
	return text
}
