package greeting

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Sampling parameters are fixed; the prompt bounds the length.
const (
	Temperature float32 = 0.8
	TopP        float32 = 0.95
)

// ErrMissingAPIKey is returned when no credential is configured.
var ErrMissingAPIKey = errors.New("gemini API key is not set")

// GeminiModel completes prompts with Google's Gemini API.
type GeminiModel struct {
	apiKey  string
	model   string
	baseURL string
}

// GeminiOption configures a GeminiModel.
type GeminiOption func(*GeminiModel)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) GeminiOption {
	return func(g *GeminiModel) {
		g.baseURL = url
	}
}

// NewGeminiModel creates a Gemini-backed TextModel. The client is created
// per call, so a missing key only surfaces when a greeting is requested.
func NewGeminiModel(apiKey, model string, opts ...GeminiOption) *GeminiModel {
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	g := &GeminiModel{
		apiKey: apiKey,
		model:  model,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the model identifier.
func (g *GeminiModel) Name() string {
	return g.model
}

// Complete sends prompt as a single user turn and returns the response text.
func (g *GeminiModel) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(Temperature),
			TopP:        genai.Ptr(TopP),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return resp.Text(), nil
}
