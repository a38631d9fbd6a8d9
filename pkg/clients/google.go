package clients

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ModelType names a Gemini model.
type ModelType string

const (
	// TextModel answers process queries with search grounding.
	TextModel ModelType = "gemini-2.5-pro"
	// ImageModel draws the process illustration.
	ImageModel ModelType = "gemini-2.5-flash-image"
)

// NewGenAI creates a Gemini API client authenticated with apiKey.
func NewGenAI(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing Google API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}
	return client, nil
}
