package summary

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY not found in environment variables")
	ErrEmptyResponse = errors.New("model returned no text")
)

var _ Generator = (*GeminiGenerator)(nil)

// GeminiGenerator sends prompts to the Gemini API. The SDK client is created
// on first use so a missing key only fails the summaries that need it.
type GeminiGenerator struct {
	apiKey     string
	model      string
	httpClient *http.Client
	client     *genai.Client
}

func NewGeminiGenerator(apiKey, model string, httpClient *http.Client) *GeminiGenerator {
	if model == "" {
		model = DefaultModel
	}

	return &GeminiGenerator{
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	if g.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     g.apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: g.httpClient,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create Gemini client: %w", err)
		}
		g.client = client
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
