package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"mobiwise/internal/models"
)

// TokenUsage reports the provider's token accounting for one call.
type TokenUsage struct {
	PromptTokens     int32
	CompletionTokens int32
	TotalTokens      int32
}

// ChatProvider is the boundary to the hosted language model. Generate sends
// the current user message with normalized history and returns the raw reply
// text; it never parses or retries.
type ChatProvider interface {
	Generate(ctx context.Context, model string, history []*genai.Content, message string) (string, TokenUsage, error)
}

// GeminiService is the Gemini-backed ChatProvider. One client is shared
// across requests; the genai client is safe for concurrent use and the
// service holds no per-request state.
type GeminiService struct {
	client *genai.Client
	logger *log.Logger
}

// NewGeminiService creates a Gemini client from the injected API key.
func NewGeminiService(ctx context.Context, apiKey string, logger *log.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		logger: logger,
	}, nil
}

// Generate invokes Gemini with the fixed system instruction, the normalized
// history and the new user message. The response is constrained to JSON via
// MIME type and schema, but callers must still treat the returned text as
// untrusted (see InterpretResponse).
func (g *GeminiService) Generate(ctx context.Context, model string, history []*genai.Content, message string) (string, TokenUsage, error) {
	if model == "" {
		model = models.DefaultModel
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(message)},
	})

	config := &genai.GenerateContentConfig{
		SystemInstruction: SystemInstruction(),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    EnvelopeResponseSchema(),
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", TokenUsage{}, fmt.Errorf("Gemini request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", TokenUsage{}, fmt.Errorf("Gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", TokenUsage{}, fmt.Errorf("Gemini returned an empty candidate")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	reply := strings.TrimSpace(text.String())
	if reply == "" {
		return "", TokenUsage{}, fmt.Errorf("Gemini returned empty response text")
	}

	usage := TokenUsage{}
	if resp.UsageMetadata != nil {
		usage = TokenUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	if g.logger != nil {
		g.logger.Printf("Gemini reply received (model=%s, tokens=%d)", model, usage.TotalTokens)
	}

	return reply, usage, nil
}
