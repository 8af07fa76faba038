package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGenerateTimeout = 20 * time.Second

// GeminiGenerator produces briefs with Google's Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	modelID string
	timeout time.Duration
}

// NewGeminiGenerator creates a new Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, modelID string, timeout time.Duration) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("strategy: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("strategy: failed to create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		modelID: modelID,
		timeout: timeout,
	}, nil
}

// Generate asks the model for a short strategy brief.
func (g *GeminiGenerator) Generate(ctx context.Context, req BriefRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.modelID)
	model.SystemInstruction = genai.NewUserContent(genai.Text(
		"You are a consultant at SMEFlow, an SME automation consultancy in Nigeria. " +
			"Write a short, practical automation strategy brief: three numbered, concrete " +
			"recommendations. Plain text, no markdown, under 250 words.",
	))

	prompt := fmt.Sprintf("Business: %s\nIndustry: %s\nBiggest challenge: %s\nEstimated monthly loss: %s",
		req.BusinessName, req.Industry, req.Challenge, req.LossBand)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("strategy: gemini request failed: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("strategy: gemini returned empty response")
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

var _ Generator = (*GeminiGenerator)(nil)
