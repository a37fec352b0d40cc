package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CompleteWithRetry(ctx context.Context, systemPrompt, userPrompt string, maxRetries int) (string, error)
}

type geminiService struct {
	client         *genai.Client
	modelName      string
	requestTimeout time.Duration
}

func NewGeminiService(apiKey, modelName string, requestTimeout time.Duration) (GeminiService, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Reason: "GEMINI_API_KEY is not set"}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ConfigurationError{Reason: "failed to create gemini client", Err: err}
	}

	return &geminiService{
		client:         client,
		modelName:      modelName,
		requestTimeout: requestTimeout,
	}, nil
}

// Complete implements GeminiService. The system prompt is prepended to the
// user prompt because the Gemini completion endpoint has no separate
// system-role channel. Temperature is pinned to 0 so repeated runs over the
// same documents evaluate deterministically.
func (g *geminiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.client == nil {
		return "", &ConfigurationError{Reason: "gemini client not initialized"}
	}

	fullPrompt := fmt.Sprintf("%s\n\n%s", systemPrompt, userPrompt)

	callCtx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0)),
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(callCtx, g.modelName, genai.Text(fullPrompt), config)
	if err != nil {
		return "", &ModelCallError{Op: "generate content", Err: err}
	}
	if resp == nil {
		return "", &ModelCallError{Op: "generate content", Err: fmt.Errorf("nil response")}
	}

	text := resp.Text()
	if text == "" {
		// An empty payload is treated the same as a transport failure;
		// sentinel substitution happens one layer up.
		return "", &ModelCallError{Op: "generate content", Err: fmt.Errorf("no text content in response")}
	}

	return text, nil
}

// CompleteWithRetry implements GeminiService.
func (g *geminiService) CompleteWithRetry(ctx context.Context, systemPrompt, userPrompt string, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
