package services

import (
	"context"
)

// MockGeminiService implements GeminiService for testing.
type MockGeminiService struct {
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (m *MockGeminiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return "", nil
}

func (m *MockGeminiService) CompleteWithRetry(ctx context.Context, systemPrompt, userPrompt string, maxRetries int) (string, error) {
	return m.Complete(ctx, systemPrompt, userPrompt)
}
