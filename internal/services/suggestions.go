package services

import (
	"context"
	"fmt"
	"strings"
)

// NoGapsMessage is stored in place of generated suggestions when the
// evaluation found nothing to improve.
const NoGapsMessage = "No gaps found. Your CV is aligned!"

type SuggestionService interface {
	Suggest(ctx context.Context, gaps []string) (string, error)
	Rewrite(ctx context.Context, originalCV, suggestions, jobRequirements string) (string, error)
}

type suggestionService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewSuggestionService(gemini GeminiService, maxRetries int) SuggestionService {
	return &suggestionService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// Suggest implements SuggestionService. Gaps arrive in model-assigned
// priority order (critical first); the output is a markdown bullet list with
// one suggestion per gap.
func (s *suggestionService) Suggest(ctx context.Context, gaps []string) (string, error) {
	if len(gaps) == 0 {
		return "", fmt.Errorf("%w: no gaps to address", ErrMissingInput)
	}

	suggestions, err := s.gemini.CompleteWithRetry(ctx,
		SuggestionsSystemPrompt,
		s.promptBuilder.BuildSuggestionsPrompt(gaps),
		s.maxRetries,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate suggestions: %w", err)
	}

	return strings.TrimSpace(suggestions), nil
}

// Rewrite implements SuggestionService. It produces the full rewritten CV in
// markdown, scoped to the original content, the accepted suggestions and the
// JD requirements.
func (s *suggestionService) Rewrite(ctx context.Context, originalCV, suggestions, jobRequirements string) (string, error) {
	if strings.TrimSpace(originalCV) == "" || strings.TrimSpace(suggestions) == "" {
		return "", fmt.Errorf("%w: original CV and suggestions are required", ErrMissingInput)
	}

	rewritten, err := s.gemini.CompleteWithRetry(ctx,
		RewriteSystemPrompt,
		s.promptBuilder.BuildRewritePrompt(originalCV, suggestions, jobRequirements),
		s.maxRetries,
	)
	if err != nil {
		return "", fmt.Errorf("failed to rewrite CV: %w", err)
	}

	return strings.TrimSpace(rewritten), nil
}
