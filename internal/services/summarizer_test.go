package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// summaryMock routes each completion by its system prompt so the two
// parsing calls can be told apart.
func summaryMock(jdResult string, jdErr error, cvResult string, cvErr error) *MockGeminiService {
	return &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			switch systemPrompt {
			case JDParsingSystemPrompt:
				return jdResult, jdErr
			case ResumeParsingSystemPrompt:
				return cvResult, cvErr
			default:
				return "", fmt.Errorf("unexpected system prompt: %s", systemPrompt)
			}
		},
	}
}

func TestSummarize_BothSucceed(t *testing.T) {
	svc := NewSummarizerService(summaryMock("jd summary", nil, "cv summary", nil))

	pair := svc.Summarize(context.Background(), "raw jd text", "raw cv text")

	assert.Equal(t, "jd summary", pair.JDSummary)
	assert.Equal(t, "cv summary", pair.CVSummary)
}

func TestSummarize_NoCrossContamination(t *testing.T) {
	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, userPrompt string) (string, error) {
			// Each task must only see its own input text.
			switch systemPrompt {
			case JDParsingSystemPrompt:
				require.Contains(t, userPrompt, "the jd input")
				require.NotContains(t, userPrompt, "the cv input")
				return "summary of jd", nil
			case ResumeParsingSystemPrompt:
				require.Contains(t, userPrompt, "the cv input")
				require.NotContains(t, userPrompt, "the jd input")
				return "summary of cv", nil
			}
			return "", fmt.Errorf("unexpected system prompt")
		},
	}

	pair := NewSummarizerService(mock).Summarize(context.Background(), "the jd input", "the cv input")

	assert.Equal(t, "summary of jd", pair.JDSummary)
	assert.Equal(t, "summary of cv", pair.CVSummary)
}

func TestSummarize_JDFails(t *testing.T) {
	callErr := &ModelCallError{Op: "generate content", Err: fmt.Errorf("quota exceeded")}
	svc := NewSummarizerService(summaryMock("", callErr, "cv summary", nil))

	pair := svc.Summarize(context.Background(), "jd", "cv")

	assert.Equal(t, "", pair.JDSummary)
	assert.Equal(t, "cv summary", pair.CVSummary)
}

func TestSummarize_CVFails(t *testing.T) {
	callErr := &ModelCallError{Op: "generate content", Err: fmt.Errorf("transport error")}
	svc := NewSummarizerService(summaryMock("jd summary", nil, "", callErr))

	pair := svc.Summarize(context.Background(), "jd", "cv")

	assert.Equal(t, "jd summary", pair.JDSummary)
	assert.Equal(t, "", pair.CVSummary)
}

func TestSummarize_BothFail(t *testing.T) {
	callErr := &ModelCallError{Op: "generate content", Err: fmt.Errorf("down")}
	svc := NewSummarizerService(summaryMock("", callErr, "", callErr))

	pair := svc.Summarize(context.Background(), "jd", "cv")

	// Both keys still present, both empty.
	assert.Equal(t, SummaryPair{}, pair)
}

func TestSummarize_RunsInParallel(t *testing.T) {
	const callLatency = 100 * time.Millisecond

	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			time.Sleep(callLatency)
			if systemPrompt == JDParsingSystemPrompt {
				return "jd summary", nil
			}
			return "cv summary", nil
		},
	}

	start := time.Now()
	pair := NewSummarizerService(mock).Summarize(context.Background(), "jd", "cv")
	elapsed := time.Since(start)

	require.NotEmpty(t, pair.JDSummary)
	require.NotEmpty(t, pair.CVSummary)

	// Two calls of latency L should finish closer to L than to 2L.
	assert.Less(t, elapsed, callLatency+callLatency/2,
		"summarization took %v, expected parallel execution near %v", elapsed, callLatency)
}

func TestSummarize_EmptyInputsStillYieldBothKeys(t *testing.T) {
	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			if strings.Contains(systemPrompt, "Job Description Extractor") {
				return "jd", nil
			}
			return "cv", nil
		},
	}

	pair := NewSummarizerService(mock).Summarize(context.Background(), "", "")

	assert.Equal(t, "jd", pair.JDSummary)
	assert.Equal(t, "cv", pair.CVSummary)
}
