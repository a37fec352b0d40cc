package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/gjson"
)

// Score cut points partitioning an evaluation into three bands. A score at
// or above SuccessScore passes outright; below FailureScore the CV does not
// meet the role requirements.
const (
	SuccessScore = 85
	FailureScore = 45
)

type ScoreBand string

const (
	BandPass     ScoreBand = "pass"
	BandModerate ScoreBand = "moderate"
	BandFail     ScoreBand = "fail"
)

// BandForScore classifies an overall score. Boundaries are inclusive on the
// lower edge of each band, so 85 passes and 45 is moderate.
func BandForScore(score int) ScoreBand {
	switch {
	case score >= SuccessScore:
		return BandPass
	case score >= FailureScore:
		return BandModerate
	default:
		return BandFail
	}
}

// EvaluationRecord is the structured fit evaluation emitted by the model.
// JDSummary is injected after parsing and always reflects the input summary,
// never anything the model produced.
type EvaluationRecord struct {
	CandidateName     string   `json:"candidate_name,omitempty"`
	JobTitle          string   `json:"job_title,omitempty"`
	OverallScore      int      `json:"overall_score"`
	ExperiencePenalty string   `json:"experience_penalty,omitempty"`
	CriticalPenalties []string `json:"critical_penalties,omitempty"`
	Positives         []string `json:"positives,omitempty"`
	Gaps              []string `json:"gaps,omitempty"`
	Recommendation    string   `json:"recommendation,omitempty"`
	JDSummary         string   `json:"jd_summary"`
}

// EvaluationOutcome tags whether the model response parsed. A degraded
// outcome carries only the JD summary; its score reads as 0 and bands as
// fail, which keeps every downstream comparison safe.
type EvaluationOutcome struct {
	Record   EvaluationRecord
	Degraded bool
}

func (o EvaluationOutcome) Score() int {
	return o.Record.OverallScore
}

func (o EvaluationOutcome) Band() ScoreBand {
	return BandForScore(o.Record.OverallScore)
}

type EvaluatorService interface {
	EvaluateText(ctx context.Context, jdSummary, cvSummary string) (string, error)
	EvaluateStructured(ctx context.Context, jdSummary, cvSummary string) (EvaluationOutcome, error)
}

type evaluatorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewEvaluatorService(gemini GeminiService, maxRetries int) EvaluatorService {
	return &evaluatorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// EvaluateText implements EvaluatorService. It returns the free-form
// narrative evaluation used in hiring mode; call failures propagate.
func (e *evaluatorService) EvaluateText(ctx context.Context, jdSummary, cvSummary string) (string, error) {
	response, err := e.gemini.CompleteWithRetry(ctx,
		EvaluationSystemPrompt,
		e.promptBuilder.BuildEvaluationPrompt(jdSummary, cvSummary),
		e.maxRetries,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate evaluation: %w", err)
	}

	return strings.TrimSpace(response), nil
}

// EvaluateStructured implements EvaluatorService. A malformed model response
// is an expected condition, not a defect: the outcome degrades to a record
// holding only the JD summary instead of surfacing an error. A failed call
// means nothing was evaluated at all, so it propagates to the caller.
func (e *evaluatorService) EvaluateStructured(ctx context.Context, jdSummary, cvSummary string) (EvaluationOutcome, error) {
	response, err := e.gemini.CompleteWithRetry(ctx,
		EvaluationJSONSystemPrompt,
		e.promptBuilder.BuildEvaluationJSONPrompt(jdSummary, cvSummary),
		e.maxRetries,
	)
	if err != nil {
		return EvaluationOutcome{}, fmt.Errorf("failed to generate structured evaluation: %w", err)
	}

	record, ok := parseEvaluationRecord(CleanJSONResponse(response))
	if !ok {
		log.Printf("⚠️ Structured evaluation did not parse, degrading to JD summary only\n")
		return EvaluationOutcome{
			Record:   EvaluationRecord{JDSummary: jdSummary},
			Degraded: true,
		}, nil
	}

	record.JDSummary = jdSummary
	return EvaluationOutcome{Record: record}, nil
}

// parseEvaluationRecord reads the sanitized model output with gjson so a
// score the model quoted as a string ("82") still parses as a number. The
// prompt template itself shows overall_score as a quoted placeholder, so
// both shapes occur in practice.
func parseEvaluationRecord(clean string) (EvaluationRecord, bool) {
	root := gjson.Parse(clean)
	if !gjson.Valid(clean) || !root.IsObject() {
		return EvaluationRecord{}, false
	}

	return EvaluationRecord{
		CandidateName:     root.Get("candidate_name").String(),
		JobTitle:          root.Get("job_title").String(),
		OverallScore:      int(root.Get("overall_score").Int()),
		ExperiencePenalty: root.Get("experience_penalty").String(),
		CriticalPenalties: stringSlice(root.Get("critical_penalties")),
		Positives:         stringSlice(root.Get("positives")),
		Gaps:              stringSlice(root.Get("gaps")),
		Recommendation:    root.Get("recommendation").String(),
	}, true
}

func stringSlice(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}

	var values []string
	for _, item := range result.Array() {
		values = append(values, item.String())
	}
	return values
}

// MarkdownReport renders the evaluation as the short markdown report shown
// to the candidate alongside the suggestions.
func MarkdownReport(record EvaluationRecord) string {
	jobTitle := record.JobTitle
	if jobTitle == "" {
		jobTitle = "N/A"
	}

	gapsBlock := "- No gaps detected"
	if len(record.Gaps) > 0 {
		gapsBlock = "- " + strings.Join(record.Gaps, "\n- ")
	}

	return fmt.Sprintf(`**Job Title:** %s
**Overall Match Score:** %d

**Gaps:**
%s`, jobTitle, record.OverallScore, gapsBlock)
}
