package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// SummaryPair holds the two document summaries produced by the parallel
// parsing step. Both fields are always populated after Summarize returns;
// a failed call leaves its field as the empty string.
type SummaryPair struct {
	JDSummary string `json:"jd_summary"`
	CVSummary string `json:"cv_summary"`
}

type SummarizerService interface {
	Summarize(ctx context.Context, jdText, cvText string) SummaryPair
}

type summarizerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewSummarizerService(gemini GeminiService) SummarizerService {
	return &summarizerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// summarySlot captures one task's terminal outcome. Each goroutine owns its
// slot exclusively, so the join is the only synchronization needed.
type summarySlot struct {
	text string
	err  error
}

// Summarize runs the JD and CV parsing calls concurrently and merges the
// results. The two calls dominate end-to-end latency and are independent, so
// running them in parallel roughly halves wall-clock time. A failure of one
// call never aborts the other: the failed slot is flattened to "" and the
// workflow continues with whatever was produced.
func (s *summarizerService) Summarize(ctx context.Context, jdText, cvText string) SummaryPair {
	var jdSlot, cvSlot summarySlot

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)

	g.Go(func() error {
		jdSlot.text, jdSlot.err = s.gemini.Complete(gctx,
			JDParsingSystemPrompt,
			s.promptBuilder.BuildJDParsingPrompt(jdText),
		)
		return nil
	})

	g.Go(func() error {
		cvSlot.text, cvSlot.err = s.gemini.Complete(gctx,
			ResumeParsingSystemPrompt,
			s.promptBuilder.BuildResumeParsingPrompt(cvText),
		)
		return nil
	})

	// Both slots are terminal after the join; errors were captured per
	// slot, so Wait never returns one.
	_ = g.Wait()

	if jdSlot.err != nil {
		log.Printf("⚠️ JD summarization failed, continuing with empty summary: %v\n", jdSlot.err)
		jdSlot.text = ""
	}
	if cvSlot.err != nil {
		log.Printf("⚠️ CV summarization failed, continuing with empty summary: %v\n", cvSlot.err)
		cvSlot.text = ""
	}

	return SummaryPair{
		JDSummary: jdSlot.text,
		CVSummary: cvSlot.text,
	}
}
