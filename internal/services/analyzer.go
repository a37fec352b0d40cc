package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumatch/jd-analyzer/internal/models"
	"resumatch/jd-analyzer/internal/repositories"
)

// AnalyzerService sequences the full analysis workflow for one queued job:
// parse both PDFs, summarize them in parallel, evaluate fit, band the score
// and generate suggestions. The CV rewrite is a separate, caller-triggered
// step. The service itself is stateless; everything lives on the analysis row.
type AnalyzerService interface {
	RunAnalysis(ctx context.Context, analysisID uuid.UUID) error
	GenerateRewrite(ctx context.Context, analysisID uuid.UUID) (string, error)
}

type analyzerService struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	pdfParser    PDFParserService
	summarizer   SummarizerService
	evaluator    EvaluatorService
	suggestions  SuggestionService
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	pdfParser PDFParserService,
	summarizer SummarizerService,
	evaluator EvaluatorService,
	suggestions SuggestionService,
) AnalyzerService {
	return &analyzerService{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		pdfParser:    pdfParser,
		summarizer:   summarizer,
		evaluator:    evaluator,
		suggestions:  suggestions,
	}
}

func (a *analyzerService) RunAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	if err := a.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis %s\n", analysisID)

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, err.Error())
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	jdDoc, err := a.docRepo.FindByID(analysis.JDDocumentID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("JD document not found: %v", err))
		return fmt.Errorf("failed to get JD document: %w", err)
	}

	cvDoc, err := a.docRepo.FindByID(analysis.CVDocumentID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("CV document not found: %v", err))
		return fmt.Errorf("failed to get CV document: %w", err)
	}

	// Step 1: Parse PDFs
	log.Println("📄 Parsing JD and CV...")
	jdText, err := a.pdfParser.ExtractText(jdDoc.FilePath)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to parse JD: %v", err))
		return fmt.Errorf("failed to parse JD: %w", err)
	}

	cvText, err := a.pdfParser.ExtractText(cvDoc.FilePath)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to parse CV: %v", err))
		return fmt.Errorf("failed to parse CV: %w", err)
	}

	// Step 2: Summarize both documents in parallel
	log.Println("🤖 Summarizing JD and CV in parallel...")
	pair := a.summarizer.Summarize(ctx, jdText, cvText)

	updateData := &repositories.AnalysisUpdateData{
		JDSummary: &pair.JDSummary,
		CVSummary: &pair.CVSummary,
		CVContent: &cvText,
	}

	// Step 3: Evaluate fit, shaped by the workflow mode
	switch analysis.Mode {
	case models.ModeHiring:
		log.Println("🤖 Generating narrative evaluation...")
		evaluation, err := a.evaluator.EvaluateText(ctx, pair.JDSummary, pair.CVSummary)
		if err != nil {
			a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to evaluate fit: %v", err))
			return fmt.Errorf("failed to evaluate fit: %w", err)
		}
		updateData.EvaluationText = &evaluation

	case models.ModeCandidate:
		log.Println("🤖 Generating structured evaluation...")
		outcome, err := a.evaluator.EvaluateStructured(ctx, pair.JDSummary, pair.CVSummary)
		if err != nil {
			a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to evaluate fit: %v", err))
			return fmt.Errorf("failed to evaluate fit: %w", err)
		}

		recordJSON, err := json.Marshal(outcome.Record)
		if err != nil {
			a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to encode evaluation: %v", err))
			return fmt.Errorf("failed to encode evaluation: %w", err)
		}

		evaluation := string(recordJSON)
		report := MarkdownReport(outcome.Record)
		score := outcome.Score()
		band := string(outcome.Band())

		updateData.Evaluation = &evaluation
		updateData.Report = &report
		updateData.OverallScore = &score
		updateData.Band = &band

		// Step 4: Gap-driven suggestions
		suggestions := NoGapsMessage
		if len(outcome.Record.Gaps) > 0 {
			log.Println("🤖 Generating improvement suggestions...")
			suggestions, err = a.suggestions.Suggest(ctx, outcome.Record.Gaps)
			if err != nil {
				a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to generate suggestions: %v", err))
				return fmt.Errorf("failed to generate suggestions: %w", err)
			}
		}
		updateData.Suggestions = &suggestions

	default:
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("unknown mode: %s", analysis.Mode))
		return fmt.Errorf("unknown mode: %s", analysis.Mode)
	}

	// Step 5: Save results
	log.Println("💾 Saving analysis results...")
	if err := a.analysisRepo.UpdateResult(analysisID, updateData); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Analysis %s completed\n", analysisID)
	return nil
}

// GenerateRewrite produces the improved CV for a completed candidate
// analysis. It requires the original CV text, the generated suggestions and
// the JD summary captured on the record; missing pieces surface as
// ErrMissingInput for the handler to report.
func (a *analyzerService) GenerateRewrite(ctx context.Context, analysisID uuid.UUID) (string, error) {
	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		return "", fmt.Errorf("failed to get analysis: %w", err)
	}

	if analysis.Mode != models.ModeCandidate {
		return "", fmt.Errorf("%w: rewrite is only available for candidate analyses", ErrMissingInput)
	}
	if analysis.Status != models.StatusCompleted {
		return "", fmt.Errorf("%w: analysis is not completed", ErrMissingInput)
	}
	if analysis.CVContent == nil || analysis.Suggestions == nil || analysis.Evaluation == nil {
		return "", fmt.Errorf("%w: missing data for CV rewrite", ErrMissingInput)
	}

	var record EvaluationRecord
	if err := json.Unmarshal([]byte(*analysis.Evaluation), &record); err != nil {
		return "", fmt.Errorf("failed to decode stored evaluation: %w", err)
	}

	log.Printf("🤖 Rewriting CV for analysis %s\n", analysisID)
	rewritten, err := a.suggestions.Rewrite(ctx, *analysis.CVContent, *analysis.Suggestions, record.JDSummary)
	if err != nil {
		return "", fmt.Errorf("failed to rewrite CV: %w", err)
	}

	if err := a.analysisRepo.UpdateRewrite(analysisID, rewritten); err != nil {
		return "", fmt.Errorf("failed to save rewritten CV: %w", err)
	}

	return rewritten, nil
}
