package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/jd-analyzer/internal/models"
	"resumatch/jd-analyzer/internal/repositories"
)

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*models.Document
}

func (f *fakeDocumentRepo) Create(doc *models.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found")
	}
	return doc, nil
}

type fakeAnalysisRepo struct {
	analyses map[uuid.UUID]*models.Analysis
}

func (f *fakeAnalysisRepo) Create(a *models.Analysis) error {
	f.analyses[a.ID] = a
	return nil
}

func (f *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	a, ok := f.analyses[id]
	if !ok {
		return nil, fmt.Errorf("analysis not found")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	a, ok := f.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	a.Status = status
	return nil
}

func (f *fakeAnalysisRepo) UpdateResult(id uuid.UUID, data *repositories.AnalysisUpdateData) error {
	a, ok := f.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	a.Status = models.StatusCompleted
	a.JDSummary = data.JDSummary
	a.CVSummary = data.CVSummary
	a.CVContent = data.CVContent
	a.EvaluationText = data.EvaluationText
	a.Evaluation = data.Evaluation
	a.Report = data.Report
	a.OverallScore = data.OverallScore
	a.Band = data.Band
	a.Suggestions = data.Suggestions
	return nil
}

func (f *fakeAnalysisRepo) UpdateRewrite(id uuid.UUID, rewrittenCV string) error {
	a, ok := f.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	a.RewrittenCV = &rewrittenCV
	return nil
}

func (f *fakeAnalysisRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	a, ok := f.analyses[id]
	if !ok {
		return fmt.Errorf("analysis not found")
	}
	a.Status = models.StatusFailed
	a.ErrorMessage = &errorMsg
	return nil
}

func (f *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	return nil, nil
}

type stubPDFParser struct {
	texts map[string]string
}

func (s *stubPDFParser) ExtractText(filePath string) (string, error) {
	text, ok := s.texts[filePath]
	if !ok {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return text, nil
}

func (s *stubPDFParser) ExtractTextFromBytes(data []byte) (string, error) {
	return string(data), nil
}

// candidateFlowMock answers every call of the candidate workflow: both
// parsing calls, the structured evaluation, suggestions and the rewrite.
func candidateFlowMock() *MockGeminiService {
	return &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			switch systemPrompt {
			case JDParsingSystemPrompt:
				return "**Job Title:** Senior Engineer\n**Experience:** 5+ years Python", nil
			case ResumeParsingSystemPrompt:
				return "**Name:** Jane Doe\n**Experience:** 3 years Python, no cloud experience", nil
			case EvaluationJSONSystemPrompt:
				return `{"candidate_name": "Jane Doe", "job_title": "Senior Engineer",
					"overall_score": 58, "experience_penalty": "Y",
					"critical_penalties": ["Experience below requirement"],
					"positives": ["Python"],
					"gaps": ["No cloud experience", "Only 3 of 5+ years Python"],
					"recommendation": "Reject"}`, nil
			case SuggestionsSystemPrompt:
				return "- Add cloud projects to your experience section\n- Emphasize depth of Python work", nil
			case RewriteSystemPrompt:
				return "## Jane Doe\n**Summary:** Python engineer with growing **AWS** exposure", nil
			}
			return "", fmt.Errorf("unexpected system prompt: %s", systemPrompt)
		},
	}
}

func newTestAnalyzer(gemini GeminiService, mode models.AnalysisMode) (AnalyzerService, *fakeAnalysisRepo, uuid.UUID) {
	jdDoc := &models.Document{ID: uuid.New(), FileType: DocTypeJD, FilePath: "/uploads/jd.pdf"}
	cvDoc := &models.Document{ID: uuid.New(), FileType: DocTypeCV, FilePath: "/uploads/cv.pdf"}

	docRepo := &fakeDocumentRepo{docs: map[uuid.UUID]*models.Document{
		jdDoc.ID: jdDoc,
		cvDoc.ID: cvDoc,
	}}

	analysis := &models.Analysis{
		ID:           uuid.New(),
		Mode:         mode,
		JDDocumentID: jdDoc.ID,
		CVDocumentID: cvDoc.ID,
		Status:       models.StatusQueued,
	}
	analysisRepo := &fakeAnalysisRepo{analyses: map[uuid.UUID]*models.Analysis{
		analysis.ID: analysis,
	}}

	parser := &stubPDFParser{texts: map[string]string{
		"/uploads/jd.pdf": "Senior Engineer, 5+ years Python",
		"/uploads/cv.pdf": "3 years Python, no cloud experience",
	}}

	analyzer := NewAnalyzerService(
		analysisRepo,
		docRepo,
		parser,
		NewSummarizerService(gemini),
		NewEvaluatorService(gemini, 1),
		NewSuggestionService(gemini, 1),
	)

	return analyzer, analysisRepo, analysis.ID
}

func TestRunAnalysis_CandidateFlow(t *testing.T) {
	analyzer, repo, analysisID := newTestAnalyzer(candidateFlowMock(), models.ModeCandidate)

	err := analyzer.RunAnalysis(context.Background(), analysisID)
	require.NoError(t, err)

	stored := repo.analyses[analysisID]
	assert.Equal(t, models.StatusCompleted, stored.Status)

	require.NotNil(t, stored.JDSummary)
	require.NotNil(t, stored.CVSummary)
	assert.NotEmpty(t, *stored.JDSummary)
	assert.NotEmpty(t, *stored.CVSummary)

	require.NotNil(t, stored.OverallScore)
	assert.Less(t, *stored.OverallScore, SuccessScore)
	require.NotNil(t, stored.Band)
	assert.Equal(t, string(BandModerate), *stored.Band)

	require.NotNil(t, stored.Report)
	assert.Contains(t, *stored.Report, "No cloud experience")

	require.NotNil(t, stored.Suggestions)
	assert.Contains(t, *stored.Suggestions, "- ")
}

func TestRunAnalysis_CandidateFlowNoGaps(t *testing.T) {
	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			if systemPrompt == EvaluationJSONSystemPrompt {
				return `{"overall_score": 92, "gaps": [], "recommendation": "Proceed"}`, nil
			}
			if systemPrompt == SuggestionsSystemPrompt {
				return "", fmt.Errorf("suggestions must not be requested when there are no gaps")
			}
			return "a summary", nil
		},
	}

	analyzer, repo, analysisID := newTestAnalyzer(mock, models.ModeCandidate)

	err := analyzer.RunAnalysis(context.Background(), analysisID)
	require.NoError(t, err)

	stored := repo.analyses[analysisID]
	require.NotNil(t, stored.Suggestions)
	assert.Equal(t, NoGapsMessage, *stored.Suggestions)
	require.NotNil(t, stored.Band)
	assert.Equal(t, string(BandPass), *stored.Band)
}

func TestRunAnalysis_HiringFlow(t *testing.T) {
	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			if systemPrompt == EvaluationSystemPrompt {
				return "The candidate is a moderate fit for the role.", nil
			}
			return "a summary", nil
		},
	}

	analyzer, repo, analysisID := newTestAnalyzer(mock, models.ModeHiring)

	err := analyzer.RunAnalysis(context.Background(), analysisID)
	require.NoError(t, err)

	stored := repo.analyses[analysisID]
	assert.Equal(t, models.StatusCompleted, stored.Status)
	require.NotNil(t, stored.EvaluationText)
	assert.Equal(t, "The candidate is a moderate fit for the role.", *stored.EvaluationText)
	assert.Nil(t, stored.OverallScore)
}

func TestRunAnalysis_DegradedEvaluationStillCompletes(t *testing.T) {
	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			if systemPrompt == EvaluationJSONSystemPrompt {
				return "the model rambled instead of emitting JSON", nil
			}
			return "a summary", nil
		},
	}

	analyzer, repo, analysisID := newTestAnalyzer(mock, models.ModeCandidate)

	err := analyzer.RunAnalysis(context.Background(), analysisID)
	require.NoError(t, err)

	stored := repo.analyses[analysisID]
	assert.Equal(t, models.StatusCompleted, stored.Status)
	require.NotNil(t, stored.OverallScore)
	assert.Equal(t, 0, *stored.OverallScore)
	require.NotNil(t, stored.Band)
	assert.Equal(t, string(BandFail), *stored.Band)
	require.NotNil(t, stored.Suggestions)
	assert.Equal(t, NoGapsMessage, *stored.Suggestions)
}

func TestRunAnalysis_EvaluationCallFailureFailsAnalysis(t *testing.T) {
	mock := &MockGeminiService{
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			if systemPrompt == EvaluationJSONSystemPrompt {
				return "", &ModelCallError{Op: "generate content", Err: fmt.Errorf("quota exceeded")}
			}
			return "a summary", nil
		},
	}

	analyzer, repo, analysisID := newTestAnalyzer(mock, models.ModeCandidate)

	err := analyzer.RunAnalysis(context.Background(), analysisID)
	require.Error(t, err)

	// A quota outage must not masquerade as a completed fail-band
	// evaluation of the CV.
	stored := repo.analyses[analysisID]
	assert.Equal(t, models.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "Failed to evaluate fit")
	assert.Nil(t, stored.Band)
	assert.Nil(t, stored.Suggestions)
}

func TestRunAnalysis_UnreadablePDFFails(t *testing.T) {
	jdDoc := &models.Document{ID: uuid.New(), FileType: DocTypeJD, FilePath: "/uploads/jd.pdf"}
	cvDoc := &models.Document{ID: uuid.New(), FileType: DocTypeCV, FilePath: "/uploads/corrupt.pdf"}

	docRepo := &fakeDocumentRepo{docs: map[uuid.UUID]*models.Document{
		jdDoc.ID: jdDoc,
		cvDoc.ID: cvDoc,
	}}

	analysis := &models.Analysis{
		ID:           uuid.New(),
		Mode:         models.ModeCandidate,
		JDDocumentID: jdDoc.ID,
		CVDocumentID: cvDoc.ID,
		Status:       models.StatusQueued,
	}
	analysisRepo := &fakeAnalysisRepo{analyses: map[uuid.UUID]*models.Analysis{
		analysis.ID: analysis,
	}}

	// The CV path has no extractable text, so the parser errors out.
	parser := &stubPDFParser{texts: map[string]string{
		"/uploads/jd.pdf": "Senior Engineer, 5+ years Python",
	}}

	gemini := candidateFlowMock()
	analyzer := NewAnalyzerService(
		analysisRepo,
		docRepo,
		parser,
		NewSummarizerService(gemini),
		NewEvaluatorService(gemini, 1),
		NewSuggestionService(gemini, 1),
	)

	err := analyzer.RunAnalysis(context.Background(), analysis.ID)
	require.Error(t, err)

	stored := analysisRepo.analyses[analysis.ID]
	assert.Equal(t, models.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "Failed to parse CV")
	assert.Contains(t, *stored.ErrorMessage, "no text content found in PDF")
}

func TestRunAnalysis_MissingDocumentFails(t *testing.T) {
	analyzer, repo, analysisID := newTestAnalyzer(candidateFlowMock(), models.ModeCandidate)

	// Point the analysis at a document that was never uploaded.
	broken := repo.analyses[analysisID]
	broken.JDDocumentID = uuid.New()

	err := analyzer.RunAnalysis(context.Background(), analysisID)
	require.Error(t, err)
	assert.Equal(t, models.StatusFailed, repo.analyses[analysisID].Status)
	require.NotNil(t, repo.analyses[analysisID].ErrorMessage)
}

func TestGenerateRewrite_EndToEnd(t *testing.T) {
	analyzer, repo, analysisID := newTestAnalyzer(candidateFlowMock(), models.ModeCandidate)

	require.NoError(t, analyzer.RunAnalysis(context.Background(), analysisID))

	rewritten, err := analyzer.GenerateRewrite(context.Background(), analysisID)
	require.NoError(t, err)

	assert.NotEmpty(t, rewritten)
	assert.NotEqual(t, "3 years Python, no cloud experience", rewritten)

	stored := repo.analyses[analysisID]
	require.NotNil(t, stored.RewrittenCV)
	assert.Equal(t, rewritten, *stored.RewrittenCV)
}

func TestGenerateRewrite_RequiresCompletedCandidateAnalysis(t *testing.T) {
	analyzer, repo, analysisID := newTestAnalyzer(candidateFlowMock(), models.ModeCandidate)

	// Still queued: nothing to rewrite yet.
	_, err := analyzer.GenerateRewrite(context.Background(), analysisID)
	assert.ErrorIs(t, err, ErrMissingInput)

	// Hiring analyses never get a rewrite.
	repo.analyses[analysisID].Mode = models.ModeHiring
	repo.analyses[analysisID].Status = models.StatusCompleted
	_, err = analyzer.GenerateRewrite(context.Background(), analysisID)
	assert.ErrorIs(t, err, ErrMissingInput)
}
