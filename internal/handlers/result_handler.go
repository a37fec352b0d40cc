package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/jd-analyzer/internal/models"
	"resumatch/jd-analyzer/internal/repositories"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	analysisID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Mode:   string(analysis.Mode),
		Status: string(analysis.Status),
	}

	if analysis.Status == models.StatusCompleted {
		response.Result = &models.AnalysisData{
			JDSummary:      derefString(analysis.JDSummary),
			CVSummary:      derefString(analysis.CVSummary),
			EvaluationText: analysis.EvaluationText,
			Evaluation:     analysis.Evaluation,
			Report:         analysis.Report,
			OverallScore:   analysis.OverallScore,
			Band:           analysis.Band,
			Suggestions:    analysis.Suggestions,
			RewrittenCV:    analysis.RewrittenCV,
		}
	}

	if analysis.Status == models.StatusFailed && analysis.ErrorMessage != nil {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
