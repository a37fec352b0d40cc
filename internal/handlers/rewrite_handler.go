package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/jd-analyzer/internal/models"
	"resumatch/jd-analyzer/internal/services"
)

type RewriteHandler struct {
	analyzer services.AnalyzerService
}

func NewRewriteHandler(analyzer services.AnalyzerService) *RewriteHandler {
	return &RewriteHandler{
		analyzer: analyzer,
	}
}

// HandleRewrite handles POST /result/:id/rewrite. It runs synchronously:
// the rewrite is a single completion call triggered by an explicit user
// action on a completed candidate analysis.
func (h *RewriteHandler) HandleRewrite(c *fiber.Ctx) error {
	idParam := c.Params("id")
	analysisID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	rewritten, err := h.analyzer.GenerateRewrite(c.Context(), analysisID)
	if err != nil {
		if errors.Is(err, services.ErrMissingInput) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate rewritten CV",
		})
	}

	return c.JSON(models.RewriteResponse{
		ID:          analysisID.String(),
		RewrittenCV: rewritten,
	})
}
