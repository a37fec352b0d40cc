package handlers

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/jd-analyzer/internal/models"
	"resumatch/jd-analyzer/internal/repositories"
	"resumatch/jd-analyzer/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. It accepts the job description under
// the "jd" field and the candidate CV under "cv", both as PDF files.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	for _, docType := range []string{services.DocTypeJD, services.DocTypeCV} {
		uploaded, exists := files[docType]
		if !exists || len(uploaded) == 0 {
			continue
		}

		response, err := h.saveDocument(uploaded[0], docType)
		if err != nil {
			return err.respond(c)
		}

		responses = append(responses, *response)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'jd' and/or 'cv' as PDF files.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

type uploadError struct {
	status  int
	message string
}

func (e *uploadError) respond(c *fiber.Ctx) error {
	return c.Status(e.status).JSON(fiber.Map{"error": e.message})
}

func (h *UploadHandler) saveDocument(file *multipart.FileHeader, docType string) (*models.UploadResponse, *uploadError) {
	if file.Size > h.maxFileSize {
		return nil, &uploadError{
			status:  fiber.StatusBadRequest,
			message: fmt.Sprintf("%s file too large. Max size: %d bytes", docType, h.maxFileSize),
		}
	}

	filename, filePath, err := h.storageService.SaveFile(file, docType)
	if err != nil {
		return nil, &uploadError{
			status:  fiber.StatusInternalServerError,
			message: fmt.Sprintf("failed to save %s file: %v", docType, err),
		}
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         docType,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, &uploadError{
			status:  fiber.StatusInternalServerError,
			message: fmt.Sprintf("failed to save %s document record: %v", docType, err),
		}
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		FileType:     doc.FileType,
	}, nil
}
