package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type AnalysisMode string

const (
	// ModeHiring produces a free-text fit evaluation for a recruiter.
	ModeHiring AnalysisMode = "hiring"
	// ModeCandidate produces a scored evaluation with gap-driven
	// suggestions and an optional CV rewrite.
	ModeCandidate AnalysisMode = "candidate"
)

type Analysis struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Mode         AnalysisMode   `gorm:"type:text;not null" json:"mode"`
	JDDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"jd_document_id"`
	CVDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"cv_document_id"`
	Status       AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`

	JDSummary      *string `gorm:"type:text" json:"jd_summary,omitempty"`
	CVSummary      *string `gorm:"type:text" json:"cv_summary,omitempty"`
	CVContent      *string `gorm:"type:text" json:"-"`
	EvaluationText *string `gorm:"type:text" json:"evaluation_text,omitempty"`
	Evaluation     *string `gorm:"type:jsonb" json:"evaluation,omitempty"`
	Report         *string `gorm:"type:text" json:"report,omitempty"`
	OverallScore   *int    `gorm:"type:integer" json:"overall_score,omitempty"`
	Band           *string `gorm:"type:text" json:"band,omitempty"`
	Suggestions    *string `gorm:"type:text" json:"suggestions,omitempty"`
	RewrittenCV    *string `gorm:"type:text" json:"rewritten_cv,omitempty"`
	ErrorMessage   *string `gorm:"type:text" json:"error_message,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	JDDocument Document `gorm:"foreignKey:JDDocumentID" json:"-"`
	CVDocument Document `gorm:"foreignKey:CVDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
