package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type AnalyzeRequest struct {
	Mode         string `json:"mode" validate:"required"`
	JDDocumentID string `json:"jd_document_id" validate:"required,uuid"`
	CVDocumentID string `json:"cv_document_id" validate:"required,uuid"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string        `json:"id"`
	Mode         string        `json:"mode"`
	Status       string        `json:"status"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

type AnalysisData struct {
	JDSummary      string  `json:"jd_summary"`
	CVSummary      string  `json:"cv_summary"`
	EvaluationText *string `json:"evaluation_text,omitempty"`
	Evaluation     *string `json:"evaluation,omitempty"`
	Report         *string `json:"report,omitempty"`
	OverallScore   *int    `json:"overall_score,omitempty"`
	Band           *string `json:"band,omitempty"`
	Suggestions    *string `json:"suggestions,omitempty"`
	RewrittenCV    *string `json:"rewritten_cv,omitempty"`
}

type RewriteResponse struct {
	ID          string `json:"id"`
	RewrittenCV string `json:"rewritten_cv"`
}
