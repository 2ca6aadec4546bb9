package models

// GenerationResponse is the raw output of one text-generation call.
type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

// additional information about the generation
type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}
