package models

import "strings"

// CreateFeedbackRequest drives the full feedback pipeline for a finished
// interview session.
type CreateFeedbackRequest struct {
	InterviewID string              `json:"interviewId"`
	UserID      string              `json:"userId"`
	Transcript  []TranscriptMessage `json:"transcript"`
	FeedbackID  string              `json:"feedbackId,omitempty"`
}

// implements the Validator interface
func (r *CreateFeedbackRequest) Validate() error {
	if r.InterviewID == "" {
		return &ErrorResponse{
			Code:    "missing_interview_id",
			Message: "interviewId field is required",
		}
	}
	if r.UserID == "" {
		return &ErrorResponse{
			Code:    "missing_user_id",
			Message: "userId field is required",
		}
	}
	if len(r.Transcript) == 0 {
		return &ErrorResponse{
			Code:    "missing_transcript",
			Message: "transcript must contain at least one message",
		}
	}
	for _, msg := range r.Transcript {
		if msg.Role != RoleUser && msg.Role != RoleSystem && msg.Role != RoleAssistant {
			return &ErrorResponse{
				Code:    "invalid_role",
				Message: "transcript roles must be one of: user, system, assistant",
			}
		}
	}
	return nil
}

// ScoreTranscriptRequest invokes the scoring model directly on an already
// formatted transcript block.
type ScoreTranscriptRequest struct {
	FormattedTranscript string `json:"formattedTranscript"`
}

func (r *ScoreTranscriptRequest) Validate() error {
	if strings.TrimSpace(r.FormattedTranscript) == "" {
		return &ErrorResponse{
			Code:    "missing_transcript",
			Message: "formattedTranscript field is required",
		}
	}
	return nil
}

// GenerateInterviewRequest creates an interview record from explicit
// parameters. Techstack is a comma-separated list.
type GenerateInterviewRequest struct {
	Type      string `json:"type"`
	Role      string `json:"role"`
	Level     string `json:"level"`
	Techstack string `json:"techstack"`
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
}

func (r *GenerateInterviewRequest) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return &ErrorResponse{
			Code:    "missing_role",
			Message: "role field is required",
		}
	}
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{
			Code:    "missing_user_id",
			Message: "userid field is required",
		}
	}
	if r.Type == "" {
		r.Type = DefaultType
	}
	if !ValidInterviewTypes[strings.ToLower(r.Type)] {
		return &ErrorResponse{
			Code:    "invalid_type",
			Message: "type must be one of: technical, behavioral, mixed",
		}
	}
	if r.Amount <= 0 {
		r.Amount = DefaultAmount
	}
	if r.Amount > 20 {
		return &ErrorResponse{
			Code:    "invalid_amount",
			Message: "amount must be between 1 and 20",
		}
	}
	if strings.TrimSpace(r.Techstack) == "" {
		r.Techstack = DefaultTechstack
	}
	return nil
}
