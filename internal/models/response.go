package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// GenerateResponse is returned by the interview generation endpoint.
type GenerateResponse struct {
	Success     bool   `json:"success"`
	InterviewID string `json:"interviewId,omitempty"`
	Error       string `json:"error,omitempty"`
}
