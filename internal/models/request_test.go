package models

import (
	"errors"
	"testing"
)

func validFeedbackRequest() *CreateFeedbackRequest {
	return &CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		Transcript: []TranscriptMessage{
			{Role: RoleAssistant, Content: "Hello"},
			{Role: RoleUser, Content: "Hi"},
		},
	}
}

func TestCreateFeedbackRequestValid(t *testing.T) {
	if err := validFeedbackRequest().Validate(); err != nil {
		t.Fatalf("expected valid request: %v", err)
	}
}

func TestCreateFeedbackRequestMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateFeedbackRequest)
		code   string
	}{
		{"missing interview id", func(r *CreateFeedbackRequest) { r.InterviewID = "" }, "missing_interview_id"},
		{"missing user id", func(r *CreateFeedbackRequest) { r.UserID = "" }, "missing_user_id"},
		{"empty transcript", func(r *CreateFeedbackRequest) { r.Transcript = nil }, "missing_transcript"},
		{"invalid role", func(r *CreateFeedbackRequest) { r.Transcript[0].Role = "narrator" }, "invalid_role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validFeedbackRequest()
			tc.mutate(req)
			err := req.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var errResp *ErrorResponse
			if !errors.As(err, &errResp) || errResp.Code != tc.code {
				t.Fatalf("expected code %q, got %v", tc.code, err)
			}
		})
	}
}

func TestScoreTranscriptRequestValidate(t *testing.T) {
	req := &ScoreTranscriptRequest{FormattedTranscript: "- user: hi\n"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request: %v", err)
	}
	if err := (&ScoreTranscriptRequest{FormattedTranscript: "   "}).Validate(); err == nil {
		t.Fatalf("expected error for blank transcript")
	}
}

func TestGenerateInterviewRequestDefaults(t *testing.T) {
	req := &GenerateInterviewRequest{Role: "Developer", UserID: "u-1"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request: %v", err)
	}
	if req.Type != DefaultType {
		t.Fatalf("expected default type, got %q", req.Type)
	}
	if req.Amount != DefaultAmount {
		t.Fatalf("expected default amount, got %d", req.Amount)
	}
	if req.Techstack != DefaultTechstack {
		t.Fatalf("expected default techstack, got %q", req.Techstack)
	}
}

func TestGenerateInterviewRequestInvalid(t *testing.T) {
	if err := (&GenerateInterviewRequest{UserID: "u-1"}).Validate(); err == nil {
		t.Fatalf("expected error for missing role")
	}
	if err := (&GenerateInterviewRequest{Role: "Dev"}).Validate(); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if err := (&GenerateInterviewRequest{Role: "Dev", UserID: "u-1", Type: "trivia"}).Validate(); err == nil {
		t.Fatalf("expected error for invalid type")
	}
	if err := (&GenerateInterviewRequest{Role: "Dev", UserID: "u-1", Amount: 50}).Validate(); err == nil {
		t.Fatalf("expected error for excessive amount")
	}
}
