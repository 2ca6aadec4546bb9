package models

// CategoryScore is one scored category inside a feedback record. Order is
// significant and fixed by FeedbackCategories.
type CategoryScore struct {
	Name    string `json:"name" bson:"name"`
	Score   int    `json:"score" bson:"score"`
	Comment string `json:"comment" bson:"comment"`
}

// Feedback is the persisted assessment for one (interview, user) pair.
// At most one document exists per pair; a known feedback id is overwritten
// in place, otherwise a new document is created.
type Feedback struct {
	ID                  string          `json:"id" bson:"_id"`
	InterviewID         string          `json:"interviewId" bson:"interviewId"`
	UserID              string          `json:"userId" bson:"userId"`
	TotalScore          int             `json:"totalScore" bson:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores" bson:"categoryScores"`
	Strengths           []string        `json:"strengths" bson:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement" bson:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment" bson:"finalAssessment"`
	CreatedAt           string          `json:"createdAt" bson:"createdAt"`
}

// ScoredAssessment is the structured output expected from the scoring model,
// before ids and timestamps are stamped on.
type ScoredAssessment struct {
	TotalScore          int             `json:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment"`
}

// TranscriptMessage is one finalized utterance from the voice call.
type TranscriptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FeedbackResult is returned by the feedback pipeline.
type FeedbackResult struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
	Message    string `json:"message,omitempty"`
}
