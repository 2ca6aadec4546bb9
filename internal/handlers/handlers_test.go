package handlers

import (
	"context"
	"errors"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
)

const assessmentJSON = `{
	"totalScore": 72,
	"categoryScores": [
		{"name": "Communication Skills", "score": 80, "comment": "Clear."},
		{"name": "Technical Knowledge", "score": 70, "comment": "Solid."},
		{"name": "Problem Solving", "score": 68, "comment": "Fine."},
		{"name": "Cultural Fit", "score": 75, "comment": "Good."},
		{"name": "Confidence and Clarity", "score": 67, "comment": "Okay."}
	],
	"strengths": ["Clear communication"],
	"areasForImprovement": ["System design"],
	"finalAssessment": "Solid performance."
}`

type mockProvider struct {
	generateTextFn func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error)
}

func (m *mockProvider) GenerateText(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	if m.generateTextFn == nil {
		return &models.GenerationResponse{Content: assessmentJSON}, nil
	}
	return m.generateTextFn(ctx, prompt, requestID)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct{}

func (m *mockPromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	return "mock prompt", nil
}

func (m *mockPromptManager) GetTemplates() map[string]string {
	return map[string]string{"feedback": "mock", "interviewer": "mock"}
}

type mockFeedbackRepo struct {
	byKey     map[string]*models.Feedback
	upsertErr error
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{byKey: make(map[string]*models.Feedback)}
}

func (m *mockFeedbackRepo) Upsert(ctx context.Context, feedback *models.Feedback) (string, error) {
	if m.upsertErr != nil {
		return "", m.upsertErr
	}
	if feedback.ID == "" {
		feedback.ID = "fb-new"
	}
	m.byKey[feedback.InterviewID+"/"+feedback.UserID] = feedback
	return feedback.ID, nil
}

func (m *mockFeedbackRepo) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	if fb, ok := m.byKey[interviewID+"/"+userID]; ok {
		return fb, nil
	}
	return nil, repositories.ErrNotFound
}

type mockInterviewRepo struct {
	byID      map[string]*models.Interview
	createErr error
	deleteErr error
}

func newMockInterviewRepo() *mockInterviewRepo {
	return &mockInterviewRepo{byID: make(map[string]*models.Interview)}
}

func (m *mockInterviewRepo) Create(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if interview.ID == "" {
		interview.ID = "iv-new"
	}
	m.byID[interview.ID] = interview
	return interview, nil
}

func (m *mockInterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	if iv, ok := m.byID[id]; ok {
		return iv, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockInterviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	var out []models.Interview
	for _, iv := range m.byID {
		if iv.UserID == userID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (m *mockInterviewRepo) ListLatest(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error) {
	var out []models.Interview
	for _, iv := range m.byID {
		if iv.Finalized && iv.UserID != excludeUserID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (m *mockInterviewRepo) Delete(ctx context.Context, interviewID, userID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	iv, ok := m.byID[interviewID]
	if !ok {
		return repositories.ErrNotFound
	}
	if iv.UserID != userID {
		return errors.New("not the interview owner")
	}
	delete(m.byID, interviewID)
	return nil
}
