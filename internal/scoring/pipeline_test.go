package scoring

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

type mockProvider struct {
	generateTextFn func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error)
}

func (m *mockProvider) GenerateText(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	if m.generateTextFn == nil {
		return &models.GenerationResponse{Content: validAssessmentJSON}, nil
	}
	return m.generateTextFn(ctx, prompt, requestID)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	buildPromptFn func(mode string, data map[string]string) (string, error)
}

func (m *mockPromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	if m.buildPromptFn == nil {
		return "mock prompt", nil
	}
	return m.buildPromptFn(mode, data)
}

func (m *mockPromptManager) GetTemplates() map[string]string {
	return map[string]string{"feedback": "mock"}
}

type mockFeedbackStore struct {
	byID      map[string]*models.Feedback
	upserts   int
	upsertErr error
}

func (m *mockFeedbackStore) Upsert(ctx context.Context, feedback *models.Feedback) (string, error) {
	if m.upsertErr != nil {
		return "", m.upsertErr
	}
	m.upserts++
	id := feedback.ID
	if id == "" {
		id = "generated-id"
	}
	saved := *feedback
	saved.ID = id
	if m.byID == nil {
		m.byID = make(map[string]*models.Feedback)
	}
	m.byID[id] = &saved
	return id, nil
}

func (m *mockFeedbackStore) single(t *testing.T) *models.Feedback {
	t.Helper()
	if len(m.byID) != 1 {
		t.Fatalf("expected one persisted document, got %d", len(m.byID))
	}
	for _, doc := range m.byID {
		return doc
	}
	return nil
}

func (m *mockFeedbackStore) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	return nil, errors.New("not implemented")
}

func newTestPipeline(provider *mockProvider, store *mockFeedbackStore) *Pipeline {
	return NewPipeline(provider, &mockPromptManager{}, store, zap.NewNop())
}

func fullTranscript() []models.TranscriptMessage {
	return []models.TranscriptMessage{
		{Role: models.RoleAssistant, Content: "What is your experience with Go?"},
		{Role: models.RoleUser, Content: "About three years, mostly backend services."},
		{Role: models.RoleAssistant, Content: "How do you approach testing?"},
		{Role: models.RoleUser, Content: "Table-driven tests and interfaces for seams."},
	}
}

func TestCreateFeedbackScoresFullTranscript(t *testing.T) {
	store := &mockFeedbackStore{}
	pipeline := newTestPipeline(&mockProvider{}, store)

	result := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		Transcript:  fullTranscript(),
	})

	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if result.FeedbackID != "generated-id" {
		t.Fatalf("expected generated id, got %q", result.FeedbackID)
	}
	saved := store.single(t)
	if saved.TotalScore != 72 {
		t.Fatalf("expected scored totalScore, got %d", saved.TotalScore)
	}
	if saved.CreatedAt == "" {
		t.Fatalf("expected createdAt to be stamped")
	}
}

func TestCreateFeedbackMinimalParticipation(t *testing.T) {
	providerCalled := false
	provider := &mockProvider{
		generateTextFn: func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
			providerCalled = true
			return &models.GenerationResponse{Content: validAssessmentJSON}, nil
		},
	}
	store := &mockFeedbackStore{}
	pipeline := newTestPipeline(provider, store)

	result := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		Transcript: []models.TranscriptMessage{
			{Role: models.RoleAssistant, Content: "Hello, shall we begin?"},
			{Role: models.RoleUser, Content: "Sorry, I have to go."},
			{Role: models.RoleAssistant, Content: "No problem."},
		},
	})

	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if providerCalled {
		t.Fatalf("expected scoring model to be skipped for minimal participation")
	}
	saved := store.single(t)
	if saved.TotalScore != 1 {
		t.Fatalf("expected minimal total score 1, got %d", saved.TotalScore)
	}
	if len(saved.CategoryScores) != len(models.FeedbackCategories) {
		t.Fatalf("expected all categories in minimal record, got %d", len(saved.CategoryScores))
	}
}

func TestCreateFeedbackReusesExistingID(t *testing.T) {
	store := &mockFeedbackStore{}
	pipeline := newTestPipeline(&mockProvider{}, store)

	result := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		FeedbackID:  "fb-existing",
		Transcript:  fullTranscript(),
	})

	if result.FeedbackID != "fb-existing" {
		t.Fatalf("expected retake to reuse feedback id, got %q", result.FeedbackID)
	}
}

func TestCreateFeedbackRetakeOverwritesSingleDocument(t *testing.T) {
	store := &mockFeedbackStore{}
	pipeline := newTestPipeline(&mockProvider{}, store)

	first := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		FeedbackID:  "fb-1",
		Transcript:  fullTranscript(),
	})
	if !first.Success {
		t.Fatalf("expected first attempt to succeed, got: %s", first.Message)
	}

	// retake with almost no participation replaces the scored record
	second := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		FeedbackID:  "fb-1",
		Transcript: []models.TranscriptMessage{
			{Role: models.RoleAssistant, Content: "Hello, shall we begin?"},
		},
	})
	if !second.Success {
		t.Fatalf("expected retake to succeed, got: %s", second.Message)
	}
	if second.FeedbackID != "fb-1" {
		t.Fatalf("expected retake to keep feedback id, got %q", second.FeedbackID)
	}

	if store.upserts != 2 {
		t.Fatalf("expected two upserts, got %d", store.upserts)
	}
	saved := store.single(t)
	if saved.TotalScore != 1 {
		t.Fatalf("expected the retake's record to win, got totalScore %d", saved.TotalScore)
	}
}

func TestCreateFeedbackScoringFailureDoesNotPersist(t *testing.T) {
	provider := &mockProvider{
		generateTextFn: func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}
	store := &mockFeedbackStore{}
	pipeline := newTestPipeline(provider, store)

	result := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		Transcript:  fullTranscript(),
	})

	if result.Success {
		t.Fatalf("expected failure when the scoring model errors")
	}
	if len(store.byID) != 0 {
		t.Fatalf("expected nothing persisted on scoring failure")
	}
}

func TestCreateFeedbackStoreFailure(t *testing.T) {
	store := &mockFeedbackStore{upsertErr: errors.New("write failed")}
	pipeline := newTestPipeline(&mockProvider{}, store)

	result := pipeline.CreateFeedback(context.Background(), &models.CreateFeedbackRequest{
		InterviewID: "iv-1",
		UserID:      "u-1",
		Transcript:  fullTranscript(),
	})

	if result.Success {
		t.Fatalf("expected failure when persistence fails")
	}
}

func TestScoreWithoutProvider(t *testing.T) {
	pipeline := NewPipeline(nil, &mockPromptManager{}, &mockFeedbackStore{}, zap.NewNop())
	if _, err := pipeline.Score(context.Background(), "- user: hi\n"); err == nil {
		t.Fatalf("expected error when no provider is configured")
	}
}

func TestFormatTranscript(t *testing.T) {
	formatted := FormatTranscript([]models.TranscriptMessage{
		{Role: models.RoleAssistant, Content: "Hello"},
		{Role: models.RoleUser, Content: "Hi"},
	})
	want := "- assistant: Hello\n- user: Hi\n"
	if formatted != want {
		t.Fatalf("unexpected format:\n%q\nwant:\n%q", formatted, want)
	}
}
