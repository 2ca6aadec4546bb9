package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/transport"
)

// Status is the call lifecycle state. FINISHED is terminal: a new call
// requires a new Agent.
type Status string

const (
	StatusInactive   Status = "INACTIVE"
	StatusConnecting Status = "CONNECTING"
	StatusActive     Status = "ACTIVE"
	StatusFinished   Status = "FINISHED"
)

// Purpose selects the downstream action when a session finishes.
type Purpose string

const (
	// PurposeInterview runs the prepared questions and hands the transcript
	// to the feedback pipeline on completion.
	PurposeInterview Purpose = "interview"
	// PurposeGenerate runs the generation workflow and creates an interview
	// record on completion.
	PurposeGenerate Purpose = "generate"
)

// Notifier receives UI-facing output from the session. Implementations must
// not call back into the Agent.
type Notifier interface {
	StatusChanged(status Status)
	TranscriptAppended(msg models.TranscriptMessage)
	SpeakingChanged(speaking bool)
	Toast(kind, message string)
	SessionCompleted(outcome Outcome)
}

// Outcome describes the downstream result of a finished session.
type Outcome struct {
	Purpose     Purpose `json:"purpose"`
	Success     bool    `json:"success"`
	FeedbackID  string  `json:"feedbackId,omitempty"`
	InterviewID string  `json:"interviewId,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// Recorder mirrors session lifecycle into an external registry. A nil
// recorder is allowed.
type Recorder interface {
	CallStarted(sessionID, userID, interviewID string, purpose Purpose)
	CallStatus(sessionID string, status Status)
	CallEnded(sessionID string)
}

// FeedbackCreator is the feedback pipeline's entry point.
type FeedbackCreator interface {
	CreateFeedback(ctx context.Context, req *models.CreateFeedbackRequest) models.FeedbackResult
}

// InterviewCreator persists an interview synthesized from a generation
// conversation.
type InterviewCreator interface {
	CreateFromConversation(ctx context.Context, userID string, messages []models.TranscriptMessage) (*models.Interview, error)
}

// AgentConfig configures one session.
type AgentConfig struct {
	SessionID   string
	UserID      string
	UserName    string
	InterviewID string
	FeedbackID  string
	Purpose     Purpose
	Questions   []string

	// system prompt for the interviewer call, with {{.Questions}} already
	// resolved by the caller via the prompt manager
	InterviewerPrompt string
	// workflow id for generation calls
	WorkflowID string
	// when true, the external workflow persists the interview and the
	// session only reports completion
	DeferGeneration bool

	InactivityTimeout time.Duration
	InactivityPoll    time.Duration
	GracePeriod       time.Duration
}

// Agent is the call lifecycle state machine for one live voice session. It
// owns the session state exclusively; every event handler runs to
// completion under one mutex, so updates never interleave. All timers live
// in a single registry that is cleared atomically on any exit from ACTIVE
// or entry to FINISHED, so no timer can fire into a dead session.
type Agent struct {
	cfg       AgentConfig
	client    transport.CallClient
	feedback  FeedbackCreator
	generator InterviewCreator
	notifier  Notifier
	recorder  Recorder
	logger    *zap.Logger

	mu            sync.Mutex
	status        Status
	messages      []models.TranscriptMessage
	tracker       *progressTracker
	lastActivity  time.Time
	speaking      bool
	finishHandled bool
	stopIssued    bool

	inactivityTicker *time.Ticker
	inactivityDone   chan struct{}
	graceTimer       *time.Timer

	now func() time.Time
}

func NewAgent(cfg AgentConfig, client transport.CallClient, feedback FeedbackCreator, generator InterviewCreator, notifier Notifier, recorder Recorder, logger *zap.Logger) *Agent {
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.New().String()
	}
	if cfg.InactivityTimeout <= 0 {
		cfg.InactivityTimeout = 10 * time.Second
	}
	if cfg.InactivityPoll <= 0 {
		cfg.InactivityPoll = 5 * time.Second
	}
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 15 * time.Second
	}
	return &Agent{
		cfg:       cfg,
		client:    client,
		feedback:  feedback,
		generator: generator,
		notifier:  notifier,
		recorder:  recorder,
		logger:    logger,
		status:    StatusInactive,
		tracker:   newProgressTracker(len(cfg.Questions)),
		now:       time.Now,
	}
}

func (a *Agent) SessionID() string { return a.cfg.SessionID }

// Snapshot is a consistent copy of the session state for handlers and tests.
type Snapshot struct {
	Status               Status
	Messages             []models.TranscriptMessage
	CurrentQuestionIndex int
	TotalQuestions       int
	Speaking             bool
}

func (a *Agent) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	msgs := make([]models.TranscriptMessage, len(a.messages))
	copy(msgs, a.messages)
	return Snapshot{
		Status:               a.status,
		Messages:             msgs,
		CurrentQuestionIndex: a.tracker.current,
		TotalQuestions:       a.tracker.total,
		Speaking:             a.speaking,
	}
}

// StartCall issues the external call-start request and moves the session to
// CONNECTING. A start failure aborts back to INACTIVE.
func (a *Agent) StartCall(ctx context.Context) error {
	a.mu.Lock()
	if a.status != StatusInactive {
		a.mu.Unlock()
		return nil
	}
	a.setStatusLocked(StatusConnecting)
	opts := a.callOptionsLocked()
	a.mu.Unlock()

	if err := a.client.Start(ctx, opts); err != nil {
		a.logger.Error("Call start failed",
			zap.Error(err),
			zap.String("session_id", a.cfg.SessionID))

		a.mu.Lock()
		a.setStatusLocked(StatusInactive)
		a.mu.Unlock()

		if a.cfg.Purpose == PurposeGenerate {
			a.notifier.Toast("error", "Failed to start interview generation. Please check your call configuration.")
		} else {
			a.notifier.Toast("error", "Failed to start interview. Please try again.")
		}
		return err
	}

	if a.recorder != nil {
		a.recorder.CallStarted(a.cfg.SessionID, a.cfg.UserID, a.cfg.InterviewID, a.cfg.Purpose)
	}
	return nil
}

func (a *Agent) callOptionsLocked() transport.CallOptions {
	if a.cfg.Purpose == PurposeGenerate {
		return transport.CallOptions{
			WorkflowID: a.cfg.WorkflowID,
			VariableValues: map[string]string{
				"username": a.cfg.UserName,
				"userid":   a.cfg.UserID,
			},
		}
	}

	formatted := make([]string, len(a.cfg.Questions))
	for i, q := range a.cfg.Questions {
		formatted[i] = "- " + q
	}
	return transport.CallOptions{
		Assistant: &transport.AssistantConfig{
			SystemPrompt: a.cfg.InterviewerPrompt,
			FirstMessage: "Hello! Thank you for taking the time to speak with me today. I'm excited to learn more about you and your experience.",
		},
		VariableValues: map[string]string{
			"questions": strings.Join(formatted, "\n"),
		},
	}
}

// Disconnect is the explicit user end-call action. From ACTIVE it completes
// the session; from CONNECTING it aborts it.
func (a *Agent) Disconnect() {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.status {
	case StatusActive:
		a.finishLocked(true)
	case StatusConnecting:
		a.stopTransportLocked()
		a.setStatusLocked(StatusInactive)
	}
}

// HandleEvent processes one transport event. Handlers run to completion
// under the session mutex.
func (a *Agent) HandleEvent(ev transport.Event) {
	switch ev.Type {
	case transport.EventCallStart:
		a.onCallStart()
	case transport.EventCallEnd:
		a.onCallEnd()
	case transport.EventMessage:
		a.onMessage(ev)
	case transport.EventSpeechStart:
		a.onSpeechStart()
	case transport.EventSpeechEnd:
		a.onSpeechEnd()
	case transport.EventError:
		a.onError(ev.Error)
	default:
		a.logger.Debug("Ignoring unknown transport event",
			zap.String("type", ev.Type),
			zap.String("session_id", a.cfg.SessionID))
	}
}

func (a *Agent) onCallStart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusConnecting {
		return
	}
	a.lastActivity = a.now()
	a.setStatusLocked(StatusActive)
	a.startInactivityMonitorLocked()
}

func (a *Agent) onCallEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusActive && a.status != StatusConnecting {
		return
	}
	// transport already ended the call, no second stop
	a.finishLocked(false)
}

func (a *Agent) onMessage(ev transport.Event) {
	if ev.MessageType != transport.MessageTypeTranscript || ev.TranscriptType != transport.TranscriptFinal {
		// interim transcripts have no state effect
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusActive {
		return
	}

	a.lastActivity = a.now()
	msg := models.TranscriptMessage{Role: ev.Role, Content: ev.Transcript}
	a.messages = append(a.messages, msg)
	a.notifier.TranscriptAppended(msg)

	if ev.Role == models.RoleAssistant && a.tracker.remaining() {
		if matchesPreparedQuestion(ev.Transcript, a.cfg.Questions) {
			a.tracker.advance()
			a.logger.Info("Prepared question asked",
				zap.Int("question", a.tracker.current),
				zap.Int("total", a.tracker.total),
				zap.String("session_id", a.cfg.SessionID))
		}
	}

	// once the question list is exhausted, the user's reply to the final
	// question schedules termination after the grace period
	if a.tracker.exhausted() && ev.Role == models.RoleUser {
		a.scheduleGraceTerminationLocked()
	}
}

func (a *Agent) onSpeechStart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusActive {
		return
	}
	a.lastActivity = a.now()
	a.speaking = true
	a.notifier.SpeakingChanged(true)
}

func (a *Agent) onSpeechEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speaking = false
	a.notifier.SpeakingChanged(false)
}

func (a *Agent) onError(callErr *transport.CallError) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ClassifyCallError(callErr) == TerminationRemoteEnded {
		a.logger.Info("Call ended by workflow, treating as normal completion",
			zap.String("session_id", a.cfg.SessionID))
		if a.status == StatusActive || a.status == StatusConnecting {
			// remote side already tore the call down
			a.stopIssued = true
			a.finishLocked(false)
		}
		return
	}

	if a.status != StatusActive && a.status != StatusConnecting {
		return
	}
	a.logger.Error("Unexpected transport error",
		zap.String("error", callErr.Error()),
		zap.String("session_id", a.cfg.SessionID))
	a.clearTimersLocked()
	a.setStatusLocked(StatusInactive)
	a.notifier.Toast("error", "An error occurred during the call. Please try again.")
}

// Teardown releases the session's resources. Called when the owning
// connection goes away.
func (a *Agent) Teardown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clearTimersLocked()
	if a.status == StatusActive || a.status == StatusConnecting {
		a.stopTransportLocked()
	}
	if a.recorder != nil {
		a.recorder.CallEnded(a.cfg.SessionID)
	}
}

func (a *Agent) setStatusLocked(status Status) {
	if a.status == status {
		return
	}
	a.status = status
	a.notifier.StatusChanged(status)
	if a.recorder != nil {
		a.recorder.CallStatus(a.cfg.SessionID, status)
	}
}

// finishLocked performs the ACTIVE -> FINISHED transition. Timers are
// cleared first so neither the inactivity monitor nor a pending grace
// callback can fire again, whichever path got here first.
func (a *Agent) finishLocked(stopTransport bool) {
	if a.status == StatusFinished {
		return
	}
	a.clearTimersLocked()
	if stopTransport {
		a.stopTransportLocked()
	}
	a.setStatusLocked(StatusFinished)

	if a.finishHandled {
		return
	}
	a.finishHandled = true

	transcript := make([]models.TranscriptMessage, len(a.messages))
	copy(transcript, a.messages)
	go a.handleFinished(transcript)
}

func (a *Agent) stopTransportLocked() {
	if a.stopIssued {
		return
	}
	a.stopIssued = true
	if err := a.client.Stop(); err != nil {
		a.logger.Warn("Transport stop failed",
			zap.Error(err),
			zap.String("session_id", a.cfg.SessionID))
	}
}

// handleFinished fires the one downstream action for a finished session.
func (a *Agent) handleFinished(transcript []models.TranscriptMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if a.cfg.Purpose == PurposeGenerate {
		a.handleGenerate(ctx, transcript)
		return
	}

	result := a.feedback.CreateFeedback(ctx, &models.CreateFeedbackRequest{
		InterviewID: a.cfg.InterviewID,
		UserID:      a.cfg.UserID,
		Transcript:  transcript,
		FeedbackID:  a.cfg.FeedbackID,
	})

	outcome := Outcome{
		Purpose:     PurposeInterview,
		Success:     result.Success,
		FeedbackID:  result.FeedbackID,
		InterviewID: a.cfg.InterviewID,
		Message:     result.Message,
	}
	if !result.Success {
		a.notifier.Toast("error", "Failed to generate feedback")
	} else {
		a.notifier.Toast("success", "Feedback generated successfully!")
	}
	a.notifier.SessionCompleted(outcome)
}

func (a *Agent) handleGenerate(ctx context.Context, transcript []models.TranscriptMessage) {
	if a.cfg.DeferGeneration || a.generator == nil {
		// the external workflow persisted the interview
		a.notifier.SessionCompleted(Outcome{Purpose: PurposeGenerate, Success: true})
		return
	}

	interview, err := a.generator.CreateFromConversation(ctx, a.cfg.UserID, transcript)
	if err != nil {
		a.notifier.Toast("error", "Failed to generate interview. Please try again.")
		a.notifier.SessionCompleted(Outcome{Purpose: PurposeGenerate, Success: false, Message: err.Error()})
		return
	}
	a.notifier.Toast("success", "Interview generated successfully!")
	a.notifier.SessionCompleted(Outcome{Purpose: PurposeGenerate, Success: true, InterviewID: interview.ID})
}
