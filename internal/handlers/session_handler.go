package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/config"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/metrics"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/prompts"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/session"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/transport"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/utils"
)

// SessionHandler bridges the browser's voice-SDK event stream to a
// server-side session Agent over a WebSocket. Inbound frames are control
// actions ("start-call", "disconnect") or raw transport events; outbound
// frames carry status, transcript, notifications and call commands for the
// SDK.
type SessionHandler struct {
	upgrader   websocket.Upgrader
	interviews repositories.InterviewRepository
	feedback   repositories.FeedbackRepository
	pipeline   session.FeedbackCreator
	generator  session.InterviewCreator
	prompts    prompts.PromptProvider
	recorder   session.Recorder
	cfg        *config.Config
	logger     *zap.Logger
}

func NewSessionHandler(
	interviews repositories.InterviewRepository,
	feedback repositories.FeedbackRepository,
	pipeline session.FeedbackCreator,
	gen session.InterviewCreator,
	promptManager prompts.PromptProvider,
	recorder session.Recorder,
	cfg *config.Config,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		interviews: interviews,
		feedback:   feedback,
		pipeline:   pipeline,
		generator:  gen,
		prompts:    promptManager,
		recorder:   recorder,
		cfg:        cfg,
		logger:     logger,
	}
}

// wsConn serializes writes; the Agent's timers and handoff goroutine write
// concurrently with the read loop's handlers.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// wsCallClient relays call start/stop commands to the voice SDK held by the
// browser.
type wsCallClient struct {
	conn   *wsConn
	logger *zap.Logger
}

func (c *wsCallClient) Start(ctx context.Context, opts transport.CallOptions) error {
	return c.conn.WriteJSON(map[string]interface{}{
		"type":    "call-command",
		"command": "start",
		"options": opts,
	})
}

func (c *wsCallClient) Stop() error {
	return c.conn.WriteJSON(map[string]interface{}{
		"type":    "call-command",
		"command": "stop",
	})
}

// wsNotifier delivers session output to the client.
type wsNotifier struct {
	conn   *wsConn
	logger *zap.Logger
}

func (n *wsNotifier) StatusChanged(status session.Status) {
	n.send(map[string]interface{}{"type": "status", "status": status})
}

func (n *wsNotifier) TranscriptAppended(msg models.TranscriptMessage) {
	n.send(map[string]interface{}{"type": "transcript", "role": msg.Role, "content": msg.Content})
}

func (n *wsNotifier) SpeakingChanged(speaking bool) {
	n.send(map[string]interface{}{"type": "speaking", "speaking": speaking})
}

func (n *wsNotifier) Toast(kind, message string) {
	n.send(map[string]interface{}{"type": "toast", "kind": kind, "message": message})
}

func (n *wsNotifier) SessionCompleted(outcome session.Outcome) {
	n.send(map[string]interface{}{"type": "completed", "outcome": outcome})
}

func (n *wsNotifier) send(frame map[string]interface{}) {
	if err := n.conn.WriteJSON(frame); err != nil {
		n.logger.Debug("Failed to write session frame", zap.Error(err))
	}
}

// clientFrame is one inbound WebSocket message.
type clientFrame struct {
	Type string `json:"type"`

	MessageType    string `json:"messageType,omitempty"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Role           string `json:"role,omitempty"`
	Transcript     string `json:"transcript,omitempty"`

	Error *transport.CallError `json:"error,omitempty"`
}

func (f *clientFrame) event() transport.Event {
	return transport.Event{
		Type:           f.Type,
		MessageType:    f.MessageType,
		TranscriptType: f.TranscriptType,
		Role:           f.Role,
		Transcript:     f.Transcript,
		Error:          f.Error,
	}
}

// InterviewSessionWS runs a question-asking session for an existing
// interview.
func (h *SessionHandler) InterviewSessionWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	interviewID := chi.URLParam(r, "interviewId")
	interview, err := h.interviews.GetByID(r.Context(), interviewID)
	if err == repositories.ErrNotFound {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "interview_not_found",
			Message: "Interview not found",
		})
		return
	}
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to load interview",
		})
		return
	}

	// a retake overwrites the existing feedback document
	feedbackID := ""
	if existing, err := h.feedback.GetByInterviewAndUser(r.Context(), interviewID, claims.UserID); err == nil {
		feedbackID = existing.ID
	}

	formatted := make([]string, len(interview.Questions))
	for i, q := range interview.Questions {
		formatted[i] = "- " + q
	}
	interviewerPrompt, err := h.prompts.BuildPrompt("interviewer", map[string]string{
		"Questions": strings.Join(formatted, "\n"),
	})
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "prompt_error",
			Message: "Failed to build interviewer prompt",
		})
		return
	}

	h.runSession(w, r, session.AgentConfig{
		UserID:            claims.UserID,
		UserName:          claims.UserName,
		InterviewID:       interviewID,
		FeedbackID:        feedbackID,
		Purpose:           session.PurposeInterview,
		Questions:         interview.Questions,
		InterviewerPrompt: interviewerPrompt,
		InactivityTimeout: h.cfg.InactivityTimeout,
		InactivityPoll:    h.cfg.InactivityPoll,
		GracePeriod:       h.cfg.GracePeriod,
	})
}

// GenerateSessionWS runs a generation-workflow session that produces a new
// interview record.
func (h *SessionHandler) GenerateSessionWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	h.runSession(w, r, session.AgentConfig{
		UserID:            claims.UserID,
		UserName:          claims.UserName,
		Purpose:           session.PurposeGenerate,
		WorkflowID:        h.cfg.WorkflowID,
		DeferGeneration:   h.cfg.GenerateMode == config.ModeWorkflow,
		InactivityTimeout: h.cfg.InactivityTimeout,
		InactivityPoll:    h.cfg.InactivityPoll,
		GracePeriod:       h.cfg.GracePeriod,
	})
}

func (h *SessionHandler) runSession(w http.ResponseWriter, r *http.Request, cfg session.AgentConfig) {
	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer raw.Close()

	conn := &wsConn{conn: raw}
	client := &wsCallClient{conn: conn, logger: h.logger}
	notifier := &wsNotifier{conn: conn, logger: h.logger}

	agent := session.NewAgent(cfg, client, h.pipeline, h.generator, notifier, h.recorder, h.logger)
	defer agent.Teardown()

	metrics.SessionOpened()
	defer metrics.SessionClosed()

	h.logger.Info("Session opened",
		zap.String("session_id", agent.SessionID()),
		zap.String("user_id", cfg.UserID),
		zap.String("purpose", string(cfg.Purpose)))

	for {
		var frame clientFrame
		if err := raw.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err), zap.String("session_id", agent.SessionID()))
			}
			break
		}

		switch frame.Type {
		case "start-call":
			_ = agent.StartCall(r.Context())
		case "disconnect":
			agent.Disconnect()
		default:
			agent.HandleEvent(frame.event())
		}
	}

	h.logger.Info("Session closed", zap.String("session_id", agent.SessionID()))
}

func (h *SessionHandler) authenticate(w http.ResponseWriter, r *http.Request) (*utils.UserClaims, bool) {
	// browsers cannot set headers on WebSocket dials, so the token may also
	// arrive as a query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		var err error
		token, err = utils.ExtractTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
				Code:    "unauthorized",
				Message: err.Error(),
			})
			return nil, false
		}
	}

	claims, err := utils.ValidateUserToken(token, []byte(h.cfg.JWTSecret))
	if err != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "unauthorized",
			Message: "invalid token",
		})
		return nil, false
	}
	return claims, true
}
