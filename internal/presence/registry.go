package presence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/session"
)

const (
	sessionKeyPrefix = "session:"
	eventsChannel    = "session:events"
	// sessions are short-lived; the TTL only guards against keys leaked by
	// a crashed instance
	sessionTTL = 2 * time.Hour
)

// LifecycleEvent is published on the session events channel at every
// transition, so other instances and dashboards can follow live calls.
type LifecycleEvent struct {
	Type      string    `json:"type"` // "call-started" | "call-status" | "call-ended"
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionInfo is the stored state of one live session.
type SessionInfo struct {
	SessionID   string `json:"sessionId"`
	UserID      string `json:"userId"`
	InterviewID string `json:"interviewId"`
	Purpose     string `json:"purpose"`
	Status      string `json:"status"`
	StartedAt   string `json:"startedAt"`
}

// Registry tracks live voice sessions in redis, one hash per session.
type Registry struct {
	rdb    *redis.Client
	ctx    context.Context
	logger *zap.Logger
}

func NewRegistry(rdb *redis.Client, logger *zap.Logger) *Registry {
	return &Registry{
		rdb:    rdb,
		ctx:    context.Background(),
		logger: logger,
	}
}

func (r *Registry) CallStarted(sessionID, userID, interviewID string, purpose session.Purpose) {
	key := sessionKeyPrefix + sessionID
	err := r.rdb.HSet(r.ctx, key, map[string]interface{}{
		"userId":      userID,
		"interviewId": interviewID,
		"purpose":     string(purpose),
		"status":      string(session.StatusConnecting),
		"startedAt":   time.Now().UTC().Format(time.RFC3339),
	}).Err()
	if err != nil {
		r.logger.Warn("Failed to record session start", zap.Error(err), zap.String("session_id", sessionID))
		return
	}
	r.rdb.Expire(r.ctx, key, sessionTTL)
	r.publish(LifecycleEvent{Type: "call-started", SessionID: sessionID, UserID: userID})
}

func (r *Registry) CallStatus(sessionID string, status session.Status) {
	key := sessionKeyPrefix + sessionID
	if err := r.rdb.HSet(r.ctx, key, "status", string(status)).Err(); err != nil {
		r.logger.Warn("Failed to record session status", zap.Error(err), zap.String("session_id", sessionID))
		return
	}
	r.publish(LifecycleEvent{Type: "call-status", SessionID: sessionID, Status: string(status)})
}

func (r *Registry) CallEnded(sessionID string) {
	if err := r.rdb.Del(r.ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		r.logger.Warn("Failed to remove session", zap.Error(err), zap.String("session_id", sessionID))
	}
	r.publish(LifecycleEvent{Type: "call-ended", SessionID: sessionID})
}

// ListActive returns the sessions currently tracked by this registry.
func (r *Registry) ListActive(ctx context.Context) ([]SessionInfo, error) {
	keys, err := r.rdb.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	out := make([]SessionInfo, 0, len(keys))
	for _, key := range keys {
		fields, err := r.rdb.HGetAll(ctx, key).Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		out = append(out, SessionInfo{
			SessionID:   key[len(sessionKeyPrefix):],
			UserID:      fields["userId"],
			InterviewID: fields["interviewId"],
			Purpose:     fields["purpose"],
			Status:      fields["status"],
			StartedAt:   fields["startedAt"],
		})
	}
	return out, nil
}

func (r *Registry) publish(event LifecycleEvent) {
	event.Timestamp = time.Now().UTC()
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := r.rdb.Publish(r.ctx, eventsChannel, data).Err(); err != nil {
		r.logger.Warn("Failed to publish session event", zap.Error(err), zap.String("session_id", event.SessionID))
	}
}
