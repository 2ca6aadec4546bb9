package transport

import (
	"context"
	"encoding/json"
)

// Event types emitted by the voice-call transport.
const (
	EventCallStart   = "call-start"
	EventCallEnd     = "call-end"
	EventMessage     = "message"
	EventSpeechStart = "speech-start"
	EventSpeechEnd   = "speech-end"
	EventError       = "error"
)

// Transcript message kinds inside a "message" event.
const (
	MessageTypeTranscript = "transcript"
	TranscriptFinal       = "final"
	TranscriptPartial     = "partial"
)

// Event is one event from the voice transport's stream.
type Event struct {
	Type string `json:"type"`

	// set for "message" events
	MessageType    string `json:"messageType,omitempty"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Role           string `json:"role,omitempty"`
	Transcript     string `json:"transcript,omitempty"`

	// set for "error" events
	Error *CallError `json:"error,omitempty"`
}

// CallError is an error surfaced by the transport. Different transport
// implementations raise differently shaped error objects, so the raw
// payload is kept alongside the message field.
type CallError struct {
	Message string          `json:"message"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

func (e *CallError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// AssistantConfig seeds a free-form question-asking call.
type AssistantConfig struct {
	SystemPrompt string `json:"systemPrompt"`
	FirstMessage string `json:"firstMessage,omitempty"`
}

// CallOptions configures a call-start request. Exactly one of Assistant or
// WorkflowID is set: an interviewer call seeded with the prepared question
// list, or a structured generation workflow seeded with user identity.
type CallOptions struct {
	Assistant      *AssistantConfig  `json:"assistant,omitempty"`
	WorkflowID     string            `json:"workflowId,omitempty"`
	VariableValues map[string]string `json:"variableValues,omitempty"`
}

// CallClient starts and stops calls on the external voice transport. It is
// constructed by the composition root and injected into the session core.
type CallClient interface {
	Start(ctx context.Context, opts CallOptions) error
	Stop() error
}
