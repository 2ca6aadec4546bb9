package session

import (
	"encoding/json"
	"testing"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/transport"
)

func TestClassifyCallErrorMeetingEnded(t *testing.T) {
	err := &transport.CallError{Message: "Meeting has ended"}
	if ClassifyCallError(err) != TerminationRemoteEnded {
		t.Fatalf("expected remote-ended classification for message field")
	}
}

func TestClassifyCallErrorEjection(t *testing.T) {
	err := &transport.CallError{Message: "participant removed: ejection"}
	if ClassifyCallError(err) != TerminationRemoteEnded {
		t.Fatalf("expected remote-ended classification for ejection")
	}
}

func TestClassifyCallErrorSignatureInRawPayload(t *testing.T) {
	raw := json.RawMessage(`{"action":"error","errorMsg":"Meeting has ended","fatal":true}`)
	err := &transport.CallError{Message: "call error", Raw: raw}
	if ClassifyCallError(err) != TerminationRemoteEnded {
		t.Fatalf("expected signature buried in raw payload to be detected")
	}
}

func TestClassifyCallErrorCaseSensitive(t *testing.T) {
	err := &transport.CallError{Message: "meeting has ended"}
	if ClassifyCallError(err) != TerminationOther {
		t.Fatalf("expected lowercased phrase not to match")
	}
}

func TestClassifyCallErrorOther(t *testing.T) {
	err := &transport.CallError{Message: "websocket: close 1006 (abnormal closure)"}
	if ClassifyCallError(err) != TerminationOther {
		t.Fatalf("expected unrelated error to classify as other")
	}
}

func TestClassifyCallErrorNil(t *testing.T) {
	if ClassifyCallError(nil) != TerminationOther {
		t.Fatalf("expected nil error to classify as other")
	}
}
