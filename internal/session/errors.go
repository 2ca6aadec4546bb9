package session

import (
	"encoding/json"
	"strings"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/transport"
)

// TerminationClass classifies a transport error.
type TerminationClass int

const (
	// TerminationOther is an unexpected transport error. The session is
	// aborted back to INACTIVE and the error is surfaced to the user.
	TerminationOther TerminationClass = iota
	// TerminationRemoteEnded means the remote side ended the call or
	// ejected the participant. Treated as a normal call end.
	TerminationRemoteEnded
)

// remoteEndPhrases are the known signatures of an expected termination.
// Matching is case-sensitive substring, per the transport's wording.
var remoteEndPhrases = []string{
	"Meeting has ended",
	"ejection",
}

// ClassifyCallError inspects every representation of a transport error for
// a known remote-termination signature. Transports raise differently shaped
// error objects, so the message field, the string form and the serialized
// form are all checked.
func ClassifyCallError(err *transport.CallError) TerminationClass {
	if err == nil {
		return TerminationOther
	}

	forms := []string{err.Message, err.Error(), string(err.Raw)}
	if serialized, marshalErr := json.Marshal(err); marshalErr == nil {
		forms = append(forms, string(serialized))
	}

	for _, form := range forms {
		for _, phrase := range remoteEndPhrases {
			if strings.Contains(form, phrase) {
				return TerminationRemoteEnded
			}
		}
	}
	return TerminationOther
}
