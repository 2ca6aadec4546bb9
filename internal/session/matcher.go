package session

import (
	"regexp"
	"strings"
)

// questionMatchPrefixLen bounds how much of a prepared question must appear
// in the spoken fragment. The agent paraphrases the tail of questions far
// more often than the opening clause, so matching anchors on the prefix.
const questionMatchPrefixLen = 30

var nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)

func normalizeUtterance(s string) string {
	return nonWordOrSpace.ReplaceAllString(strings.ToLower(s), "")
}

// matchesPreparedQuestion reports whether an assistant transcript fragment
// asked one of the prepared questions. Only fragments containing a literal
// question mark qualify; comparison is case- and punctuation-insensitive.
func matchesPreparedQuestion(transcript string, questions []string) bool {
	if !strings.Contains(transcript, "?") {
		return false
	}

	simplified := normalizeUtterance(transcript)
	for _, question := range questions {
		candidate := normalizeUtterance(question)
		if candidate == "" {
			continue
		}
		prefixLen := questionMatchPrefixLen
		if len(candidate) < prefixLen {
			prefixLen = len(candidate)
		}
		if strings.Contains(simplified, candidate[:prefixLen]) {
			return true
		}
	}
	return false
}
