package generator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

// ExtractedParams are interview parameters guessed from a generation
// conversation. Extraction is best effort: the transport's structured
// workflow is the reliable path, this is the degraded one.
type ExtractedParams struct {
	Role      string
	Level     string
	Techstack string
	Type      string
	Amount    int
}

var (
	rolePattern   = regexp.MustCompile(`(?i)(?:role|position)(?:\s+is)?[:\s]+([^.,!?]+)`)
	techPattern   = regexp.MustCompile(`(?i)(?:tech|stack|technologies)[:\s]+([^.,!?]+)`)
	amountPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:questions?)`)
)

// ExtractParams scans conversation messages for interview parameters and
// falls back to defaults for anything it cannot find.
func ExtractParams(messages []models.TranscriptMessage) ExtractedParams {
	params := ExtractedParams{
		Type:   models.DefaultType,
		Amount: models.DefaultAmount,
	}

	for _, msg := range messages {
		content := strings.ToLower(msg.Content)

		if strings.Contains(content, "role") || strings.Contains(content, "position") {
			if m := rolePattern.FindStringSubmatch(msg.Content); m != nil {
				params.Role = strings.TrimSpace(m[1])
			}
		}

		if strings.Contains(content, "level") || strings.Contains(content, "experience") {
			switch {
			case strings.Contains(content, "senior"):
				params.Level = "Senior"
			case strings.Contains(content, "mid"):
				params.Level = "Mid-level"
			case strings.Contains(content, "junior"), strings.Contains(content, "beginner"):
				params.Level = "Junior"
			}
		}

		if strings.Contains(content, "tech") || strings.Contains(content, "stack") || strings.Contains(content, "technologies") {
			if m := techPattern.FindStringSubmatch(msg.Content); m != nil {
				params.Techstack = strings.TrimSpace(m[1])
			}
		}

		if strings.Contains(content, "behavioral") {
			params.Type = "behavioral"
		} else if strings.Contains(content, "technical") {
			params.Type = "technical"
		}

		if m := amountPattern.FindStringSubmatch(content); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				params.Amount = n
			}
		}
	}

	if params.Role == "" {
		params.Role = models.DefaultRole
	}
	if params.Level == "" {
		params.Level = models.DefaultLevel
	}
	if params.Techstack == "" {
		params.Techstack = models.DefaultTechstack
	}

	return params
}
