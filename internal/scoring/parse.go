package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

// ParseAssessment extracts and validates the structured assessment from raw
// model output. Models sometimes wrap the JSON in prose or code fences, so
// everything outside the outermost braces is discarded.
func ParseAssessment(raw string) (*models.ScoredAssessment, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, errors.New("no JSON object found in model response")
	}

	var assessment models.ScoredAssessment
	if err := json.Unmarshal([]byte(raw[start:end+1]), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	if err := validateAssessment(&assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func validateAssessment(a *models.ScoredAssessment) error {
	if a.TotalScore < 0 || a.TotalScore > 100 {
		return fmt.Errorf("totalScore out of range: %d", a.TotalScore)
	}
	if len(a.CategoryScores) != len(models.FeedbackCategories) {
		return fmt.Errorf("expected %d category scores, got %d",
			len(models.FeedbackCategories), len(a.CategoryScores))
	}
	for i, cs := range a.CategoryScores {
		if cs.Name != models.FeedbackCategories[i] {
			return fmt.Errorf("unexpected category %q at position %d", cs.Name, i)
		}
		if cs.Score < 0 || cs.Score > 100 {
			return fmt.Errorf("category %q score out of range: %d", cs.Name, cs.Score)
		}
	}
	if strings.TrimSpace(a.FinalAssessment) == "" {
		return errors.New("finalAssessment is empty")
	}
	return nil
}
