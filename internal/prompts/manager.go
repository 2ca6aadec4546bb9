package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into Go program at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is implemented by the prompt manager and by test doubles.
type PromptProvider interface {
	BuildPrompt(mode string, data map[string]string) (string, error)
	GetTemplates() map[string]string
}

type PromptManager struct {
	prompts map[string]string // mode -> complete prompt
}

// loaded prompt template
type PromptTemplate struct {
	BasePrompt string `yaml:"base_prompt"`
	Prompt     string `yaml:"prompt"`
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]string),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// builds a prompt for the given mode, substituting {{.Key}} placeholders
func (pm *PromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	promptTemplate, exists := pm.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}

	// Simple string replacement instead of complex template execution
	result := promptTemplate
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}

	return result, nil
}

// GetTemplates returns the loaded prompts keyed by mode
func (pm *PromptManager) GetTemplates() map[string]string {
	return pm.prompts
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var promptTemplate PromptTemplate
		if err := yaml.Unmarshal(data, &promptTemplate); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		var fullPrompt strings.Builder
		if promptTemplate.BasePrompt != "" {
			fullPrompt.WriteString(promptTemplate.BasePrompt)
			fullPrompt.WriteString("\n\n")
		}
		fullPrompt.WriteString(promptTemplate.Prompt)

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.prompts[name] = fullPrompt.String()
	}

	return nil
}
