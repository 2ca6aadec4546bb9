package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// GenerateMode selects how interview generation is finalized after a
// "generate" voice session ends. With ModeExtract the service parses the
// conversation for interview parameters and persists the record itself.
// With ModeWorkflow the external voice workflow owns persistence and the
// session only acknowledges completion.
const (
	ModeExtract  = "extract"
	ModeWorkflow = "workflow"
)

// app config, loaded from environment variables
type Config struct {
	Provider string

	MongoURI  string
	MongoDB   string
	RedisAddr string

	JWTSecret string

	InactivityTimeout time.Duration
	InactivityPoll    time.Duration
	GracePeriod       time.Duration

	GenerateMode  string
	WorkflowID    string
	MaxInterviews int

	FeedbackExportEnabled  bool
	FeedbackExportSchedule string
	FeedbackExportDir      string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:          getEnvOrDefault("AI_PROVIDER", "gemini"),
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnvOrDefault("MONGO_DB_NAME", "prepwise"),
		RedisAddr:         getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "your-secret-key"),
		InactivityTimeout: getEnvDuration("CALL_INACTIVITY_TIMEOUT", 10*time.Second),
		InactivityPoll:    getEnvDuration("CALL_INACTIVITY_POLL", 5*time.Second),
		GracePeriod:       getEnvDuration("CALL_GRACE_PERIOD", 15*time.Second),
		GenerateMode:      getEnvOrDefault("GENERATE_MODE", ModeExtract),
		WorkflowID:        getEnvOrDefault("CALL_WORKFLOW_ID", ""),
		MaxInterviews:     getEnvInt("MAX_INTERVIEWS", 200),

		FeedbackExportEnabled:  getEnvOrDefault("FEEDBACK_EXPORT_ENABLED", "false") == "true",
		FeedbackExportSchedule: getEnvOrDefault("FEEDBACK_EXPORT_SCHEDULE", "0 2 * * *"),
		FeedbackExportDir:      getEnvOrDefault("FEEDBACK_EXPORT_DIR", "./exports"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.GenerateMode != ModeExtract && config.GenerateMode != ModeWorkflow {
		return errors.New("GENERATE_MODE must be one of: extract, workflow")
	}
	if config.InactivityTimeout <= 0 || config.InactivityPoll <= 0 || config.GracePeriod <= 0 {
		return errors.New("call timing values must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		// bare integers are treated as milliseconds, matching the old
		// NEXT_PUBLIC_VAPI_INACTIVITY_TIMEOUT convention
		if ms, err := strconv.Atoi(val); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultVal
}
