package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

// FeedbackLister is the slice of the feedback store the exporter needs.
type FeedbackLister interface {
	ListCreatedAfter(ctx context.Context, since string, limit int64) ([]models.Feedback, error)
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule  string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir string // Directory to store exported files
	Enabled   bool
}

// FeedbackExporterJob periodically dumps new feedback documents to JSONL
// files for offline scoring analysis and prompt tuning.
type FeedbackExporterJob struct {
	store  FeedbackLister
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger

	mu         sync.Mutex
	lastExport string
}

func NewFeedbackExporterJob(store FeedbackLister, config *ExporterConfig, logger *zap.Logger) *FeedbackExporterJob {
	return &FeedbackExporterJob{
		store:  store,
		config: config,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduled export job
func (fej *FeedbackExporterJob) Start() error {
	if !fej.config.Enabled {
		fej.logger.Info("Feedback export is disabled, skipping scheduler")
		return nil
	}

	_, err := fej.cron.AddFunc(fej.config.Schedule, func() {
		if err := fej.RunExport(context.Background()); err != nil {
			fej.logger.Error("Export job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	fej.cron.Start()
	fej.logger.Info("Feedback exporter started", zap.String("schedule", fej.config.Schedule))
	return nil
}

// Stop stops the scheduled export job
func (fej *FeedbackExporterJob) Stop() {
	if fej.cron != nil {
		fej.cron.Stop()
	}
}

// RunExport performs a single export run. Only documents created since the
// previous run are written.
func (fej *FeedbackExporterJob) RunExport(ctx context.Context) error {
	fej.mu.Lock()
	since := fej.lastExport
	fej.mu.Unlock()

	feedback, err := fej.store.ListCreatedAfter(ctx, since, 0)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}
	if len(feedback) == 0 {
		fej.logger.Info("No new feedback to export")
		return nil
	}

	data, err := ToJSONL(feedback)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fej.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	filename := filepath.Join(fej.config.ExportDir,
		fmt.Sprintf("feedback-%s.jsonl", time.Now().UTC().Format("20060102-150405")))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fej.mu.Lock()
	fej.lastExport = feedback[len(feedback)-1].CreatedAt
	fej.mu.Unlock()

	fej.logger.Info("Feedback exported",
		zap.Int("records", len(feedback)),
		zap.String("file", filename))
	return nil
}

// ToJSONL renders feedback documents as one JSON object per line.
func ToJSONL(feedback []models.Feedback) ([]byte, error) {
	var out []byte
	for i, fb := range feedback {
		line, err := json.Marshal(fb)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal feedback %s: %w", fb.ID, err)
		}
		out = append(out, line...)
		if i < len(feedback)-1 {
			out = append(out, '\n')
		}
	}
	return out, nil
}
