package datafile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// ReportWriter persists report text to a single flat file.
// It implements pipeline.ReportSink.
type ReportWriter struct {
	path   string
	logger *slog.Logger
}

// NewReportWriter creates a writer targeting the given output path.
func NewReportWriter(path string, logger *slog.Logger) *ReportWriter {
	return &ReportWriter{path: path, logger: logger}
}

// Write stores the report, replacing any previous one. A write failure is
// returned to the caller; nothing is retried.
func (w *ReportWriter) Write(_ context.Context, text string) error {
	if err := os.WriteFile(w.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	w.logger.Info("report written", "path", w.path, "bytes", len(text))
	return nil
}
