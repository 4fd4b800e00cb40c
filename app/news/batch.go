package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type BatchReport struct {
	Total     int
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int
	Errors    []error
}

// BatchSummarize summarizes every article that has no summary yet, one at a
// time, pausing for delay after each summarization. Articles with a failed
// summary are not retried.
func (m *Manager) BatchSummarize(ctx context.Context, delay time.Duration) BatchReport {
	articles := m.Articles()
	report := BatchReport{Total: len(articles)}

	if m.summarizer == nil {
		report.Errors = append(report.Errors, ErrNoSummarizer)
		return report
	}

	for i, a := range articles {
		if err := ctx.Err(); err != nil {
			report.Errors = append(report.Errors, err)
			break
		}

		if a.HasSummary() {
			report.Skipped++
			continue
		}

		slog.Info("Summarizing article", "progress", fmt.Sprintf("%d/%d", i+1, len(articles)), "title", a.Title)
		report.Attempted++

		if err := m.summarizer.Summarize(ctx, a); err != nil {
			slog.Error("Failed to summarize article", "title", a.Title, "error", err)
			report.Errors = append(report.Errors, fmt.Errorf("article %d: %w", i+1, err))
			continue
		}

		if a.Summary.IsError() {
			report.Failed++
		} else {
			report.Succeeded++
		}

		pause(ctx, delay)
	}

	slog.Info("Batch summarization completed",
		"total", report.Total,
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"errors", len(report.Errors))

	return report
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
