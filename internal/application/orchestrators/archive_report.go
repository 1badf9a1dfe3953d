package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/adapters/archive"
)

// ArchiveReportInput carries the report snapshot to store.
type ArchiveReportInput struct {
	Report any       // marshalled as indented JSON
	Date   time.Time // zero means today
}

// ArchiveReportDeps holds dependencies for the archive orchestrator.
type ArchiveReportDeps struct {
	Store archive.Store
	Now   func() time.Time
}

// ArchiveReportResult reports where the snapshot landed.
type ArchiveReportResult struct {
	Key      string
	Location string
	Bytes    int
}

// ReportKey returns the archive key for a day's report.
func ReportKey(day time.Time) string {
	return fmt.Sprintf("reports/%s.json", day.Format("2006-01-02"))
}

// ExecuteArchiveReport writes a report snapshot to the archive under reports/YYYY-MM-DD.json.
// PRE: Report is JSON-serialisable
// POST: The day's key holds the snapshot; a re-run on the same day overwrites it
func ExecuteArchiveReport(ctx context.Context, input ArchiveReportInput, deps ArchiveReportDeps) (ArchiveReportResult, error) {
	day := input.Date
	if day.IsZero() {
		day = deps.Now()
	}

	body, err := json.MarshalIndent(input.Report, "", "  ")
	if err != nil {
		return ArchiveReportResult{}, fmt.Errorf("encode report: %w", err)
	}

	key := ReportKey(day)
	location, err := deps.Store.Put(ctx, key, body, "application/json")
	if err != nil {
		slog.Error("archive_event", "event", "report_archive_failed", "key", key, "error", err.Error())
		return ArchiveReportResult{}, err
	}

	slog.Info("archive_event", "event", "report_archived", "key", key, "location", location, "bytes", len(body))
	return ArchiveReportResult{Key: key, Location: location, Bytes: len(body)}, nil
}
