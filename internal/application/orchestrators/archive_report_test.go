package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"frontdesk/internal/adapters/archive"
)

// memoryArchive keeps archived objects in a map.
type memoryArchive struct {
	objects map[string][]byte
	err     error
}

func (a *memoryArchive) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.objects == nil {
		a.objects = make(map[string][]byte)
	}
	a.objects[key] = body
	return "mem://" + key, nil
}

var _ archive.Store = (*memoryArchive)(nil)

// TestExecuteArchiveReport_WritesDatedKey verifies the key layout and JSON body.
func TestExecuteArchiveReport_WritesDatedKey(t *testing.T) {
	store := &memoryArchive{}
	report := map[string]any{"today_checkins": 4, "total_revenue": "460.00"}

	result, err := ExecuteArchiveReport(context.Background(), ArchiveReportInput{Report: report}, ArchiveReportDeps{Store: store, Now: deskNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Key != "reports/2026-03-10.json" || result.Location != "mem://reports/2026-03-10.json" {
		t.Errorf("result = %+v", result)
	}

	var back map[string]any
	if err := json.Unmarshal(store.objects[result.Key], &back); err != nil {
		t.Fatalf("archived body is not JSON: %v", err)
	}
	if back["total_revenue"] != "460.00" {
		t.Errorf("body = %v", back)
	}
}

// TestExecuteArchiveReport_StoreError verifies archive failures are returned.
func TestExecuteArchiveReport_StoreError(t *testing.T) {
	boom := errors.New("bucket unavailable")
	_, err := ExecuteArchiveReport(context.Background(), ArchiveReportInput{Report: 1}, ArchiveReportDeps{Store: &memoryArchive{err: boom}, Now: deskNow})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
