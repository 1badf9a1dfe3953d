package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// NoopSender logs sends without delivering them and keeps a copy of every request,
// so dry runs and tests can inspect what would have gone out.
type NoopSender struct {
	mu   sync.Mutex
	sent []SendRequest
	now  func() time.Time
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{now: time.Now}
}

// Send logs the email but does not deliver it.
// PRE: req is a valid SendRequest
// POST: Returns a noop result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("email_event", "event", "noop_send", "to", req.To, "subject", req.Subject, "tag", req.Tag)
	return s.record(req, 0), nil
}

// SendBatch logs the batch but does not deliver.
// PRE: reqs is a slice of SendRequests
// POST: Returns noop results for each request without actual delivery
func (s *NoopSender) SendBatch(_ context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	for i, req := range reqs {
		slog.Info("email_event", "event", "noop_batch_send", "index", i, "to", req.To, "subject", req.Subject, "tag", req.Tag)
		results = append(results, s.record(req, i))
	}
	return results, nil
}

// Sent returns a copy of every request received so far.
func (s *NoopSender) Sent() []SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SendRequest, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *NoopSender) record(req SendRequest, index int) SendResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	now := s.now()
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d-%d", now.UnixNano(), index),
		SentAt:    now,
	}
}
