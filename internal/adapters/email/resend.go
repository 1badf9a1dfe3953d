package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchLimit is the most emails Resend accepts in one batch call.
const resendBatchLimit = 100

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client  *resend.Client
	from    string
	replyTo string
}

// NewResendSender creates a new ResendSender with the given API key and default addresses.
// PRE: apiKey is a valid Resend API key; from is a valid sender address
// POST: Returns a ready-to-use sender
func NewResendSender(apiKey, from, replyTo string) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(apiKey),
		from:    from,
		replyTo: replyTo,
	}
}

// Send sends a single email via Resend.
// PRE: req has at least one recipient and a subject
// POST: Email is queued for delivery; returns the Resend message ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.params(req))
	if err != nil {
		slog.Error("email_event", "event", "resend_send_failed", "error", err, "tag", req.Tag)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_event", "event", "resend_sent", "message_id", sent.Id, "tag", req.Tag)
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch sends multiple emails via Resend's batch API in chunks.
// PRE: none
// POST: All emails are queued; returns results in request order. On a failed chunk the
// results of earlier chunks are returned with the error.
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	var results []SendResult
	for start := 0; start < len(reqs); start += resendBatchLimit {
		end := min(start+resendBatchLimit, len(reqs))
		chunk := reqs[start:end]

		params := make([]*resend.SendEmailRequest, 0, len(chunk))
		for _, req := range chunk {
			params = append(params, s.params(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, params)
		if err != nil {
			slog.Error("email_event", "event", "resend_batch_failed", "error", err, "batch_size", len(chunk))
			return results, fmt.Errorf("resend batch send failed: %w", err)
		}
		for _, item := range resp.Data {
			results = append(results, SendResult{MessageID: item.Id, SentAt: time.Now()})
		}
		slog.Info("email_event", "event", "resend_batch_sent", "count", len(chunk), "total_sent", len(results))
	}
	return results, nil
}

func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	p := &resend.SendEmailRequest{
		From:    s.from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
		ReplyTo: s.replyTo,
	}
	if req.From != "" {
		p.From = req.From
	}
	if req.ReplyTo != "" {
		p.ReplyTo = req.ReplyTo
	}
	if req.Tag != "" {
		p.Tags = []resend.Tag{{Name: "member", Value: req.Tag}}
	}
	return p
}
