package email

import (
	"context"
	"strings"
	"testing"
)

// TestRenderMarkdown verifies Markdown becomes HTML and raw HTML is escaped.
func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("Hi **Juan**,\nwe miss you.\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(html, "<strong>Juan</strong>") {
		t.Errorf("bold not rendered: %s", html)
	}
	if !strings.Contains(html, "<br") {
		t.Errorf("hard wrap not rendered: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw html leaked: %s", html)
	}
}

// TestNoopSender_RecordsRequests verifies dry-run sends are kept in order.
func TestNoopSender_RecordsRequests(t *testing.T) {
	s := NewNoopSender()
	ctx := context.Background()

	if _, err := s.Send(ctx, SendRequest{To: []string{"a@example.com"}, Subject: "one"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	results, err := s.SendBatch(ctx, []SendRequest{
		{To: []string{"b@example.com"}, Subject: "two"},
		{To: []string{"c@example.com"}, Subject: "three"},
	})
	if err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if len(results) != 2 || results[0].MessageID == results[1].MessageID {
		t.Errorf("results = %+v, want two distinct IDs", results)
	}

	sent := s.Sent()
	if len(sent) != 3 || sent[0].Subject != "one" || sent[2].Subject != "three" {
		t.Errorf("Sent = %+v", sent)
	}
}

// TestResendSender_ParamsDefaults verifies default addresses fill empty request fields.
func TestResendSender_ParamsDefaults(t *testing.T) {
	s := NewResendSender("re_test", "Front Desk <desk@example.com>", "owner@example.com")

	p := s.params(SendRequest{To: []string{"m@example.com"}, Subject: "hello", HTML: "<p>hi</p>", Tag: "m1"})
	if p.From != "Front Desk <desk@example.com>" || p.ReplyTo != "owner@example.com" {
		t.Errorf("defaults not applied: %+v", p)
	}
	if len(p.Tags) != 1 || p.Tags[0].Value != "m1" {
		t.Errorf("tags = %+v", p.Tags)
	}

	p = s.params(SendRequest{To: []string{"m@example.com"}, From: "other@example.com", ReplyTo: "desk@example.com"})
	if p.From != "other@example.com" || p.ReplyTo != "desk@example.com" {
		t.Errorf("overrides not applied: %+v", p)
	}
}
