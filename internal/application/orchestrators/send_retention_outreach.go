package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"frontdesk/internal/adapters/email"
	"frontdesk/internal/domain/churn"
)

// OutreachTarget is a member scored by the churn projection.
type OutreachTarget struct {
	MemberID    string
	Name        string
	Email       string
	Probability float64
	Risk        churn.ProbabilityRisk
	DaysLeft    int
}

// RetentionOutreachInput carries the scored members to consider.
type RetentionOutreachInput struct {
	Targets []OutreachTarget
	GymName string
	DryRun  bool // render and count, but send nothing
}

// RetentionOutreachDeps holds dependencies for the outreach orchestrator.
type RetentionOutreachDeps struct {
	Sender email.Sender
	Now    func() time.Time
}

// RetentionOutreachResult counts what happened to the candidates.
type RetentionOutreachResult struct {
	Sent     int
	Skipped  int // not High risk, or no email address
	Failed   int
	Rendered []email.SendRequest
}

// ExecuteRetentionOutreach emails every High-risk member that has an email address.
// PRE: Targets carry churn predictions computed for now
// POST: One message per eligible member handed to Sender.SendBatch;
// a failed batch is counted in Failed and never returned as an error
func ExecuteRetentionOutreach(ctx context.Context, input RetentionOutreachInput, deps RetentionOutreachDeps) (RetentionOutreachResult, error) {
	gym := strings.TrimSpace(input.GymName)
	if gym == "" {
		gym = "the gym"
	}

	var result RetentionOutreachResult
	for _, t := range input.Targets {
		if t.Risk != churn.RiskHigh || strings.TrimSpace(t.Email) == "" {
			result.Skipped++
			continue
		}
		html, err := email.RenderMarkdown(outreachBody(t, gym))
		if err != nil {
			return RetentionOutreachResult{}, err
		}
		result.Rendered = append(result.Rendered, email.SendRequest{
			To:      []string{t.Email},
			Subject: fmt.Sprintf("We miss you at %s", gym),
			HTML:    html,
			Tag:     t.MemberID,
		})
	}

	if len(result.Rendered) == 0 || input.DryRun {
		slog.Info("outreach_event", "event", "outreach_prepared", "eligible", len(result.Rendered), "skipped", result.Skipped, "dry_run", input.DryRun)
		return result, nil
	}

	sent, err := deps.Sender.SendBatch(ctx, result.Rendered)
	result.Sent = len(sent)
	if err != nil {
		result.Failed = len(result.Rendered) - len(sent)
		slog.Error("outreach_event", "event", "outreach_batch_failed", "sent", result.Sent, "failed", result.Failed, "error", err.Error())
		return result, nil
	}

	slog.Info("outreach_event", "event", "outreach_sent", "sent", result.Sent, "skipped", result.Skipped, "at", deps.Now().Format(time.RFC3339))
	return result, nil
}

func outreachBody(t OutreachTarget, gym string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", firstName(t.Name))
	fmt.Fprintf(&b, "We haven't seen you at **%s** lately and wanted to check in.\n\n", gym)
	if t.DaysLeft > 0 {
		fmt.Fprintf(&b, "Your pass still has **%d day(s)** left. Come make the most of it!\n\n", t.DaysLeft)
	} else {
		b.WriteString("Drop by the front desk any time to pick up a new pass.\n\n")
	}
	b.WriteString("- Short on time? Our 30-minute HIIT routine fits a lunch break.\n")
	b.WriteString("- New to lifting? Ask for the Beginner Full Body plan.\n\n")
	b.WriteString("See you soon!")
	return b.String()
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return "there"
}
