package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/plan"
)

// MemberLookup fetches a member by ID.
type MemberLookup interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// PlanLookup fetches a plan by ID.
type PlanLookup interface {
	GetByID(ctx context.Context, id string) (plan.Plan, error)
}

// PassSaleStore defines the pass persistence a sale needs.
type PassSaleStore interface {
	ListByMemberID(ctx context.Context, memberID string) ([]pass.Pass, error)
	Save(ctx context.Context, p pass.Pass) error
}

// SellPassInput carries input for the sale orchestrator.
type SellPassInput struct {
	MemberID  string
	PlanID    string
	StartDate time.Time // zero means today
}

// SellPassDeps holds dependencies for SellPass.
type SellPassDeps struct {
	MemberStore MemberLookup
	PlanStore   PlanLookup
	PassStore   PassSaleStore
	GenerateID  func() string
	Now         func() time.Time
}

// SellPassResult carries the sold pass and the names used on the receipt.
type SellPassResult struct {
	Pass       pass.Pass
	MemberName string
	PlanName   string
}

// ExecuteSellPass sells a pass from a plan to a member.
// PRE: MemberID and PlanID name existing records
// POST: Active pass persisted with EndDate = start + duration - 1 and the plan's current price
// INVARIANT: A member never holds two passes that are valid today (pass.ErrConflict).
// The check is read-then-write, so two concurrent sales can both pass it.
func ExecuteSellPass(ctx context.Context, input SellPassInput, deps SellPassDeps) (SellPassResult, error) {
	now := deps.Now()

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return SellPassResult{}, err
	}
	p, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil {
		return SellPassResult{}, err
	}
	if !p.CanSell() {
		return SellPassResult{}, plan.ErrInactive
	}

	existing, err := deps.PassStore.ListByMemberID(ctx, m.ID)
	if err != nil {
		return SellPassResult{}, fmt.Errorf("list member passes: %w", err)
	}
	if current, ok := pass.FindValid(existing, now); ok {
		slog.Warn("pass_event", "event", "sale_rejected", "member_id", m.ID, "existing_pass_id", current.ID, "ends", current.EndDate.Format(pass.DateLayout))
		return SellPassResult{}, fmt.Errorf("%w until %s", pass.ErrConflict, current.EndDate.Format(pass.DateLayout))
	}

	start := input.StartDate
	if start.IsZero() {
		start = now
	}
	sold := pass.New(deps.GenerateID(), m.ID, p, start, now)
	if err := sold.Validate(); err != nil {
		return SellPassResult{}, err
	}
	if err := deps.PassStore.Save(ctx, sold); err != nil {
		return SellPassResult{}, fmt.Errorf("save pass: %w", err)
	}

	slog.Info("pass_event", "event", "pass_sold", "pass_id", sold.ID, "member_id", m.ID, "plan", p.Name,
		"start", sold.StartDate.Format(pass.DateLayout), "end", sold.EndDate.Format(pass.DateLayout), "price", sold.PriceSnapshot.StringFixed(2))
	return SellPassResult{Pass: sold, MemberName: m.Name, PlanName: p.Name}, nil
}
