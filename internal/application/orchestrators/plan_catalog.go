package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk/internal/domain/plan"
)

// PlanCatalogStore defines the plan persistence the catalog operations need.
type PlanCatalogStore interface {
	GetByID(ctx context.Context, id string) (plan.Plan, error)
	Save(ctx context.Context, p plan.Plan) error
	Delete(ctx context.Context, id string) error
}

// PlanCatalogDeps holds dependencies for the plan catalog operations.
type PlanCatalogDeps struct {
	PlanStore  PlanCatalogStore
	GenerateID func() string
	Now        func() time.Time
}

// CreatePlanInput carries input for ExecuteCreatePlan.
type CreatePlanInput struct {
	Name         string
	DurationDays int
	Price        decimal.Decimal
}

// ExecuteCreatePlan adds a sellable plan to the catalog.
// PRE: input describes a valid plan
// POST: Active plan persisted with price rounded to cents
func ExecuteCreatePlan(ctx context.Context, input CreatePlanInput, deps PlanCatalogDeps) (plan.Plan, error) {
	p := plan.Plan{
		ID:           deps.GenerateID(),
		Name:         strings.TrimSpace(input.Name),
		DurationDays: input.DurationDays,
		Price:        input.Price.Round(2),
		Active:       true,
		CreatedAt:    deps.Now(),
	}
	if err := p.Validate(); err != nil {
		return plan.Plan{}, err
	}
	if err := deps.PlanStore.Save(ctx, p); err != nil {
		return plan.Plan{}, fmt.Errorf("save plan: %w", err)
	}

	slog.Info("plan_event", "event", "plan_created", "plan_id", p.ID, "name", p.Name, "duration_days", p.DurationDays, "price", p.Price.StringFixed(2))
	return p, nil
}

// RepricePlanInput carries input for ExecuteRepricePlan.
type RepricePlanInput struct {
	PlanID string
	Price  decimal.Decimal
}

// ExecuteRepricePlan changes the price of future sales.
// PRE: PlanID names an existing plan; Price >= 0
// POST: Plan price updated; passes already sold keep their snapshot
func ExecuteRepricePlan(ctx context.Context, input RepricePlanInput, deps PlanCatalogDeps) (plan.Plan, error) {
	p, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil {
		return plan.Plan{}, err
	}
	old := p.Price
	if err := p.Reprice(input.Price); err != nil {
		return plan.Plan{}, err
	}
	if err := deps.PlanStore.Save(ctx, p); err != nil {
		return plan.Plan{}, fmt.Errorf("save plan: %w", err)
	}

	slog.Info("plan_event", "event", "plan_repriced", "plan_id", p.ID, "old_price", old.StringFixed(2), "new_price", p.Price.StringFixed(2))
	return p, nil
}

// SetPlanActiveInput carries input for ExecuteSetPlanActive.
type SetPlanActiveInput struct {
	PlanID string
	Active bool
}

// ExecuteSetPlanActive lists or unlists a plan for sale.
// PRE: PlanID names an existing plan
// POST: Plan.Active == input.Active
func ExecuteSetPlanActive(ctx context.Context, input SetPlanActiveInput, deps PlanCatalogDeps) (plan.Plan, error) {
	p, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil {
		return plan.Plan{}, err
	}
	if p.Active == input.Active {
		return p, nil
	}
	p.Active = input.Active
	if err := deps.PlanStore.Save(ctx, p); err != nil {
		return plan.Plan{}, fmt.Errorf("save plan: %w", err)
	}

	slog.Info("plan_event", "event", "plan_availability_changed", "plan_id", p.ID, "active", p.Active)
	return p, nil
}

// DeletePlanInput carries input for ExecuteDeletePlan.
type DeletePlanInput struct {
	PlanID string
}

// ExecuteDeletePlan removes a plan from the catalog.
// PRE: PlanID is non-empty
// POST: Plan removed, or plan.ErrReferenced when any pass was sold from it
func ExecuteDeletePlan(ctx context.Context, input DeletePlanInput, deps PlanCatalogDeps) error {
	if err := deps.PlanStore.Delete(ctx, input.PlanID); err != nil {
		return err
	}
	slog.Info("plan_event", "event", "plan_deleted", "plan_id", input.PlanID)
	return nil
}
