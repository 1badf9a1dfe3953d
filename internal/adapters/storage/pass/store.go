package pass

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	domain "frontdesk/internal/domain/pass"
)

// ErrNotFound is returned when no pass matches the lookup.
var ErrNotFound = errors.New("pass not found")

// Store persists Pass state and answers the aggregate questions the dashboard asks.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Pass, error)
	Save(ctx context.Context, value domain.Pass) error
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Pass, error)
	ListValidOn(ctx context.Context, today time.Time) ([]domain.Pass, error)
	ListExpired(ctx context.Context, today time.Time, limit int) ([]domain.Pass, error)
	SweepExpired(ctx context.Context, today time.Time) (int, error)
	CountActive(ctx context.Context, today time.Time) (int, error)
	CountExpired(ctx context.Context, today time.Time) (int, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	SumRevenueOn(ctx context.Context, day time.Time) (decimal.Decimal, error)
	SalesByPlan(ctx context.Context) ([]PlanSales, error)
}

// PlanSales aggregates the passes sold from one plan.
type PlanSales struct {
	PlanID   string
	PlanName string
	Count    int
	Revenue  decimal.Decimal
}
