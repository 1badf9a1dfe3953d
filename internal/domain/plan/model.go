package plan

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName       = errors.New("plan name cannot be empty")
	ErrNameTooLong     = errors.New("plan name cannot exceed 100 characters")
	ErrInvalidDuration = errors.New("plan duration must be at least one day")
	ErrNegativePrice   = errors.New("plan price cannot be negative")
	ErrInactive        = errors.New("plan is not available for sale")
	ErrReferenced      = errors.New("plan cannot be deleted while passes reference it")
)

// Plan is a purchasable template that defines the duration and price of a pass.
type Plan struct {
	ID           string
	Name         string
	DurationDays int
	Price        decimal.Decimal
	Active       bool
	CreatedAt    time.Time
}

// Validate checks if the Plan has valid data.
// PRE: Plan struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name non-empty, DurationDays >= 1, Price >= 0
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if p.DurationDays < 1 {
		return ErrInvalidDuration
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// CanSell reports whether new passes may be sold from this plan.
func (p *Plan) CanSell() bool {
	return p.Active
}

// Reprice changes the price used for future sales only.
// Existing passes keep their own price snapshot.
// PRE: price >= 0
// POST: Price updated, rounded to cents
func (p *Plan) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price.Round(2)
	return nil
}
