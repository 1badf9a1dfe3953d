package pass

import (
	"errors"
	"time"

	"frontdesk/internal/domain/plan"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage and display format for pass start/end dates.
const DateLayout = "2006-01-02"

// Status constants
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Domain errors
var (
	ErrConflict         = errors.New("member already holds a valid pass")
	ErrEmptyMemberID    = errors.New("pass must belong to a member")
	ErrEmptyPlanID      = errors.New("pass must reference a plan")
	ErrInvalidRange     = errors.New("pass end date cannot be before its start date")
	ErrInvalidStatus    = errors.New("status must be 'active' or 'expired'")
	ErrNegativeSnapshot = errors.New("price snapshot cannot be negative")
)

// Pass is a time-boxed entitlement a member bought from a plan.
type Pass struct {
	ID            string
	MemberID      string
	PlanID        string
	StartDate     time.Time // calendar date, time-of-day ignored
	EndDate       time.Time // calendar date, inclusive
	PriceSnapshot decimal.Decimal
	Status        string
	CreatedAt     time.Time
}

// New creates an active pass for a member from a plan.
// PRE: p has been validated; start is the first day of validity
// POST: EndDate = start + DurationDays - 1, PriceSnapshot = p.Price
// INVARIANT: PriceSnapshot is copied here and never re-read from the plan
func New(id, memberID string, p plan.Plan, start, now time.Time) Pass {
	startDate := DateOf(start)
	return Pass{
		ID:            id,
		MemberID:      memberID,
		PlanID:        p.ID,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, p.DurationDays-1),
		PriceSnapshot: p.Price,
		Status:        StatusActive,
		CreatedAt:     now,
	}
}

// Validate checks if the Pass has valid data.
// PRE: Pass struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Pass) Validate() error {
	if p.MemberID == "" {
		return ErrEmptyMemberID
	}
	if p.PlanID == "" {
		return ErrEmptyPlanID
	}
	if DateOf(p.EndDate).Before(DateOf(p.StartDate)) {
		return ErrInvalidRange
	}
	if p.Status != StatusActive && p.Status != StatusExpired {
		return ErrInvalidStatus
	}
	if p.PriceSnapshot.IsNegative() {
		return ErrNegativeSnapshot
	}
	return nil
}

// IsExpired reports whether the pass is expired as of now, whether or not the
// stored status has caught up yet.
// INVARIANT: Pure; never mutates the pass
func (p *Pass) IsExpired(now time.Time) bool {
	if p.Status == StatusExpired {
		return true
	}
	return DateOf(now).After(DateOf(p.EndDate))
}

// RecomputeStatus moves an active pass past its end date to expired.
// Returns true when the status changed.
// PRE: none
// POST: Status is expired iff it was expired already or today > EndDate
// INVARIANT: One-way; an expired pass never becomes active again
func (p *Pass) RecomputeStatus(now time.Time) bool {
	if p.Status == StatusActive && DateOf(now).After(DateOf(p.EndDate)) {
		p.Status = StatusExpired
		return true
	}
	return false
}

// IsValid reports whether the pass grants entry today.
// INVARIANT: StartDate <= today <= EndDate and Status is active
func (p *Pass) IsValid(now time.Time) bool {
	if p.Status != StatusActive {
		return false
	}
	return p.Covers(now)
}

// Covers reports whether the given day falls inside the pass date range.
func (p *Pass) Covers(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(p.StartDate)) && !d.After(DateOf(p.EndDate))
}

// DaysRemaining returns the number of days left including today, or 0 once past the end.
func (p *Pass) DaysRemaining(now time.Time) int {
	days := DaysBetween(now, p.EndDate) + 1
	if days < 0 {
		return 0
	}
	return days
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (negative if b is before a).
// Computed on civil dates so DST shifts do not skew the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FindValid returns the pass that grants entry today, preferring the one that ends last.
// POST: ok is false when no pass in passes IsValid(now)
func FindValid(passes []Pass, now time.Time) (found Pass, ok bool) {
	for _, p := range passes {
		if !p.IsValid(now) {
			continue
		}
		if !ok || DateOf(p.EndDate).After(DateOf(found.EndDate)) {
			found, ok = p, true
		}
	}
	return found, ok
}
