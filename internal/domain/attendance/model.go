package attendance

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNoActivePass  = errors.New("member has no valid pass for today")
	ErrNotCheckedIn  = errors.New("member is not checked in today")
	ErrEmptyMemberID = errors.New("attendance must be associated with a member")
	ErrNoCheckIn     = errors.New("check-in time must be set")
	ErrOutBeforeIn   = errors.New("check-out time cannot be before check-in time")
)

// Attendance is a single gym visit.
type Attendance struct {
	ID           string
	MemberID     string
	PassID       string // optional; cleared when the pass is deleted
	CheckInTime  time.Time
	CheckOutTime time.Time // zero while the member is still inside
}

// Validate checks if the Attendance has valid data.
// PRE: Attendance struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MemberID must not be empty, CheckInTime must be set
func (a *Attendance) Validate() error {
	if a.MemberID == "" {
		return ErrEmptyMemberID
	}
	if a.CheckInTime.IsZero() {
		return ErrNoCheckIn
	}
	if !a.CheckOutTime.IsZero() && a.CheckOutTime.Before(a.CheckInTime) {
		return ErrOutBeforeIn
	}
	return nil
}

// IsCheckedOut returns true if the member has checked out.
func (a *Attendance) IsCheckedOut() bool {
	return !a.CheckOutTime.IsZero()
}

// IsOpenOn reports whether this visit started on now's calendar day and has no check-out yet.
func (a *Attendance) IsOpenOn(now time.Time) bool {
	if a.IsCheckedOut() {
		return false
	}
	y1, m1, d1 := a.CheckInTime.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CheckOut closes the visit.
// PRE: at must not be before CheckInTime
// POST: CheckOutTime = at
func (a *Attendance) CheckOut(at time.Time) error {
	if at.Before(a.CheckInTime) {
		return ErrOutBeforeIn
	}
	a.CheckOutTime = at
	return nil
}

// Duration returns the length of the visit as of now.
// PRE: Attendance is initialized with CheckInTime
// POST: Returns check-out minus check-in, or time since check-in if still open
func (a *Attendance) Duration(now time.Time) time.Duration {
	if a.IsCheckedOut() {
		return a.CheckOutTime.Sub(a.CheckInTime)
	}
	return now.Sub(a.CheckInTime)
}
