package projections

import (
	"context"
	"time"

	"frontdesk/internal/domain/pass"
)

// GetActivePassQuery carries input for the active pass lookup.
type GetActivePassQuery struct {
	MemberID string
	Now      time.Time
}

// GetActivePassDeps holds dependencies for the active pass lookup.
type GetActivePassDeps struct {
	PassStore PassStore
}

// QueryGetActivePass returns the member's valid pass, if any.
// POST: ok is false when no pass is active and covers today
func QueryGetActivePass(ctx context.Context, query GetActivePassQuery, deps GetActivePassDeps) (p pass.Pass, ok bool, err error) {
	passes, err := deps.PassStore.ListByMemberID(ctx, query.MemberID)
	if err != nil {
		return pass.Pass{}, false, err
	}
	p, ok = pass.FindValid(passes, query.Now)
	return p, ok, nil
}

// QueryHasActivePass reports whether the member holds a valid pass.
func QueryHasActivePass(ctx context.Context, query GetActivePassQuery, deps GetActivePassDeps) (bool, error) {
	_, ok, err := QueryGetActivePass(ctx, query, deps)
	return ok, err
}
