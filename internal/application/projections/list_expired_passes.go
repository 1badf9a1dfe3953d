package projections

import (
	"context"
	"errors"
	"time"

	memberStore "frontdesk/internal/adapters/storage/member"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
)

// ExpiredPassStore defines the pass store interface needed to list expired passes.
type ExpiredPassStore interface {
	SweepExpired(ctx context.Context, today time.Time) (int, error)
	ListExpired(ctx context.Context, today time.Time, limit int) ([]pass.Pass, error)
}

// MemberLookup resolves a member by ID.
type MemberLookup interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// ListExpiredPassesQuery carries input for the expired pass list.
type ListExpiredPassesQuery struct {
	Now   time.Time
	Limit int // defaults to 50
}

// ListExpiredPassesDeps holds dependencies for the expired pass list.
type ListExpiredPassesDeps struct {
	PassStore   ExpiredPassStore
	MemberStore MemberLookup
}

// ExpiredPassRow is an expired pass with its holder's name.
type ExpiredPassRow struct {
	Pass       pass.Pass
	MemberName string
}

// ListExpiredPassesResult carries the list and how many passes the sweep flipped.
type ListExpiredPassesResult struct {
	Swept  int
	Passes []ExpiredPassRow
}

// QueryListExpiredPasses sweeps stale passes to expired, then lists expired passes newest end date first.
// PRE: query.Now is set
// POST: No pass with end_date before today remains active
func QueryListExpiredPasses(ctx context.Context, query ListExpiredPassesQuery, deps ListExpiredPassesDeps) (ListExpiredPassesResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	swept, err := deps.PassStore.SweepExpired(ctx, query.Now)
	if err != nil {
		return ListExpiredPassesResult{}, err
	}
	passes, err := deps.PassStore.ListExpired(ctx, query.Now, limit)
	if err != nil {
		return ListExpiredPassesResult{}, err
	}

	names := make(map[string]string)
	result := ListExpiredPassesResult{Swept: swept, Passes: make([]ExpiredPassRow, 0, len(passes))}
	for _, p := range passes {
		name, ok := names[p.MemberID]
		if !ok {
			m, err := deps.MemberStore.GetByID(ctx, p.MemberID)
			switch {
			case err == nil:
				name = m.Name
			case !errors.Is(err, memberStore.ErrNotFound):
				return ListExpiredPassesResult{}, err
			}
			names[p.MemberID] = name
		}
		result.Passes = append(result.Passes, ExpiredPassRow{Pass: p, MemberName: name})
	}
	return result, nil
}
