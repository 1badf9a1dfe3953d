package projections

import (
	"context"
	"sort"
	"time"

	memberStore "frontdesk/internal/adapters/storage/member"
	"frontdesk/internal/domain/churn"
	"frontdesk/internal/domain/pass"
)

// GetInactiveMembersQuery carries input for the inactive radar projection.
type GetInactiveMembersQuery struct {
	Now                  time.Time
	DaysSinceLastCheckIn int // members inactive for at least this many days; defaults to 8
}

// GetInactiveMembersDeps holds dependencies for the inactive radar.
type GetInactiveMembersDeps struct {
	MemberStore     ChurnMemberStore
	AttendanceStore ChurnAttendanceStore
}

// InactiveMemberResult represents a single inactive member.
type InactiveMemberResult struct {
	MemberID     string
	Name         string
	Email        string
	LastCheckIn  string // YYYY-MM-DD or "never"
	DaysInactive int    // -1 when never checked in
	Risk         churn.RecencyRisk
}

// QueryGetInactiveMembers returns members who haven't checked in for the given number of days,
// banded by recency. Members who never visited come first, then the longest absent.
func QueryGetInactiveMembers(ctx context.Context, query GetInactiveMembersQuery, deps GetInactiveMembersDeps) ([]InactiveMemberResult, error) {
	if query.DaysSinceLastCheckIn <= 0 {
		query.DaysSinceLastCheckIn = 8
	}

	members, err := deps.MemberStore.List(ctx, memberStore.ListFilter{})
	if err != nil {
		return nil, err
	}
	checkIns, err := deps.AttendanceStore.CheckInTimesByMember(ctx)
	if err != nil {
		return nil, err
	}

	results := []InactiveMemberResult{}
	for _, m := range members {
		times := checkIns[m.ID]
		if len(times) == 0 {
			results = append(results, InactiveMemberResult{
				MemberID:     m.ID,
				Name:         m.Name,
				Email:        m.Email,
				LastCheckIn:  "never",
				DaysInactive: -1,
				Risk:         churn.RecencyRiskBand(0, false),
			})
			continue
		}

		// Oldest first, so the last entry is the latest visit.
		last := times[len(times)-1].In(query.Now.Location())
		days := pass.DaysBetween(last, query.Now)
		if days < query.DaysSinceLastCheckIn {
			continue
		}
		results = append(results, InactiveMemberResult{
			MemberID:     m.ID,
			Name:         m.Name,
			Email:        m.Email,
			LastCheckIn:  last.Format("2006-01-02"),
			DaysInactive: days,
			Risk:         churn.RecencyRiskBand(days, true),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].DaysInactive, results[j].DaysInactive
		if a == -1 || b == -1 {
			return a == -1 && b != -1
		}
		return a > b
	})
	return results, nil
}
