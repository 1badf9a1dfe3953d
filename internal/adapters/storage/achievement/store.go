package achievement

import (
	"context"
	"errors"

	domain "frontdesk/internal/domain/achievement"
)

// ErrNotFound is returned when no achievement matches the lookup.
var ErrNotFound = errors.New("achievement not found")

// Store persists the achievement catalog and member unlocks.
type Store interface {
	GetByCode(ctx context.Context, code string) (domain.Achievement, error)
	Save(ctx context.Context, value domain.Achievement) error
	List(ctx context.Context) ([]domain.Achievement, error)
	Unlock(ctx context.Context, value domain.MemberAchievement) (bool, error)
	ListUnlocked(ctx context.Context, memberID string) ([]domain.MemberAchievement, error)
}
