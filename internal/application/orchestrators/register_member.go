package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"frontdesk/internal/domain/member"
)

// MemberRegistryStore defines the member persistence registration needs.
type MemberRegistryStore interface {
	Save(ctx context.Context, m member.Member) error
	Delete(ctx context.Context, id string) error
}

// RegisterMemberInput carries input for the registration orchestrator.
type RegisterMemberInput struct {
	Name  string
	Phone string
	Email string
}

// RegisterMemberDeps holds dependencies for member registration and removal.
type RegisterMemberDeps struct {
	MemberStore MemberRegistryStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteRegisterMember creates a walk-in member record.
// PRE: Name is non-empty
// POST: Member persisted with a fresh ID
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (member.Member, error) {
	m := member.Member{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		CreatedAt: deps.Now(),
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, fmt.Errorf("save member: %w", err)
	}

	slog.Info("member_event", "event", "member_registered", "member_id", m.ID, "name", m.Name, "has_email", m.HasEmail())
	return m, nil
}

// DeleteMemberInput carries input for ExecuteDeleteMember.
type DeleteMemberInput struct {
	MemberID string
}

// ExecuteDeleteMember removes a member and everything the member owns.
// PRE: MemberID is non-empty
// POST: Member, passes, attendance, profile, achievements and workout logs removed
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps RegisterMemberDeps) error {
	if input.MemberID == "" {
		return member.ErrEmptyID
	}
	if err := deps.MemberStore.Delete(ctx, input.MemberID); err != nil {
		return err
	}
	slog.Info("member_event", "event", "member_deleted", "member_id", input.MemberID)
	return nil
}
