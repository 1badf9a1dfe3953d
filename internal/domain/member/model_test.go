package member_test

import (
	"strings"
	"testing"

	"frontdesk/internal/domain/member"
)

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		member  member.Member
		wantErr bool
	}{
		{
			name:    "valid member",
			member:  member.Member{ID: "123", Name: "Juan Dela Cruz", Phone: "09171234567"},
			wantErr: false,
		},
		{
			name:    "valid member without phone",
			member:  member.Member{ID: "123", Name: "Sofia Bautista"},
			wantErr: false,
		},
		{
			name:    "valid member with email",
			member:  member.Member{ID: "123", Name: "Maria Santos", Email: "maria@example.com"},
			wantErr: false,
		},
		{
			name:    "empty name",
			member:  member.Member{ID: "123", Name: ""},
			wantErr: true,
		},
		{
			name:    "name too long",
			member:  member.Member{ID: "123", Name: strings.Repeat("a", 201)},
			wantErr: true,
		},
		{
			name:    "phone too long",
			member:  member.Member{ID: "123", Name: "Pedro Reyes", Phone: strings.Repeat("9", 21)},
			wantErr: true,
		},
		{
			name:    "invalid email",
			member:  member.Member{ID: "123", Name: "Ana Garcia", Email: "invalid-email"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Member.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestMemberInitial tests the Initial helper.
func TestMemberInitial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "juan", "J"},
		{"leading space", "  maria", "M"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := member.Member{Name: tt.in}
			if got := m.Initial(); got != tt.want {
				t.Errorf("Initial() = %q, want %q", got, tt.want)
			}
		})
	}
}
