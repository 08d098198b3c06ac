package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvitationUsable(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	two := 2

	cases := []struct {
		name string
		inv  GroupInvitation
		want error
	}{
		{"open", GroupInvitation{IsActive: true}, nil},
		{"inactive wins over expiry", GroupInvitation{IsActive: false, ExpiresAt: &past}, ErrInvitationInactive},
		{"expired", GroupInvitation{IsActive: true, ExpiresAt: &past}, ErrInvitationExpired},
		{"expires exactly now", GroupInvitation{IsActive: true, ExpiresAt: &now}, ErrInvitationExpired},
		{"exhausted", GroupInvitation{IsActive: true, ExpiresAt: &future, MaxUses: &two, CurrentUses: 2}, ErrInvitationExhausted},
		{"one use left", GroupInvitation{IsActive: true, MaxUses: &two, CurrentUses: 1}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.inv.Usable(now), tc.want)
			if tc.want == nil {
				require.NoError(t, tc.inv.Usable(now))
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-02-28"`), &d))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `"2025-02-28"`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`"2025-02-28T23:10:00Z"`), &d))
	require.Equal(t, 28, d.Day())

	require.Error(t, json.Unmarshal([]byte(`"28/02/2025"`), &d))
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleBusinessOwner.Valid())
	require.True(t, RoleBusinessManager.Valid())
	require.False(t, Role("admin").Valid())
}
