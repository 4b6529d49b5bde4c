package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	owner := &Identity{UserID: "owner"}
	other := &Identity{UserID: "other"}
	admin := &Identity{UserID: "admin", IsAdmin: true}

	cases := []struct {
		name   string
		id     *Identity
		policy Policy
		owner  string
		want   Decision
	}{
		{"public anonymous", nil, Public, "", Allow},
		{"public with identity", other, Public, "", Allow},
		{"authenticated anonymous", nil, Authenticated, "", Unauthenticated},
		{"authenticated empty subject", &Identity{}, Authenticated, "", Unauthenticated},
		{"authenticated user", other, Authenticated, "", Allow},
		{"admin only as user", other, AdminOnly, "", Forbidden},
		{"admin only as admin", admin, AdminOnly, "", Allow},
		{"admin only anonymous", nil, AdminOnly, "", Unauthenticated},
		{"owner on own resource", owner, OwnerOrAdmin, "owner", Allow},
		{"stranger on resource", other, OwnerOrAdmin, "owner", Forbidden},
		{"admin on foreign resource", admin, OwnerOrAdmin, "owner", Allow},
		{"anonymous on resource", nil, OwnerOrAdmin, "owner", Unauthenticated},
		{"resource without owner", other, OwnerOrAdmin, "", Forbidden},
		{"unknown policy", other, Policy(42), "", Forbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.id, tc.policy, tc.owner))
		})
	}
}
