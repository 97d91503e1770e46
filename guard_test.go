package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/webshopd/go-auth"
)

func TestAuthorize(t *testing.T) {
	admin := testIdentity{id: "1", email: "admin@example.com", role: auth.RoleAdmin}
	standard := testIdentity{id: "2", email: "user@example.com", role: auth.RoleStandard}

	t.Run("absent principal is unauthenticated", func(t *testing.T) {
		decision := auth.Authorize(nil, auth.RoleAdmin)
		assert.Equal(t, auth.DecisionUnauthenticated, decision)
		assert.False(t, decision.Allowed())
		assert.ErrorIs(t, decision.Err(), auth.ErrNotAuthorized)
	})

	t.Run("insufficient role is forbidden", func(t *testing.T) {
		decision := auth.Authorize(standard, auth.RoleAdmin)
		assert.Equal(t, auth.DecisionForbidden, decision)
		assert.False(t, decision.Allowed())
		assert.ErrorIs(t, decision.Err(), auth.ErrForbidden)
	})

	t.Run("matching role is allowed", func(t *testing.T) {
		decision := auth.Authorize(admin, auth.RoleAdmin)
		assert.Equal(t, auth.DecisionAllow, decision)
		assert.True(t, decision.Allowed())
		assert.NoError(t, decision.Err())
	})

	t.Run("no required role admits any principal", func(t *testing.T) {
		assert.True(t, auth.Authorize(standard, "").Allowed())
	})

	t.Run("match is exact, no hierarchy", func(t *testing.T) {
		// Admins do not implicitly satisfy a standard-role requirement.
		decision := auth.Authorize(admin, auth.RoleStandard)
		assert.Equal(t, auth.DecisionForbidden, decision)
	})
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", auth.DecisionAllow.String())
	assert.Equal(t, "unauthenticated", auth.DecisionUnauthenticated.String())
	assert.Equal(t, "forbidden", auth.DecisionForbidden.String())
}
