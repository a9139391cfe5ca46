package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasAnyRole(t *testing.T) {
	require.True(t, HasAnyRole(RoleAdmin, AdminOnly))
	require.False(t, HasAnyRole(RoleUser, AdminOnly))
	require.True(t, HasAnyRole(RoleUser, AllRoles))
	require.True(t, HasAnyRole(RoleAdmin, AllRoles))

	// Matching is exact and case sensitive.
	require.False(t, HasAnyRole("admin", AdminOnly))
	require.False(t, HasAnyRole("", AdminOnly))
	require.False(t, HasAnyRole(RoleAdmin, nil))
}
