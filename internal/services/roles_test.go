package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"student", "lecturer", "prl", "pl", "fmg"} {
		role, ok := ParseRole(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, Role(raw), role)
	}
	_, ok := ParseRole("admin")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestParseStream(t *testing.T) {
	for _, raw := range []string{"IT", "IS", "CS", "SE"} {
		stream, ok := ParseStream(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, Stream(raw), stream)
	}
	stream, ok := ParseStream("")
	assert.True(t, ok)
	assert.Equal(t, StreamNone, stream)
	_, ok = ParseStream("EE")
	assert.False(t, ok)
}

func TestRateeRolesUpwardChain(t *testing.T) {
	assert.Equal(t, []Role{RoleLecturer, RolePRL, RolePL, RoleFMG}, RateeRoles(RoleStudent))
	assert.Equal(t, []Role{RolePRL, RolePL, RoleFMG}, RateeRoles(RoleLecturer))
	assert.Equal(t, []Role{RolePL, RoleFMG}, RateeRoles(RolePRL))
	assert.Equal(t, []Role{RoleFMG}, RateeRoles(RolePL))
	assert.Empty(t, RateeRoles(RoleFMG))
}

func TestRecipientRoles(t *testing.T) {
	assert.Equal(t, []Role{RolePRL}, RecipientRoles(RoleStudent))
	assert.Equal(t, []Role{RolePRL}, RecipientRoles(RoleLecturer))
	assert.Equal(t, []Role{RolePL}, RecipientRoles(RolePRL))
	assert.Equal(t, []Role{RoleFMG}, RecipientRoles(RolePL))
	assert.Equal(t, []Role{RolePRL, RolePL, RoleFMG}, RecipientRoles(RoleFMG))
}

func TestCanManageCatalog(t *testing.T) {
	assert.True(t, CanManageCatalog(RolePRL))
	assert.True(t, CanManageCatalog(RolePL))
	assert.False(t, CanManageCatalog(RoleStudent))
	assert.False(t, CanManageCatalog(RoleLecturer))
	assert.False(t, CanManageCatalog(RoleFMG))
}
