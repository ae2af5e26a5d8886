package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"student":    RoleStudent,
		"TA":         RoleTA,
		" professor": RoleProfessor,
		"":           RoleNone,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("admin")
	require.Error(t, err)
}

func TestRolePredicates(t *testing.T) {
	assert.False(t, RoleNone.IsEnrolled())
	assert.True(t, RoleStudent.IsEnrolled())
	assert.True(t, RoleTA.IsEnrolled())
	assert.True(t, RoleProfessor.IsEnrolled())

	assert.False(t, RoleNone.IsStaff())
	assert.False(t, RoleStudent.IsStaff())
	assert.True(t, RoleTA.IsStaff())
	assert.True(t, RoleProfessor.IsStaff())
}

func TestRoleScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan("ta"))
	assert.Equal(t, RoleTA, r)
	require.NoError(t, r.Scan([]byte("professor")))
	assert.Equal(t, RoleProfessor, r)
	require.NoError(t, r.Scan(nil))
	assert.Equal(t, RoleNone, r)
	assert.Error(t, r.Scan(12))

	v, err := RoleStudent.Value()
	require.NoError(t, err)
	assert.Equal(t, "student", v)
}
