package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRoleValid(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleCompany.Valid())
	require.True(t, RoleCreator.Valid())
	require.False(t, Role("moderator").Valid())
	require.False(t, Role("").Valid())
}

func TestBaseModelGeneratesID(t *testing.T) {
	m := &BaseModel{}
	require.NoError(t, m.BeforeCreate(&gorm.DB{}))
	require.NotEmpty(t, m.ID)

	fixed := &BaseModel{ID: "niche-1"}
	require.NoError(t, fixed.BeforeCreate(&gorm.DB{}))
	require.Equal(t, "niche-1", fixed.ID)
}
