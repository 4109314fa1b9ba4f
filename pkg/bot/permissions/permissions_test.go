package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
)

func TestPermission_Has(t *testing.T) {
	assert.True(t, UNKNOWN.Has(UNKNOWN))
	assert.False(t, UNKNOWN.Has(NEED_VERIFIED))
	assert.True(t, VERIFIED.Has(NEED_VERIFIED))
	assert.False(t, VERIFIED.Has(NEED_MOD))
	assert.True(t, MOD.Has(NEED_MOD))
	assert.False(t, MOD.Has(NEED_ADMIN))
	assert.True(t, ADMIN.Has(NEED_ADMIN))
}

func TestGetManager(t *testing.T) {
	Manage("test", func(location string) (PermissionManager, error) {
		return NewNoCheckPermissionManager(), nil
	})
	m, err := GetManager(botConfig.PermissionConfig{Format: "test"})
	require.NoError(t, err)
	p, err := m.GetPermission("anyone")
	require.NoError(t, err)
	assert.Equal(t, ADMIN, p)

	_, err = GetManager(botConfig.PermissionConfig{Format: "missing"})
	assert.Error(t, err)
}
