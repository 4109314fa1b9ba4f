package permissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
)

func TestFileManagers(t *testing.T) {
	tests := []struct {
		format  string
		content string
	}{
		{"yaml", "\"1\": 7\nkick: 2\n"},
		{"json", `{"1": 7, "kick": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			location := filepath.Join(t.TempDir(), "permissions."+tt.format)
			require.NoError(t, os.WriteFile(location, []byte(tt.content), 0o644))

			m, err := permissions.GetManager(botConfig.PermissionConfig{Format: tt.format, Location: location})
			require.NoError(t, err)

			p, err := m.GetPermission("1")
			require.NoError(t, err)
			assert.Equal(t, permissions.ADMIN, p)
			p, err = m.GetPermission("kick")
			require.NoError(t, err)
			assert.Equal(t, permissions.NEED_MOD, p)
			p, err = m.GetPermission("2")
			require.NoError(t, err)
			assert.Equal(t, permissions.UNKNOWN, p)

			require.NoError(t, m.SetPermission("2", permissions.MOD))
			reloaded, err := permissions.GetManager(botConfig.PermissionConfig{Format: tt.format, Location: location})
			require.NoError(t, err)
			p, err = reloaded.GetPermission("2")
			require.NoError(t, err)
			assert.Equal(t, permissions.MOD, p)
		})
	}
}

func TestFileManager_MissingFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "permissions.yaml")
	m, err := newYamlFileManager(location)
	require.NoError(t, err)
	p, err := m.GetPermission("1")
	require.NoError(t, err)
	assert.Equal(t, permissions.UNKNOWN, p)

	require.NoError(t, m.SetPermission("1", permissions.VERIFIED))
	_, err = os.Stat(location)
	assert.NoError(t, err)
}

func TestFileManager_Errors(t *testing.T) {
	_, err := newJsonFileManager("")
	assert.Error(t, err)

	location := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(location, []byte("{"), 0o644))
	_, err = newJsonFileManager(location)
	assert.Error(t, err)
}
