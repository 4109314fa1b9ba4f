package permissions

import (
	"fmt"

	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
)

type PermissionManager interface {
	GetPermission(id string) (Permission, error)
	SetPermission(id string, permission Permission) error
}

type ManagerBuilder func(location string) (PermissionManager, error)

var permissionFormats = map[string]ManagerBuilder{}

func Manage(format string, builder ManagerBuilder) {
	permissionFormats[format] = builder
}

func GetManager(config botConfig.PermissionConfig) (PermissionManager, error) {
	builder, ok := permissionFormats[config.Format]
	if !ok {
		return nil, fmt.Errorf("unknown permission format %q", config.Format)
	}
	return builder(config.Location)
}

type noCheckPermissionManager struct {
}

func (n *noCheckPermissionManager) GetPermission(string) (Permission, error) {
	return ADMIN, nil
}

func (n *noCheckPermissionManager) SetPermission(string, Permission) error {
	return nil
}

// NewNoCheckPermissionManager grants every id every permission.
func NewNoCheckPermissionManager() PermissionManager {
	return &noCheckPermissionManager{}
}
