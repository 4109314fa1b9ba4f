package bot

import (
	"fmt"
	"reflect"

	"github.com/Xinecraft/swat-julia/internal/pkg/bot"
	"github.com/Xinecraft/swat-julia/internal/pkg/locale"
	"github.com/Xinecraft/swat-julia/internal/pkg/logger"
	"github.com/Xinecraft/swat-julia/pkg"
	"github.com/Xinecraft/swat-julia/pkg/bot/command"
	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
	"github.com/Xinecraft/swat-julia/pkg/relay"
)

// HandleCommand registers a command bound by every bot built afterwards.
// Call it from an init function.
func HandleCommand(definition command.Definition) {
	if definition.Handler == nil || reflect.TypeOf(definition.Handler).Kind() != reflect.Ptr {
		logger.WarnCF("bot", "Command handler must be a pointer type", map[string]any{"name": definition.Name})
		return
	}
	logger.DebugCF("bot", "Handling command", map[string]any{"name": definition.Name})
	bot.Commands = append(bot.Commands, definition)
}

func permissionManagers(config botConfig.Config) (permissions.PermissionManager, permissions.PermissionManager, error) {
	if config.Users.AllowAll {
		return permissions.NewNoCheckPermissionManager(), permissions.NewNoCheckPermissionManager(), nil
	}
	userPermissionManager, err := permissions.GetManager(config.Users.Permissions)
	if err != nil {
		return nil, nil, fmt.Errorf("user permissions: %w", err)
	}
	commandPermissionManager, err := permissions.GetManager(config.Commands.Permissions)
	if err != nil {
		return nil, nil, fmt.Errorf("command permissions: %w", err)
	}
	return userPermissionManager, commandPermissionManager, nil
}

func NewBot(config botConfig.Config) (pkg.Runnable, error) {
	userPermissionManager, commandPermissionManager, err := permissionManagers(config)
	if err != nil {
		return nil, err
	}
	r, err := relay.GetRelay(config.Connector)
	if err != nil {
		return nil, err
	}
	catalog, err := locale.Load(config.Locale)
	if err != nil {
		return nil, err
	}
	return bot.NewBot(
		config,
		userPermissionManager,
		commandPermissionManager,
		r,
		catalog,
		bot.Commands...,
	), nil
}
