package permissions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/Xinecraft/swat-julia/pkg/bot/permissions"
)

func init() {
	permissions.Manage("yaml", newYamlFileManager)
	permissions.Manage("json", newJsonFileManager)
}

type codec struct {
	marshal   func(v interface{}) ([]byte, error)
	unmarshal func(data []byte, v interface{}) error
}

var (
	yamlCodec = codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
	jsonCodec = codec{
		marshal: func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		},
		unmarshal: json.Unmarshal,
	}
)

// filePermissionManager keeps permissions keyed by player id or command name
// in memory and rewrites the whole file on every change.
type filePermissionManager struct {
	mu          sync.Mutex
	location    string
	codec       codec
	permissions map[string]permissions.Permission
}

func (f *filePermissionManager) GetPermission(id string) (permissions.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.permissions[id]
	if !ok {
		return permissions.UNKNOWN, nil
	}
	return p, nil
}

func (f *filePermissionManager) SetPermission(id string, permission permissions.Permission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissions[id] = permission
	data, err := f.codec.marshal(f.permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	if err := os.WriteFile(f.location, data, 0o644); err != nil {
		return fmt.Errorf("write permissions: %w", err)
	}
	return nil
}

func newFileManager(location string, c codec) (permissions.PermissionManager, error) {
	if location == "" {
		return nil, errors.New("permission file location is empty")
	}
	perms := map[string]permissions.Permission{}
	data, err := os.ReadFile(location)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read permissions: %w", err)
	default:
		if err := c.unmarshal(data, &perms); err != nil {
			return nil, fmt.Errorf("decode permissions %s: %w", location, err)
		}
		if perms == nil {
			perms = map[string]permissions.Permission{}
		}
	}
	return &filePermissionManager{
		location:    location,
		codec:       c,
		permissions: perms,
	}, nil
}

func newJsonFileManager(location string) (permissions.PermissionManager, error) {
	return newFileManager(location, jsonCodec)
}

func newYamlFileManager(location string) (permissions.PermissionManager, error) {
	return newFileManager(location, yamlCodec)
}
