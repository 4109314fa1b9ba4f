package bot

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const EnvPrefix = "JULIA_"

type PermissionConfig struct {
	Format   string `yaml:"format" env:"FORMAT"`
	Location string `yaml:"location" env:"LOCATION"`
}

type UserConfig struct {
	AllowAll    bool             `yaml:"all" env:"ALL"`
	Permissions PermissionConfig `yaml:"permissions" envPrefix:"PERMISSIONS_"`
}

type CommandConfig struct {
	// IdLength is the number of characters of a correlation id.
	IdLength int `yaml:"idLength" env:"ID_LENGTH"`
	// Threshold is the minimum time a replied command is kept, which is also
	// the minimum spacing between two commands of the same player.
	Threshold time.Duration `yaml:"threshold" env:"THRESHOLD"`
	// Timeout is how long a command may stay unreplied before it is failed.
	Timeout     time.Duration    `yaml:"timeout" env:"TIMEOUT"`
	Disabled    map[string]bool  `yaml:"disabled"`
	Permissions PermissionConfig `yaml:"permissions" envPrefix:"PERMISSIONS_"`
}

type OutputConfig struct {
	// Rate is the number of lines per second sent to the server, 0 disables
	// throttling.
	Rate  float64 `yaml:"rate" env:"RATE"`
	Burst int     `yaml:"burst" env:"BURST"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

type Config struct {
	Connector map[string]interface{} `yaml:"connector"`
	Trigger   string                 `yaml:"trigger" env:"TRIGGER"`
	Locale    string                 `yaml:"locale" env:"LOCALE"`
	Tick      time.Duration          `yaml:"tick" env:"TICK"`
	Users     UserConfig             `yaml:"users" envPrefix:"USERS_"`
	Commands  CommandConfig          `yaml:"commands" envPrefix:"COMMANDS_"`
	Output    OutputConfig           `yaml:"output" envPrefix:"OUTPUT_"`
	Log       LogConfig              `yaml:"log" envPrefix:"LOG_"`
}

func Default() Config {
	return Config{
		Connector: map[string]interface{}{},
		Trigger:   "!",
		Locale:    "en-US",
		Tick:      250 * time.Millisecond,
		Users: UserConfig{
			AllowAll: true,
		},
		Commands: CommandConfig{
			IdLength:  6,
			Threshold: time.Second,
			Timeout:   10 * time.Second,
			Disabled:  map[string]bool{},
		},
		Output: OutputConfig{
			Rate:  10,
			Burst: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies JULIA_*
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if config.Commands.Disabled == nil {
		config.Commands.Disabled = map[string]bool{}
	}
	if config.Connector == nil {
		config.Connector = map[string]interface{}{}
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error
	if utf8.RuneCountInString(c.Trigger) != 1 || c.Trigger == " " {
		errs = append(errs, fmt.Errorf("trigger must be a single character, got %q", c.Trigger))
	}
	if c.Tick <= 0 {
		errs = append(errs, errors.New("tick must be positive"))
	}
	if c.Commands.IdLength <= 0 {
		errs = append(errs, errors.New("commands.idLength must be positive"))
	}
	if c.Commands.Threshold < 0 {
		errs = append(errs, errors.New("commands.threshold must not be negative"))
	}
	if c.Commands.Timeout <= 0 {
		errs = append(errs, errors.New("commands.timeout must be positive"))
	}
	if c.Output.Rate < 0 {
		errs = append(errs, errors.New("output.rate must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
