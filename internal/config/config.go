package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	UI     UIConfig
}

// ServerConfig points the client at the coordination service.
type ServerConfig struct {
	BaseURL    string        `mapstructure:"base_url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CookieName string        `mapstructure:"cookie_name" validate:"required"`
}

// LogConfig holds logger settings. An empty Path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	LoginURL string `mapstructure:"login_url" validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads configuration from file and env. Env var overrides use prefix FOODRUN_.
func Load() (Config, error) {
	path := os.Getenv("FOODRUN_CONFIG")
	return LoadFrom(path)
}

// LoadFrom reads configuration from path, or from the default location when path is empty.
func LoadFrom(path string) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.timeout", "15s")
	v.SetDefault("server.cookie_name", "connect.sid")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "foodrun", "foodrun.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.login_url", "")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "foodrun"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FOODRUN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing default file is fine, a missing explicit one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.UI.LoginURL == "" {
		c.UI.LoginURL = c.Server.BaseURL + "/auth/facebook"
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field constraints.
func Validate(c Config) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
