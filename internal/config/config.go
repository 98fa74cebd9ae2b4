// Package config loads scoreboard settings from defaults, an optional config
// file and SCOREBOARD_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/abrezinsky/scoreboard/internal/auth"
	"github.com/abrezinsky/scoreboard/internal/logger"
)

// EnvPrefix is prepended to every environment override, e.g. SCOREBOARD_SERVER_PORT
const EnvPrefix = "SCOREBOARD"

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = "scoreboard.yaml"

// Config represents the scoreboard configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
	Standings StandingsConfig `mapstructure:"standings"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig contains record store settings
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// AdminConfig contains admin API settings
type AdminConfig struct {
	Password string `mapstructure:"password"`

	// PasswordGenerated is set when Password was not configured
	PasswordGenerated bool `mapstructure:"-"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StandingsConfig contains leaderboard settings
type StandingsConfig struct {
	HideZero  bool   `mapstructure:"hide_zero"`
	PublicURL string `mapstructure:"public_url"`
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8081)
	v.SetDefault("db.path", "festival.db")
	v.SetDefault("admin.password", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("standings.hide_zero", true)
	v.SetDefault("standings.public_url", "")
}

// Load reads the configuration. An empty path looks for scoreboard.yaml in
// the working directory and silently skips it when absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		v.SetConfigFile(DefaultFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Admin.Password = strings.TrimSpace(cfg.Admin.Password)
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = auth.GeneratePassword()
		cfg.Admin.PasswordGenerated = true
	}
	cfg.Standings.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.Standings.PublicURL), "/")

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path cannot be empty")
	}
	if _, err := logger.ParseFormat(cfg.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}
