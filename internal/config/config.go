package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bentancorlucia/admin-edificios/internal/logger"
)

const (
	// AppID names the per-user data directory of the application
	AppID = "admin-edificios"
	// DefaultDBFile is the fixed store file name inside the data directory
	DefaultDBFile = "database.db"
	envPrefix     = "CONDO"
)

// Config holds all store configuration
type Config struct {
	DataDir      string
	DBFile       string
	BusyTimeout  time.Duration
	GormLogLevel string
	// SlowStatement is the duration from which statements are logged as slow
	SlowStatement time.Duration
	Log           logger.Config
}

// DBPath is the absolute path of the store file
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// Load reads configuration from defaults, an optional config file and CONDO_* environment variables
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(AppID)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := defaultDataDir(); err == nil {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("db_file", DefaultDBFile)
	v.SetDefault("busy_timeout_ms", 5000)
	v.SetDefault("gorm_log_level", "warn")
	v.SetDefault("slow_statement_ms", 200)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataDir:       v.GetString("data_dir"),
		DBFile:        v.GetString("db_file"),
		BusyTimeout:   time.Duration(v.GetInt("busy_timeout_ms")) * time.Millisecond,
		GormLogLevel:  v.GetString("gorm_log_level"),
		SlowStatement: time.Duration(v.GetInt("slow_statement_ms")) * time.Millisecond,
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data directory: %w", err)
		}
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the store cannot work with
func (c *Config) Validate() error {
	if c.DBFile == "" || filepath.Base(c.DBFile) != c.DBFile {
		return fmt.Errorf("db_file must be a plain file name, got %q", c.DBFile)
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout_ms must not be negative")
	}
	if c.SlowStatement < 0 {
		return fmt.Errorf("slow_statement_ms must not be negative")
	}
	return nil
}

// defaultDataDir mirrors the desktop shell's per-user application data directory
func defaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppID), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", AppID), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppID), nil
}
