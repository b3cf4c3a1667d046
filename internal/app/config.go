package app

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	// Refresh configuration
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	CommandTimeout  time.Duration `mapstructure:"command_timeout"`

	// UI configuration
	Locale  string `mapstructure:"locale"`
	NoColor bool   `mapstructure:"no_color"`

	// Export configuration
	ExportDir string `mapstructure:"export_dir"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// LoadConfig loads configuration from file and environment
func LoadConfig(configFile string) (*Config, error) {
	viper.SetDefault("refresh.interval", "5s")
	viper.SetDefault("refresh.command_timeout", "5s")

	viper.SetDefault("ui.locale", "en")
	viper.SetDefault("ui.no_color", false)

	viper.SetDefault("export.dir", "")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "/tmp/lvm-browser.log")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.lvm-browser")
		viper.AddConfigPath("/etc/lvm-browser")
	}

	viper.SetEnvPrefix("LVM_BROWSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		RefreshInterval: viper.GetDuration("refresh.interval"),
		CommandTimeout:  viper.GetDuration("refresh.command_timeout"),
		Locale:          viper.GetString("ui.locale"),
		NoColor:         viper.GetBool("ui.no_color"),
		ExportDir:       viper.GetString("export.dir"),
		LogLevel:        viper.GetString("logging.level"),
		LogFile:         viper.GetString("logging.file"),
	}

	// Normalise zero values in case configuration omitted units or left blank
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Second
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 5 * time.Second
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "/tmp/lvm-browser.log"
	}

	return cfg, nil
}
