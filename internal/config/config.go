package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     string        `mapstructure:"server" yaml:"server"`
	Network    string        `mapstructure:"network" yaml:"network"`
	Station    string        `mapstructure:"station" yaml:"station"`
	Location   string        `mapstructure:"location" yaml:"location"`
	Channel    string        `mapstructure:"channel" yaml:"channel"`
	Wait       float64       `mapstructure:"wait" yaml:"wait"`
	Retry      float64       `mapstructure:"retry" yaml:"retry"`
	OutputDir  string        `mapstructure:"output_dir" yaml:"output_dir"`
	SaveFile   string        `mapstructure:"save_file" yaml:"save_file"`
	OptionalID string        `mapstructure:"optional_id" yaml:"optional_id"`
	Offline    OfflineConfig `mapstructure:"offline" yaml:"offline"`
	Log        LogConfig     `mapstructure:"log" yaml:"log"`
	Store      StoreConfig   `mapstructure:"store" yaml:"store"`
	API        APIConfig     `mapstructure:"api" yaml:"api"`
}

type OfflineConfig struct {
	FromTime string `mapstructure:"from_time" yaml:"from_time"`
	ToTime   string `mapstructure:"to_time" yaml:"to_time"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

type StoreConfig struct {
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

type APIConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    string `mapstructure:"port" yaml:"port"`
}

func Load(path string) (*Config, error) {

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if path == "config.yaml" {
			if _, errEx := os.Stat("/config/config.yaml"); errEx == nil {
				path = "/config/config.yaml"
			} else {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
		} else {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	v := viper.New()

	// Set Defaults
	v.SetDefault("wait", 10)
	v.SetDefault("retry", 5)
	v.SetDefault("output_dir", "./waveforms")
	v.SetDefault("save_file", "last_download.txt")
	v.SetDefault("location", "")
	v.SetDefault("log.path", "rbfetch.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)
	v.SetDefault("api.enabled", false)
	v.SetDefault("api.port", "8090")

	// Read config file
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	// Support Environment Variables
	v.SetEnvPrefix("RBFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server == "" {
		return errors.New("server is required (datacenter code or base URL)")
	}
	if c.Network == "" {
		return errors.New("network selector is required")
	}
	if c.Station == "" {
		return errors.New("station selector is required")
	}
	if c.Channel == "" {
		return errors.New("channel selector is required")
	}
	if c.Wait <= 0 {
		return fmt.Errorf("wait must be a positive number of minutes, got %v", c.Wait)
	}
	if c.Retry <= 0 {
		return fmt.Errorf("retry must be a positive number of minutes, got %v", c.Retry)
	}
	if c.OutputDir == "" {
		c.OutputDir = "./waveforms"
	}
	return nil
}
