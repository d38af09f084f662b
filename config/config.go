// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName  = "hubclient"
	fileName = appName + ".yaml"
)

// Config is the hubclient configuration.
type Config struct {
	Server struct {
		URL     string        `mapstructure:"url" yaml:"url"`
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	} `mapstructure:"server" yaml:"server"`
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language  string `mapstructure:"language" yaml:"language"`
	Downloads string `mapstructure:"downloads" yaml:"downloads"`
	Log       struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"server":    "server.url",
	"timeout":   "server.timeout",
	"db-type":   "database.type",
	"db-dsn":    "database.dsn",
	"language":  "language",
	"downloads": "downloads",
	"log-level": "log.level",
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	dsn := appName + ".db"
	if dir, err := os.UserConfigDir(); err == nil {
		dsn = filepath.Join(dir, appName, appName+".db")
	}
	return map[string]any{
		"server.url":     "http://localhost:8082",
		"server.timeout": 30 * time.Second,
		"database.type":  "sqlite",
		"database.dsn":   dsn,
		"language":       "en",
		"downloads":      ".",
		"log.level":      "info",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Hubclient")
		default:
			configDir = "/etc/" + appName
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, appName)
	}
	return filepath.Join(configDir, fileName), nil
}

// LoadConfig builds a T from defaults, the first hubclient.yaml found (or
// configFile when given), a .env file in the working directory, HUBCLIENT_*
// environment variables and the flags of cmd, in increasing precedence.
//
// When no configuration file exists the loaded value is still returned
// together with a viper.ConfigFileNotFoundError. An empty file counts as
// missing.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if configFile != nil && *configFile != "" {
		info, err := os.Stat(*configFile)
		switch {
		case errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0):
			notFound = viper.ConfigFileNotFoundError{}
		case err != nil:
			return c, err
		default:
			v.SetConfigFile(*configFile)
			if err := v.ReadInConfig(); err != nil {
				return c, err
			}
		}
	} else if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return c, err
		}
		notFound = nf
	}

	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("could not read .env: %w", err)
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range FlagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

// WriteConfigFile writes c as YAML to the user or system config path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	// 0600: the file may hold a database DSN with credentials
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
