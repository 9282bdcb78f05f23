// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads quizmaster.yaml, QUIZMASTER_* environment variables
// and command-line flags into a Config, and writes default config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/security"
)

// Config is the full application configuration.
type Config struct {
	Database Database `mapstructure:"database" yaml:"database"`
	Admin    Admin    `mapstructure:"admin" yaml:"admin"`
	Server   Server   `mapstructure:"server" yaml:"server"`
	Language string   `mapstructure:"language" yaml:"language"`
	Log      Log      `mapstructure:"log" yaml:"log"`
}

// Database selects the storage engine. Dsn wins over the discrete fields.
type Database struct {
	Type     string `mapstructure:"type" yaml:"type"`
	Dsn      string `mapstructure:"dsn" yaml:"dsn"`
	Host     string `mapstructure:"host" yaml:"host,omitempty"`
	Port     int    `mapstructure:"port" yaml:"port,omitempty"`
	User     string `mapstructure:"user" yaml:"user,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	Name     string `mapstructure:"name" yaml:"name,omitempty"`
}

// Admin is the bootstrap account created at startup when missing.
type Admin struct {
	Email    string `mapstructure:"email" yaml:"email"`
	Password string `mapstructure:"password" yaml:"password"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr          string        `mapstructure:"addr" yaml:"addr"`
	SessionSecret string        `mapstructure:"session_secret" yaml:"session_secret"`
	CookieName    string        `mapstructure:"cookie_name" yaml:"cookie_name"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// Log configures the process logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the default value of every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":         db.TypeSQLite,
		"database.dsn":          "",
		"database.host":         "",
		"database.port":         0,
		"database.user":         "",
		"database.password":     "",
		"database.name":         "",
		"admin.email":           "",
		"admin.password":        "",
		"server.addr":           ":8080",
		"server.session_secret": "",
		"server.cookie_name":    "quizmaster_session",
		"server.read_timeout":   "15s",
		"server.write_timeout":  "15s",
		"language":              "en",
		"log.level":             "info",
	}
}

// DefaultSQLitePath is the database file used when sqlite is configured
// with neither a DSN nor a name.
const DefaultSQLitePath = "./quizmaster.db"

// DSN returns the configured DSN, building one from the discrete fields
// when Dsn is empty.
func (d Database) DSN() (string, error) {
	if d.Dsn != "" {
		return d.Dsn, nil
	}
	name := d.Name
	if name == "" && (d.Type == "" || d.Type == db.TypeSQLite) {
		name = DefaultSQLitePath
	}
	dbType := d.Type
	if dbType == "" {
		dbType = db.TypeSQLite
	}
	return db.BuildDSN(dbType, db.ConnParams{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Name:     name,
	})
}

// AdminPassword returns the bootstrap password as a redacting Secret.
func (a Admin) AdminPassword() security.Secret { return security.FromString(a.Password) }

// SessionKey returns the session secret as a redacting Secret.
func (s Server) SessionKey() security.Secret { return security.FromString(s.SessionSecret) }

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Quizmaster")
		default:
			configDir = "/etc/quizmaster"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "quizmaster")
	}

	return filepath.Join(configDir, "quizmaster.yaml"), nil
}

// LoadConfig merges defaults, the config file, QUIZMASTER_* environment
// variables and cmd's flags (highest precedence) into a T. A missing config
// file is reported as viper.ConfigFileNotFoundError alongside the loaded value.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("quizmaster")
	v.SetConfigType("yaml")

	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return c, err
		}
		notFound = err
	}

	v.SetEnvPrefix("quizmaster")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// WriteConfigFile writes c as YAML to the user (or system) config path and
// returns that path.
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

	// 0600: the file may hold database and admin passwords.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
