package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/toeirei/quizmaster/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	return tmp
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		t.Fatalf("expected ConfigFileNotFoundError, got: %T %v", err, err)
	}
	if got.Database.Type != "sqlite" || got.Database.Dsn != "" {
		t.Fatalf("unexpected database defaults: %+v", got.Database)
	}
	if dsn, err := got.Database.DSN(); err != nil || dsn != cfg.DefaultSQLitePath {
		t.Fatalf("expected default sqlite path, got %q (%v)", dsn, err)
	}
	if got.Server.Addr != ":8080" || got.Server.ReadTimeout != 15*time.Second {
		t.Fatalf("unexpected server defaults: %+v", got.Server)
	}
	if got.Language != "en" || got.Log.Level != "info" {
		t.Fatalf("unexpected defaults: language=%q level=%q", got.Language, got.Log.Level)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "database:\n  type: postgres\n  dsn: postgresql://user@/db\nserver:\n  write_timeout: 1m\nlanguage: de\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Database.Type != "postgres" {
		t.Fatalf("expected postgres, got %q", got.Database.Type)
	}
	if got.Language != "de" {
		t.Fatalf("expected de, got %q", got.Language)
	}
	if got.Server.WriteTimeout != time.Minute {
		t.Fatalf("expected 1m write timeout, got %s", got.Server.WriteTimeout)
	}
	if got.Server.CookieName != "quizmaster_session" {
		t.Fatalf("expected default cookie name to survive, got %q", got.Server.CookieName)
	}
}

func TestLoadConfig_EnvAndFlagPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZMASTER_ADMIN_EMAIL", "env@x.com")
	t.Setenv("QUIZMASTER_LANGUAGE", "de")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "en", "")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if got.Admin.Email != "env@x.com" {
		t.Fatalf("expected admin email from env, got %q", got.Admin.Email)
	}
	if got.Language != "en" {
		t.Fatalf("expected changed flag to win over env, got %q", got.Language)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	isolate(t)

	c := cfg.Config{}
	c.Database.Type = "sqlite"
	c.Database.Dsn = "./quiz.db"
	c.Server.ReadTimeout = 30 * time.Second
	c.Language = "en"

	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	want, _ := cfg.GetConfigPath(false)
	if path != want || !strings.HasSuffix(path, filepath.Join("quizmaster", "quizmaster.yaml")) {
		t.Fatalf("unexpected path %s (want %s)", path, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig after write: %v", err)
	}
	if got.Database.Dsn != "./quiz.db" || got.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("written values not read back: %+v", got)
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := cfg.Database{Type: "sqlite", Dsn: "explicit.db", Name: "ignored.db"}
	if dsn, err := d.DSN(); err != nil || dsn != "explicit.db" {
		t.Fatalf("explicit dsn should win, got %q (%v)", dsn, err)
	}
	d = cfg.Database{Type: "postgres", Host: "db", User: "quiz", Name: "quiz"}
	if dsn, err := d.DSN(); err != nil || dsn != "postgres://quiz@db:5432/quiz" {
		t.Fatalf("unexpected built dsn %q (%v)", dsn, err)
	}
	if s := (cfg.Admin{Password: "pw"}).AdminPassword().String(); s == "pw" {
		t.Fatalf("admin password must be redacted when printed")
	}
}

func TestLoadConfig_DiscreteDatabaseEnv(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZMASTER_DATABASE_TYPE", "postgres")
	t.Setenv("QUIZMASTER_DATABASE_HOST", "db.internal")
	t.Setenv("QUIZMASTER_DATABASE_NAME", "quiz")
	t.Setenv("QUIZMASTER_DATABASE_USER", "quiz")

	cmd := &cobra.Command{}
	cmd.Flags().String("database.dsn", "", "")

	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	dsn, err := got.Database.DSN()
	if err != nil {
		t.Fatalf("DSN: %v", err)
	}
	if dsn != "postgres://quiz@db.internal:5432/quiz" {
		t.Fatalf("expected dsn built from discrete fields, got %q", dsn)
	}

	t.Setenv("QUIZMASTER_DATABASE_TYPE", "sqlite")
	t.Setenv("QUIZMASTER_DATABASE_NAME", "data/quiz.db")
	got, _ = cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if dsn, err := got.Database.DSN(); err != nil || dsn != "data/quiz.db" {
		t.Fatalf("expected sqlite file from database.name, got %q (%v)", dsn, err)
	}
}
