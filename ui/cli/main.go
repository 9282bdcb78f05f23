// Copyright (c) 2026 Quizmaster Team
// Quizmaster - quiz content administration backend
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, configuration loading and the services
// shared by every subcommand.

package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/quizmaster/buildvars"
	"github.com/toeirei/quizmaster/internal/admin"
	"github.com/toeirei/quizmaster/internal/config"
	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/i18n"
	"github.com/toeirei/quizmaster/internal/logging"
	"github.com/toeirei/quizmaster/internal/quiz"
)

var version = "dev"   // set by the linker
var gitCommit = "dev" // short commit SHA, set at build time
var buildDate = ""    // RFC3339, set at build time
var cfgFile string
var verbose bool

var appConfig config.Config

// services are built once per invocation by setupDefaultServices.
type services struct {
	store  db.Store
	admins *admin.Service
	quiz   *quiz.Service
}

var svc *services

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, configPath)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run: persist the defaults so there is a file to edit.
		if path, writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Infof("wrote default config to %s", path)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	level := appConfig.Log.Level
	if verbose {
		level = "debug"
		db.SetDebug(true)
	}
	if level != "" {
		if err := logging.SetLevel(level); err != nil {
			logging.Warnf("%v", err)
		}
	}

	i18n.Init(appConfig.Language)

	if !db.IsInitialized() {
		dsn, err := appConfig.Database.DSN()
		if err != nil {
			return errors.New(i18n.T("cli.error_init_db", err))
		}
		if _, err := db.New(appConfig.Database.Type, dsn); err != nil {
			return errors.New(i18n.T("cli.error_init_db", err))
		}
	}

	store := db.Default()
	svc = &services{
		store:  store,
		admins: admin.NewService(store),
		quiz:   quiz.NewService(store),
	}

	if appConfig.Admin.Email != "" && appConfig.Admin.Password != "" {
		if err := svc.admins.Bootstrap(commandContext(cmd), appConfig.Admin.Email, appConfig.Admin.AdminPassword()); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}
	return nil
}

// Execute runs the CLI entrypoint and closes the database afterwards.
func Execute() error {
	defer func() {
		if db.IsInitialized() {
			if err := db.Default().Close(); err != nil {
				logging.Errorf("closing database: %v", err)
			}
			db.SetDefault(nil)
		}
	}()
	return NewRootCmd().Execute()
}

func applyDefaultFlags(cmd *cobra.Command) {
	// NewRootCmd may run several times in tests; pflag panics on redefinition.
	if cmd.PersistentFlags().Lookup("database.type") == nil {
		cmd.PersistentFlags().String("database.type", db.TypeSQLite, "Database type (sqlite, postgres, mysql)")
	}
	if cmd.PersistentFlags().Lookup("database.dsn") == nil {
		cmd.PersistentFlags().String("database.dsn", "", "Database connection string (DSN); built from database.host/name/... when empty")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

// NewRootCmd builds a fresh command tree. Tests call it repeatedly.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quizmaster",
		Short:         i18n.T("cli.root_short"),
		Version:       compositeVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging, including SQL statements")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `Output language ("en", "de")`)
	applyDefaultFlags(cmd)

	cmd.AddCommand(
		newServeCmd(),
		newAdminCmd(),
		newThemeCmd(),
		newQuestionCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newDBCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "version: %s\n", v)
			_, _ = fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				_, _ = fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. A nil info reads build info from the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := buildvars.CommitOrDefault(gitCommit)
	resolvedDate := buildDate
	if buildvars.Date != "" {
		resolvedDate = buildvars.Date
	}

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record the module as a dependency.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/quizmaster" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// Fall back to the ldflags commit so support has something to go on.
	if resolvedVersion == "dev" && resolvedCommit != "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
