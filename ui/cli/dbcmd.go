package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/quizmaster/internal/db"
	"github.com/toeirei/quizmaster/internal/i18n"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database upkeep",
	}

	maintain := &cobra.Command{
		Use:     "maintain",
		Short:   "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
		Long:    `Runs engine-specific maintenance tasks (PRAGMA optimize, VACUUM, VACUUM ANALYZE, OPTIMIZE TABLE).`,
		Args:    cobra.NoArgs,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if timeoutSec, _ := cmd.Flags().GetInt("timeout"); timeoutSec > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
				defer cancel()
			}
			var err error
			if bs, ok := svc.store.(*db.BunStore); ok {
				err = db.RunStoreMaintenance(ctx, bs)
			} else {
				var dsn string
				if dsn, err = appConfig.Database.DSN(); err == nil {
					err = db.RunDBMaintenance(ctx, appConfig.Database.Type, dsn)
				}
			}
			if err != nil {
				return fmt.Errorf("maintenance failed: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.maintenance_done"))
			return nil
		},
	}
	maintain.Flags().Int("timeout", 0, "Timeout in seconds for maintenance (0 means no timeout)")

	// Opening the store applies pending migrations.
	migrate := &cobra.Command{
		Use:     "migrate",
		Short:   "Apply pending schema migrations",
		Args:    cobra.NoArgs,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.migrations_done"))
			return nil
		},
	}

	cmd.AddCommand(maintain, migrate)
	return cmd
}
