package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/quizmaster/internal/backup"
	"github.com/toeirei/quizmaster/internal/i18n"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of all quiz content",
		Long: `Dumps every theme and question with its answers into a single
Zstandard-compressed JSON file. Admin accounts are not included.

If an output file is given, '.zst' is appended when missing. Without one the
file is named 'quizmaster-backup-YYYY-MM-DD.json.zst'.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputFile string
			if len(args) == 0 {
				outputFile = fmt.Sprintf("quizmaster-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			} else {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}
			data, err := backup.Export(commandContext(cmd), svc.store)
			if err != nil {
				return err
			}
			if err := backup.WriteFile(outputFile, data); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup_written", outputFile, len(data.Themes), len(data.Questions)))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore quiz content from a backup",
		Long: `Re-creates the themes and questions of a backup. Content that already
exists (matched by title) is kept and skipped, so restoring twice is safe.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := backup.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := backup.Restore(commandContext(cmd), svc.quiz, data)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore_done", res.ThemesRestored, res.QuestionsRestored))
			return nil
		},
	}
}
