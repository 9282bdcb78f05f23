package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/quizmaster/internal/i18n"
	"github.com/toeirei/quizmaster/internal/security"
	"golang.org/x/term"
)

// readPasswordFunc reads a password without echo. Tests replace it.
var readPasswordFunc = func(out io.Writer) (security.Secret, error) {
	_, _ = fmt.Fprint(out, i18n.T("cli.password_prompt"))
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return security.Secret(b), nil
}

// promptForConfirmation displays a prompt and reads a line from in.
func promptForConfirmation(in io.Reader, out io.Writer, prompt string) string {
	_, _ = fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	create := &cobra.Command{
		Use:     "create <email>",
		Short:   "Create an admin account",
		Long:    `Creates an admin. Without --password the password is read from the terminal.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw security.Secret
			if cmd.Flags().Changed("password") {
				p, _ := cmd.Flags().GetString("password")
				pw = security.FromString(p)
			} else {
				var err error
				if pw, err = readPasswordFunc(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			defer pw.Zero()

			a, err := svc.admins.Create(commandContext(cmd), args[0], pw)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.admin_created", a.Email, a.ID))
			return nil
		},
	}
	create.Flags().StringP("password", "p", "", "Password (visible in shell history; prefer the prompt)")

	list := &cobra.Command{
		Use:     "list",
		Short:   "List admin accounts",
		Args:    cobra.NoArgs,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			admins, err := svc.admins.List(commandContext(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(admins) == 0 {
				_, _ = fmt.Fprintln(out, i18n.T("cli.no_admins"))
				return nil
			}
			for _, a := range admins {
				_, _ = fmt.Fprintf(out, "%s %s\n", idStyle.Render(fmt.Sprintf("#%d", a.ID)), a.Email)
			}
			return nil
		},
	}

	purge := &cobra.Command{
		Use:     "purge",
		Short:   "Delete every admin account",
		Args:    cobra.NoArgs,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				answer := promptForConfirmation(cmd.InOrStdin(), out, i18n.T("cli.confirm_purge"))
				if answer != "y" && answer != "yes" && answer != "j" && answer != "ja" {
					_, _ = fmt.Fprintln(out, i18n.T("cli.aborted"))
					return nil
				}
			}
			if err := svc.admins.Teardown(commandContext(cmd)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, i18n.T("cli.admins_purged"))
			return nil
		},
	}
	purge.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(create, list, purge)
	return cmd
}
