package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/toeirei/quizmaster/internal/i18n"
	"github.com/toeirei/quizmaster/internal/server"
	"github.com/toeirei/quizmaster/internal/session"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Starts the HTTP API on server.addr. Sessions are sealed with
server.session_secret, which must be set (QUIZMASTER_SERVER_SESSION_SECRET).

The bootstrap admin (admin.email / admin.password) is created on startup
when it does not exist yet.`,
		PreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			insecure, _ := cmd.Flags().GetBool("insecure-cookie")
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				appConfig.Server.Addr = addr
			}

			codec, err := session.NewCodec(appConfig.Server.SessionKey())
			if err != nil {
				return fmt.Errorf("server.session_secret: %w", err)
			}
			srv, err := server.New(server.Config{
				Addr:           appConfig.Server.Addr,
				Admins:         svc.admins,
				Quiz:           svc.quiz,
				Codec:          codec,
				CookieName:     appConfig.Server.CookieName,
				ReadTimeout:    appConfig.Server.ReadTimeout,
				WriteTimeout:   appConfig.Server.WriteTimeout,
				InsecureCookie: insecure,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.serve_listening", appConfig.Server.Addr))
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.serve_stopped"))
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address, overrides server.addr")
	cmd.Flags().Bool("insecure-cookie", false, "Send the session cookie without the Secure attribute (plain HTTP development only)")
	return cmd
}

// commandContext returns cmd's context, or Background when cobra was run
// without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
