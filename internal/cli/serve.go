package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"healthbot/internal/dispatch"
	"healthbot/internal/reply"
)

// NewServeCommand runs the engine with the line-based console transport.
// The console stands in for the real message transport during local
// development: one account id, commands as "/name args", callbacks as
// "@data", anything else as free text.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var accountID int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine with a console transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eng, err := buildEngine(ctx, opts.Config)
			if err != nil {
				return err
			}
			defer eng.close()

			d, err := dispatch.New(dispatch.Config{
				Registry: eng.registry,
				Sessions: eng.sessions,
				Guard:    eng.guard,
				Accounts: eng.store,
				Sink: dispatch.SinkFunc(func(_ context.Context, r reply.Reply) error {
					_, err := os.Stdout.WriteString("\n" + r.Render())
					return err
				}),
				HandlerTimeout: eng.cfg.StoreTimeout,
				SessionTTL:     eng.cfg.SessionTTL,
			})
			if err != nil {
				return err
			}

			go d.Run(ctx)

			slog.Info("serving console transport",
				"account", accountID,
				"db", eng.cfg.DBPath,
			)
			runConsole(ctx, cmd.InOrStdin(), accountID, d)

			d.Close()
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 1, "account id for console input")
	return cmd
}
